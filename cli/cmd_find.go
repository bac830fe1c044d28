package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/meisterluk/dupimages-go/internals"
	v1 "github.com/meisterluk/dupimages-go/v1"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// FindCommand defines the CLI command parameters
type FindCommand struct {
	Root          string   `json:"root"`
	Extensions    []string `json:"extensions"`
	HashAlgorithm string   `json:"hash-algorithm"`
	Workers       int      `json:"workers"`
	ASCII         bool     `json:"ascii"`
	NoAbbrev      bool     `json:"no-abbrev"`
	DigestLength  int      `json:"digest-length"`
	ProgressEvery uint64   `json:"progress-every"`
	ConfigOutput  bool     `json:"config"`
	JSONOutput    bool     `json:"json"`
	Help          bool     `json:"help"`

	// fs is the OS filesystem unless replaced in tests
	fs     afero.Fs
	logger *slog.Logger
}

var findCommand *FindCommand
var argRoot string
var argExtensions []string
var argHashAlgorithm string
var argWorkers int
var argASCII bool
var argNoAbbrev bool
var argDigestLength int
var argProgressEvery uint64

// findCmd represents the find command
var findCmd = &cobra.Command{
	Use:   "find [directory]",
	Short: "Find duplicate images in a directory tree",
	Long: `Walks the given directory (default: your Downloads folder) recursively,
hashes every image file and prints groups of files with identical content.
For example:

	dupimages find ~/Pictures

The first file of every group (in lexicographic order) is considered the
original, all others are duplicates. The space occupied by duplicates is
summed up as wasted space. Nothing is ever deleted.
`,
	// Args considers all arguments (in the function arguments and global variables
	// of the command line parser) with the goal to define the global FindCommand instance
	// called findCommand and fill it with admissible parameters to run the find command.
	// It EITHER succeeds, fill findCommand appropriately and returns nil.
	// OR returns an error instance and findCommand is incomplete.
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) > 1 {
			return fmt.Errorf("expected at most one directory, got %d arguments", len(args))
		}
		if err := bindFlags(cmd); err != nil {
			return err
		}

		// create global FindCommand instance
		findCommand = new(FindCommand)
		findCommand.Root = viper.GetString("root")
		if len(args) == 1 {
			findCommand.Root = args[0]
		}
		findCommand.Extensions = splitList(viper.GetStringSlice("extensions"))
		findCommand.HashAlgorithm = viper.GetString("hash-algorithm")
		findCommand.Workers = viper.GetInt("workers")
		findCommand.ASCII = viper.GetBool("ascii")
		findCommand.NoAbbrev = viper.GetBool("no-abbrev")
		findCommand.DigestLength = viper.GetInt("digest-length")
		findCommand.ProgressEvery = viper.GetUint64("progress-every")
		findCommand.ConfigOutput = viper.GetBool("config")
		findCommand.JSONOutput = viper.GetBool("json")
		findCommand.Help = false

		// default values
		if findCommand.Root == "" {
			root, err := locateDownloads()
			if err != nil {
				return err
			}
			findCommand.Root = root
		} else {
			root, err := homedir.Expand(findCommand.Root)
			if err != nil {
				return err
			}
			findCommand.Root = root
		}
		if findCommand.Workers == 0 {
			findCommand.Workers = countCPUs()
		}

		// validity checks
		if len(findCommand.Extensions) == 0 {
			return fmt.Errorf("at least one file extension is required")
		}
		if _, err := internals.HashAlgorithmFromString(findCommand.HashAlgorithm); err != nil {
			return err
		}
		if findCommand.Workers < 0 {
			return fmt.Errorf("expected --workers to be positive integer, is %d", findCommand.Workers)
		}

		logger, err := newLogger(viper.GetString("log-level"), log.Writer())
		if err != nil {
			return err
		}
		findCommand.logger = logger

		return nil
	},
	// Run the find subcommand with findCommand.
	Run: func(cmd *cobra.Command, args []string) {
		// NOTE global input variables: {w, log, findCommand}
		exitCode, cmdError = findCommand.Run(cmd.Context(), w, log)
		// NOTE global output variables: {exitCode, cmdError}
	},
}

// addFindFlags registers the flags of the find command at cmd.
// The root command runs find, thus it accepts the same flags.
func addFindFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&argRoot, `root`, "", `directory to scan (default: Downloads folder)`)
	f.StringSliceVarP(&argExtensions, `extensions`, `e`, slices.Clone(internals.DefaultExtensions), `file extensions of image files`)
	f.StringVarP(&argHashAlgorithm, `hash-algorithm`, `a`, string(internals.DefaultHashAlgo), `hash algorithm to use`)
	f.IntVar(&argWorkers, `workers`, 0, `number of concurrent hashing units (default: number of CPUs)`)
	f.BoolVar(&argASCII, `ascii`, false, `restrict output to ASCII characters`)
	f.BoolVar(&argNoAbbrev, `no-abbrev`, false, `do not abbreviate paths in the home directory with ~`)
	f.IntVar(&argDigestLength, `digest-length`, internals.DefaultDigestLength, `number of hex characters of a digest to show (negative: all)`)
	f.Uint64Var(&argProgressEvery, `progress-every`, 100, `log progress after this number of hashed files (0: never)`)
}

func init() {
	rootCmd.AddCommand(findCmd)
	addFindFlags(findCmd)
}

// Run executes the CLI command find on the given parameter set,
// writes the result to Output w and errors/information messages to log.
// It returns a triple (exit code, error)
func (c *FindCommand) Run(ctx context.Context, w, log Output) (int, error) {
	if c.ConfigOutput {
		// config output is printed in JSON independent of c.JSONOutput
		b, err := json.Marshal(c)
		if err != nil {
			return exitSerializing, fmt.Errorf(configJSONErrMsg, err)
		}
		w.Println(string(b))
		return exitOK, nil
	}

	report, err := v1.FindDuplicates(ctx, v1.Options{
		Fs:            c.fs,
		Root:          c.Root,
		Extensions:    c.Extensions,
		HashAlgorithm: c.HashAlgorithm,
		Workers:       c.Workers,
		Logger:        c.logger,
		ProgressEvery: c.ProgressEvery,
	})
	switch {
	case errors.Is(err, context.Canceled):
		return exitInterrupted, err
	case errors.Is(err, v1.ErrInvalidRoot):
		return exitInvalidInput, err
	case err != nil:
		return exitInvalidConf, err
	}

	if c.JSONOutput {
		if err := v1.WriteReportJSON(w.Writer(), report); err != nil {
			return exitSerializing, fmt.Errorf(resultJSONErrMsg, err)
		}
		return exitOK, nil
	}

	opts := v1.FormatOptions{ASCII: c.ASCII, DigestLength: c.DigestLength}
	if !c.NoAbbrev {
		opts.HomeDir = homeDirectory()
	}
	degraded, err := v1.WriteReport(w.Writer(), report, opts)
	if err != nil {
		return exitSerializing, err
	}
	if c.logger != nil {
		for _, d := range degraded {
			c.logger.Debug("path substituted in output", "path", d.Path, "reason", d.Err)
		}
	}

	return exitOK, nil
}
