package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/meisterluk/dupimages-go/internals"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// HashCommand defines the CLI command parameters
type HashCommand struct {
	Paths         []string `json:"paths"`
	HashAlgorithm string   `json:"hash-algorithm"`
	ConfigOutput  bool     `json:"config"`
	JSONOutput    bool     `json:"json"`
	Help          bool     `json:"help"`

	fs afero.Fs
}

// HashJSONResult is a struct used to serialize JSON output
type HashJSONResult struct {
	Path   string `json:"path"`
	Size   uint64 `json:"size"`
	Digest string `json:"digest"`
}

var hashCommand *HashCommand

// hashCmd represents the hash command
var hashCmd = &cobra.Command{
	Use:   "hash FILE...",
	Short: "Print the digest of individual files",
	Long: `Prints the content digest of every given file, in the same way
"dupimages find" computes it. For example:

	dupimages hash -a sha-256 a.jpg b.jpg

Two files are reported as duplicates by "find" iff their digests are equal.
`,
	// Args considers all arguments (in the function arguments and global variables
	// of the command line parser) with the goal to define the global HashCommand instance
	// called hashCommand and fill it with admissible parameters to run the hash command.
	// It EITHER succeeds, fill hashCommand appropriately and returns nil.
	// OR returns an error instance and hashCommand is incomplete.
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("at least one file is required")
		}
		if err := bindFlags(cmd); err != nil {
			return err
		}

		// create global HashCommand instance
		hashCommand = new(HashCommand)
		hashCommand.Paths = args
		hashCommand.HashAlgorithm = viper.GetString("hash-algorithm")
		hashCommand.ConfigOutput = viper.GetBool("config")
		hashCommand.JSONOutput = viper.GetBool("json")
		hashCommand.Help = false

		// validity checks
		if _, err := internals.HashAlgorithmFromString(hashCommand.HashAlgorithm); err != nil {
			return err
		}

		return nil
	},
	// Run the hash subcommand with hashCommand.
	Run: func(cmd *cobra.Command, args []string) {
		// NOTE global input variables: {w, log, hashCommand}
		exitCode, cmdError = hashCommand.Run(w, log)
		// NOTE global output variables: {exitCode, cmdError}
	},
}

func init() {
	rootCmd.AddCommand(hashCmd)
	hashCmd.Flags().StringVarP(&argHashAlgorithm, `hash-algorithm`, `a`, string(internals.DefaultHashAlgo), `hash algorithm to use`)
}

// Run executes the CLI command hash on the given parameter set,
// writes the result to Output w and errors/information messages to log.
// It returns a triple (exit code, error)
func (c *HashCommand) Run(w, log Output) (int, error) {
	if c.ConfigOutput {
		// config output is printed in JSON independent of c.JSONOutput
		b, err := json.Marshal(c)
		if err != nil {
			return exitSerializing, fmt.Errorf(configJSONErrMsg, err)
		}
		w.Println(string(b))
		return exitOK, nil
	}

	fs := c.fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	algo, err := internals.HashAlgorithmFromString(c.HashAlgorithm)
	if err != nil {
		return exitInvalidConf, err
	}
	hash := algo.Algorithm()

	results := make([]HashJSONResult, 0, len(c.Paths))
	failed := 0
	for _, path := range c.Paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			log.Printfln(`%s: %s`, path, err)
			failed++
			continue
		}
		info, err := fs.Stat(abs)
		if err != nil {
			log.Printfln(`%s: %s`, path, err)
			failed++
			continue
		}
		if !info.Mode().IsRegular() {
			log.Printfln(`%s: not a regular file`, path)
			failed++
			continue
		}

		rec := internals.FileRecord{Path: abs, Size: uint64(info.Size())}
		digest, err := internals.HashFile(fs, hash, rec)
		if err != nil {
			log.Println(err.Error())
			failed++
			continue
		}
		results = append(results, HashJSONResult{Path: path, Size: rec.Size, Digest: digest.Hex()})
	}

	if c.JSONOutput {
		jsonRepr, err := json.MarshalIndent(&results, "", "  ")
		if err != nil {
			return exitSerializing, fmt.Errorf(resultJSONErrMsg, err)
		}
		w.Println(string(jsonRepr))
	} else {
		for _, r := range results {
			w.Printfln("%s  %s", r.Digest, r.Path)
		}
	}

	if failed > 0 {
		return exitInvalidInput, fmt.Errorf(`%d of %d files could not be hashed`, failed, len(c.Paths))
	}
	return exitOK, nil
}
