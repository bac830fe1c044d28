package main

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/meisterluk/dupimages-go/internals"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// HashAlgosCommand defines the CLI command parameters
type HashAlgosCommand struct {
	CheckSupport string `json:"check-support"`
	ConfigOutput bool   `json:"config"`
	JSONOutput   bool   `json:"json"`
	Help         bool   `json:"help"`
}

// HashAlgosJSONResult is a struct used to serialize JSON output
type HashAlgosJSONResult struct {
	CheckSucceeded bool     `json:"check-result"`
	SupHashAlgos   []string `json:"supported-hash-algorithms"`
	Default        string   `json:"default"`
}

var hashAlgosCommand *HashAlgosCommand
var argCheckSupport string

// hashAlgosCmd represents the hashalgos command
var hashAlgosCmd = &cobra.Command{
	Use:   "hashalgos",
	Short: "List supported hash algorithms",
	Long: `Lists all hash algorithms which can be selected with --hash-algorithm.
The default algorithm is marked with an asterisk.
`,
	// Args considers all arguments (in the function arguments and global variables
	// of the command line parser) with the goal to define the global HashAlgosCommand instance
	// called hashAlgosCommand and fill it with admissible parameters to run the hashalgos command.
	// It EITHER succeeds, fill hashAlgosCommand appropriately and returns nil.
	// OR returns an error instance and hashAlgosCommand is incomplete.
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return fmt.Errorf("unexpected arguments %q", args)
		}
		if err := bindFlags(cmd); err != nil {
			return err
		}

		// create global HashAlgosCommand instance
		hashAlgosCommand = new(HashAlgosCommand)
		hashAlgosCommand.CheckSupport = argCheckSupport
		hashAlgosCommand.ConfigOutput = viper.GetBool("config")
		hashAlgosCommand.JSONOutput = viper.GetBool("json")
		hashAlgosCommand.Help = false

		return nil
	},
	// Run the hashalgos subcommand with hashAlgosCommand.
	Run: func(cmd *cobra.Command, args []string) {
		// NOTE global input variables: {w, log, hashAlgosCommand}
		exitCode, cmdError = hashAlgosCommand.Run(w, log)
		// NOTE global output variables: {exitCode, cmdError}
	},
}

func init() {
	rootCmd.AddCommand(hashAlgosCmd)
	hashAlgosCmd.Flags().StringVar(&argCheckSupport, `check-support`, "", `exit code 100 indicates that the given hash algorithm is unsupported`)
}

// Run executes the CLI command hashalgos on the given parameter set,
// writes the result to Output w and errors/information messages to log.
// It returns a triple (exit code, error)
func (c *HashAlgosCommand) Run(w, log Output) (int, error) {
	if c.ConfigOutput {
		// config output is printed in JSON independent of c.JSONOutput
		b, err := json.Marshal(c)
		if err != nil {
			return exitSerializing, fmt.Errorf(configJSONErrMsg, err)
		}
		w.Println(string(b))
		return exitOK, nil
	}

	data := HashAlgosJSONResult{
		SupHashAlgos: internals.SupportedHashAlgorithms(),
		Default:      string(internals.DefaultHashAlgo),
	}
	if c.CheckSupport != "" {
		data.CheckSucceeded = slices.Contains(data.SupHashAlgos, c.CheckSupport)
	}

	if c.JSONOutput {
		jsonRepr, err := json.MarshalIndent(&data, "", "  ")
		if err != nil {
			return exitSerializing, fmt.Errorf(resultJSONErrMsg, err)
		}
		w.Println(string(jsonRepr))
	} else {
		for _, name := range data.SupHashAlgos {
			if name == data.Default {
				w.Printfln("%s *", name)
			} else {
				w.Println(name)
			}
		}
	}

	if c.CheckSupport != "" && !data.CheckSucceeded {
		return exitUnsupported, nil
	}
	return exitOK, nil
}
