package main

import (
	"encoding/json"
	"fmt"

	"github.com/meisterluk/dupimages-go/internals"
	v1 "github.com/meisterluk/dupimages-go/v1"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// VersionCommand defines the CLI command parameters
type VersionCommand struct {
	ConfigOutput bool `json:"config"`
	JSONOutput   bool `json:"json"`
	Help         bool `json:"help"`
}

// VersionJSONResult is a struct used to serialize JSON output
type VersionJSONResult struct {
	Version     string              `json:"version"`
	ReleaseDate string              `json:"release-date"`
	License     string              `json:"license"`
	Author      string              `json:"author"`
	HashAlgos   []HashAlgorithmData `json:"hash-algorithms"`
	Extensions  []string            `json:"extensions"`
	Bugs        string              `json:"bugs"`
}

// HashAlgorithmData contains the metadata of a hash algorithm
type HashAlgorithmData struct {
	Name       string `json:"name"`
	DigestSize int    `json:"digest-size"`
	Default    bool   `json:"default"`
}

var versionCommand *VersionCommand

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "returns metadata about this implementation",
	Long: `Returns the implementation's

• version
• license name
• author name
• list of supported hash algorithms
• default image file extensions
• URL to report bugs
`,
	// Args considers all arguments (in the function arguments and global variables
	// of the command line parser) with the goal to define the global VersionCommand instance
	// called versionCommand and fill it with admissible parameters to run the version command.
	// It EITHER succeeds, fill versionCommand appropriately and returns nil.
	// OR returns an error instance and versionCommand is incomplete.
	Args: func(cmd *cobra.Command, args []string) error {
		if err := bindFlags(cmd); err != nil {
			return err
		}

		// create global VersionCommand instance
		versionCommand = new(VersionCommand)
		versionCommand.ConfigOutput = viper.GetBool("config")
		versionCommand.JSONOutput = viper.GetBool("json")
		versionCommand.Help = false

		return nil
	},
	// Run the version subcommand with versionCommand.
	Run: func(cmd *cobra.Command, args []string) {
		// NOTE global input variables: {w, log, versionCommand}
		exitCode, cmdError = versionCommand.Run(w, log)
		// NOTE global output variables: {exitCode, cmdError}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

const humanReadableRepresentation = `version:           %s
release date:      %s
license:           %s
author:            %s
report bugs to:    %s
extensions:        %s

hash algorithms:
(* denotes default algorithm)
`

// Run executes the CLI command version on the given parameter set,
// writes the result to Output w and errors/information messages to log.
// It returns a triple (exit code, error)
func (c *VersionCommand) Run(w, log Output) (int, error) {
	if c.ConfigOutput {
		// config output is printed in JSON independent of c.JSONOutput
		b, err := json.Marshal(c)
		if err != nil {
			return exitSerializing, fmt.Errorf(configJSONErrMsg, err)
		}
		w.Println(string(b))
		return exitOK, nil
	}

	// fill VersionJSONResult with data
	data := VersionJSONResult{}
	data.Version = fmt.Sprintf("%d.%d.%d", v1.VERSION_MAJOR, v1.VERSION_MINOR, v1.VERSION_PATCH)
	data.ReleaseDate = v1.RELEASE_DATE
	data.License = v1.LICENSE
	data.Author = `meisterluk`
	data.Bugs = `https://github.com/meisterluk/dupimages-go/issues/`
	data.Extensions = v1.DefaultExtensions()

	data.HashAlgos = make([]HashAlgorithmData, 0, 8)
	for _, name := range v1.SupportedHashAlgorithms() {
		algo := internals.HashAlgo(name)
		data.HashAlgos = append(data.HashAlgos, HashAlgorithmData{
			Name:       name,
			DigestSize: algo.DigestSize(),
			Default:    algo == internals.DefaultHashAlgo,
		})
	}

	// compute output
	if c.JSONOutput {
		jsonRepr, err := json.MarshalIndent(&data, "", "  ")
		if err != nil {
			return exitSerializing, fmt.Errorf(resultJSONErrMsg, err)
		}
		w.Println(string(jsonRepr))
	} else {
		extensions := ""
		for i, ext := range data.Extensions {
			if i > 0 {
				extensions += ", "
			}
			extensions += ext
		}
		w.Printf(humanReadableRepresentation, data.Version, data.ReleaseDate, data.License, data.Author, data.Bugs, extensions)
		for _, ha := range data.HashAlgos {
			isDefault := ""
			if ha.Default {
				isDefault = " *"
			}
			w.Printfln("\t%s%s  (%d bits)", ha.Name, isDefault, 8*ha.DigestSize)
		}
	}

	return exitOK, nil
}
