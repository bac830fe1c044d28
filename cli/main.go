package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// CLI response for errors
type errorResponse struct {
	ErrorMessage string `json:"error"`
	ExitCode     int    `json:"-"`
}

// Print writes the error to out as JSON or plain text and returns its exit code
func (e *errorResponse) Print(out Output, asJSON bool) int {
	if asJSON {
		out.Println(e.JSON())
	} else {
		out.Println(e.String())
	}
	return e.ExitCode
}

func (e *errorResponse) String() string {
	return `dupimages: error: ` + e.ErrorMessage
}

func (e *errorResponse) JSON() string {
	jsonBytes, err := json.Marshal(e)
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, e.ErrorMessage)
	}
	return string(jsonBytes)
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dupimages",
	Short: "Find duplicate image files",
	Long: `dupimages walks a directory tree, hashes the content of every image file
and reports groups of byte-identical images together with the disk space
they waste. Files are never modified or deleted.

Without subcommand, "dupimages find" on your Downloads folder is run.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	// run find with its default arguments
	Args: func(cmd *cobra.Command, args []string) error {
		return findCmd.Args(cmd, args)
	},
	Run: func(cmd *cobra.Command, args []string) {
		findCmd.Run(cmd, args)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	f := rootCmd.PersistentFlags()
	f.BoolVar(&argConfigOutput, `config`, false, `only prints the configuration and terminates`)
	f.BoolVar(&argJSONOutput, `json`, false, `return output as JSON, not as plain text`)
	f.StringVar(&argConfigFile, `config-file`, "", `read configuration from this file (YAML, TOML or JSON)`)
	f.StringVar(&argLogLevel, `log-level`, `warn`, `minimum level of diagnostic messages (debug, info, warn, error)`)

	addFindFlags(rootCmd)
}

// initConfig reads in the config file and environment variables if set
func initConfig() {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if argConfigFile != "" {
		viper.SetConfigFile(argConfigFile)
		if err := viper.ReadInConfig(); err != nil {
			log.Printfln(`cannot read config file '%s': %s`, argConfigFile, err)
		}
	}
}

// bindFlags makes the flags of cmd available through viper, thus
// a flag value beats an environment variable which beats the config file
func bindFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}

// execute runs the command line args and returns the exit code
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	w = newPlainOutput(stdout)
	log = newPlainOutput(stderr)
	exitCode, cmdError = exitOK, nil

	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// argument errors
		resp := &errorResponse{err.Error(), exitInvalidConf}
		return resp.Print(log, viper.GetBool("json"))
	}

	if cmdError != nil {
		resp := &errorResponse{cmdError.Error(), exitCode}
		return resp.Print(log, viper.GetBool("json"))
	}

	return exitCode
}

func cli() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

func main() {
	os.Exit(cli())
}
