// Package cli implements the cobra-based CLI commands for mfkit.
//
// Each subcommand (info, check, rewrite) is defined in its own file within
// this package. This file defines the root command that serves as the
// parent for all subcommands and handles global flags.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Global flag variables shared across all subcommands. These are bound to
// cobra persistent flags on the root command, which makes them available
// to every subcommand automatically.
var (
	// jsonOutput controls whether command output is formatted as JSON.
	// When false (default), output uses human-readable text format.
	jsonOutput bool

	// verbose enables debug-level logging on stderr.
	verbose bool
)

// Version, Commit, and Date are set at build time via ldflags. They are
// injected from the main package to display version information.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// NewRootCommand creates and configures the root cobra command. This is
// the entry point for the entire CLI application.
//
// The root command itself does not perform any action, it only provides
// help text and global flags. Actual functionality is provided by the
// subcommands (info, check, rewrite).
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mfkit",
		Short: "MODFLOW name-file inspection and rewrite toolkit",
		Long: `mfkit loads MODFLOW-style models through their name file: the manifest
binding package filetypes and external data files to numeric unit numbers.

It can summarize what a name file declares, lint a manifest without reading
any package files, and rewrite a loaded model's manifest into a new
workspace.`,

		// SilenceUsage prevents cobra from printing usage on every error.
		// We handle error output ourselves for cleaner UX.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// We format errors ourselves (text or JSON based on --json flag).
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
	}

	// PersistentFlags are inherited by all subcommands.
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.AddCommand(NewInfoCommand())
	rootCmd.AddCommand(NewCheckCommand())
	rootCmd.AddCommand(NewRewriteCommand())

	return rootCmd
}

// Execute runs the root command and handles exit codes. This is the main
// entry point called from main.go.
//
// Errors returned by commands are classified into CLIErrors carrying exit
// codes; library errors without a code are mapped by error type.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		cliErr := classify(err)
		printError(cliErr.Message, cliErr.Err)
		os.Exit(int(cliErr.Code))
	}
}

// printError outputs an error message in the appropriate format (JSON or
// text) based on the --json global flag.
func printError(message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		// Errors go to stderr even in JSON mode; stdout is reserved for
		// successful command output.
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		if underlying != nil {
			fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %s\n", message)
		}
	}
}

// newLogger builds the stderr logger commands hand to the model loader.
// The --verbose flag selects debug level; otherwise only warnings and
// errors surface.
func newLogger() *log.Logger {
	logger := log.New(os.Stderr)
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
	return logger
}

// IsJSONOutput returns whether the --json flag is set. Subcommands use
// this to decide their output format.
func IsJSONOutput() bool {
	return jsonOutput
}
