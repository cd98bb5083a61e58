// Package cli implements the cobra-based CLI commands for bytecode-compare.
//
// The root command performs the two-file comparison itself; the inspect
// subcommand examines a single file. This file defines the root command,
// the global flags, and the error/exit-code handling shared by all
// commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Wardens-OSS-Club/bytecode-compare/internal/model"
)

// Global flag variables shared across all commands. These are bound to
// cobra persistent flags on the root command, which makes them available
// to every subcommand automatically.
var (
	// outputFormat selects the report rendering: text (default), json,
	// or yaml.
	outputFormat string

	// verbose enables detailed progress output on stderr, plus decoded
	// metadata in text-mode region listings.
	verbose bool
)

// Version, Commit, and Date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// NewRootCommand creates and configures the root cobra command.
// This is the entry point for the entire CLI application.
//
// Unlike a pure command-group root, this root command carries the primary
// operation: comparing two hexadecimal bytecode files. Subcommands
// (inspect) provide secondary operations.
func NewRootCommand() *cobra.Command {
	flags := &compareFlags{}

	rootCmd := &cobra.Command{
		Use:   "bytecode-compare [flags] <file1> <file2>",
		Short: "Compare hexadecimal bytecode files with volatile-region masking",
		Long: `bytecode-compare compares two hexadecimal bytecode text files and reports
the remaining byte-level differences with context.

Whitespace (including line wrapping) is insignificant and stripped before
comparison. Known volatile regions — the embedded content hash and the
trailing CBOR-encoded compiler metadata block — can be masked out with
fixed placeholders so they no longer affect the comparison.

Examples:
  bytecode-compare build/a.hex build/b.hex
  bytecode-compare --ignore-hash --ignore-metadata build/a.hex build/b.hex
  bytecode-compare -o json build/a.hex build/b.hex`,

		// Positional file paths are taken in first-seen order among
		// non-flag arguments; pflag parses interspersed flags, so flag
		// and file order is otherwise free.
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return model.NewCLIError(model.ExitUsage,
					fmt.Sprintf("expected exactly two file paths, got %d", len(args)))
			}
			return nil
		},

		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(flags, args[0], args[1])
		},

		// SilenceUsage prevents cobra from printing usage on every error.
		// Usage is printed explicitly for usage-class errors in Execute.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// Errors are formatted once, centrally, in Execute.
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
	}

	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text",
		"Output format: text, json, yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	rootCmd.Flags().BoolVar(&flags.ignoreHash, "ignore-hash", false,
		"Mask embedded bytecode-hash regions before comparing")
	rootCmd.Flags().BoolVar(&flags.ignoreCbor, "ignore-cbor", false,
		"Mask CBOR metadata regions before comparing")
	rootCmd.Flags().BoolVar(&flags.ignoreMetadata, "ignore-metadata", false,
		"Synonym for --ignore-cbor")
	rootCmd.Flags().StringVar(&flags.configPath, "config", "",
		"Path to a JSONC config file (default: .bytecode-compare.jsonc in the working directory)")
	rootCmd.Flags().IntVar(&flags.contextWidth, "context", 0,
		"Context window width around each difference (default 16)")

	// Help is a usage-class exit: print the help text and leave with a
	// non-zero status, the same path as a missing file argument.
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if cmd.Long != "" {
			fmt.Fprintln(os.Stderr, cmd.Long)
			fmt.Fprintln(os.Stderr)
		}
		fmt.Fprint(os.Stderr, cmd.UsageString())
		os.Exit(int(model.ExitUsage))
	})

	rootCmd.AddCommand(NewInspectCommand())

	return rootCmd
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// It inspects errors returned by cobra commands and translates them into
// OS exit codes. CLIError types carry their own exit codes; usage-class
// errors additionally print the usage text; other errors default to exit
// code 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		if cliErr, ok := err.(*model.CLIError); ok {
			printError(cliErr.Message, cliErr.Err)
			if cliErr.Code == model.ExitUsage {
				fmt.Fprint(os.Stderr, rootCmd.UsageString())
			}
			os.Exit(int(cliErr.Code))
		}

		// Generic error (including flag parse errors from pflag).
		printError(err.Error(), nil)
		fmt.Fprint(os.Stderr, rootCmd.UsageString())
		os.Exit(int(model.ExitUsage))
	}
}

// printError outputs an error message to stderr with its underlying cause,
// if any. Errors always use text format, even with -o json/yaml, because
// stdout is reserved for successful report output.
func printError(message string, underlying error) {
	if underlying != nil {
		fmt.Fprintf(os.Stderr, "Error: %s: %v\n", message, underlying)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", message)
	}
}

// VerboseLog prints a message to stderr only when verbose mode is enabled.
// This is used throughout the CLI for trace output that helps users
// understand what the tool is doing.
func VerboseLog(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[verbose] "+format+"\n", args...)
	}
}

// OutputFormat parses the --output flag value. An unknown value is a
// usage-class error.
func OutputFormat() (model.OutputFormat, error) {
	format, err := model.ParseOutputFormat(outputFormat)
	if err != nil {
		return "", model.WrapCLIError(model.ExitUsage, "invalid --output value", err)
	}
	return format, nil
}
