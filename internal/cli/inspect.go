// inspect.go implements the "bytecode-compare inspect" command.
//
// Inspect examines a single bytecode file: it normalizes the text, locates
// every maskable region with both default patterns, and decodes the
// trailing CBOR metadata block when one is present. It is the quick way to
// see what --ignore-hash / --ignore-cbor would redact before running a
// comparison.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// inspectFlags holds the flag values for the inspect command.
type inspectFlags struct {
	configPath string // --config: explicit config file path
}

// NewInspectCommand creates the "inspect" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewInspectCommand() *cobra.Command {
	flags := &inspectFlags{}

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Show the maskable regions and metadata of one bytecode file",
		Long: `Inspect a single hexadecimal bytecode file.

The file is normalized (whitespace stripped) and scanned with both mask
patterns; every matching region is listed with its position, length, and a
content preview. When the bytecode ends in a well-formed CBOR metadata
block, its decoded contents are shown as well.

Examples:
  bytecode-compare inspect build/a.hex
  bytecode-compare inspect -o json build/a.hex`,

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(flags, args[0])
		},
	}

	cmd.Flags().StringVar(&flags.configPath, "config", "",
		"Path to a JSONC config file (default: .bytecode-compare.jsonc in the working directory)")

	return cmd
}

// runInspect is the main logic function for the inspect command.
func runInspect(flags *inspectFlags, path string) error {
	format, err := OutputFormat()
	if err != nil {
		return err
	}

	settings, err := loadSettings(flags.configPath, 0)
	if err != nil {
		return err
	}

	// Inspect always scans with both stages enabled: the point is to show
	// everything the mask patterns would redact.
	file, err := loadAndMask(path, settings.Stages(true, true))
	if err != nil {
		return err
	}
	VerboseLog("Found %d maskable regions", len(file.result.Regions))

	report := buildInspectReport(file, settings)
	return printReport(os.Stdout, report, format)
}
