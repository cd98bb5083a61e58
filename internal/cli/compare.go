// compare.go implements the root comparison operation.
//
// Pipeline for each file: read → strip whitespace → apply the enabled mask
// stages (hash first, then CBOR on the hash-masked text). The two masked
// strings are then walked positionally to extract difference runs, and the
// assembled report is rendered in the selected output format.
package cli

import (
	"fmt"
	"os"

	"github.com/Wardens-OSS-Club/bytecode-compare/internal/config"
	"github.com/Wardens-OSS-Club/bytecode-compare/internal/diff"
	"github.com/Wardens-OSS-Club/bytecode-compare/internal/mask"
	"github.com/Wardens-OSS-Club/bytecode-compare/internal/model"
)

// compareFlags holds the flag values for the root compare operation.
// These are bound to cobra flags in NewRootCommand.
type compareFlags struct {
	ignoreHash     bool   // --ignore-hash: mask bytecode-hash regions
	ignoreCbor     bool   // --ignore-cbor: mask CBOR metadata regions
	ignoreMetadata bool   // --ignore-metadata: synonym for --ignore-cbor
	configPath     string // --config: explicit config file path
	contextWidth   int    // --context: context window width override
}

// maskedFile bundles one input's journey through the pipeline.
type maskedFile struct {
	path       string
	rawLen     int
	normalized string
	result     mask.Result
}

// loadSettings resolves the effective configuration: an explicit --config
// path wins, otherwise the working directory is probed, otherwise the
// built-in defaults apply. A --context override is applied last.
func loadSettings(configPath string, contextWidth int) (*config.Settings, error) {
	var settings *config.Settings

	path := configPath
	if path == "" {
		path = config.Find()
	}
	if path != "" {
		VerboseLog("Loading config from %s", path)
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		settings = loaded
	} else {
		settings = config.Default()
	}

	if contextWidth > 0 {
		settings.ContextWidth = contextWidth
	}
	return settings, nil
}

// loadAndMask reads one input file and runs it through normalization and
// the masking pipeline. An unreadable file is a CLIError with ExitFileRead;
// the comparison is aborted without a panic.
func loadAndMask(path string, stages []mask.Stage) (*maskedFile, error) {
	// os.ReadFile handles the open-read-close lifecycle in a single call,
	// so the file handle is released even when the read fails partway.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitFileRead,
			fmt.Sprintf("cannot read file %s", path), err)
	}

	normalized := mask.NormalizeWhitespace(string(data))
	result := mask.Apply(normalized, stages)

	return &maskedFile{
		path:       path,
		rawLen:     len(data),
		normalized: normalized,
		result:     result,
	}, nil
}

// runCompare is the main logic function for the root command.
func runCompare(flags *compareFlags, path1, path2 string) error {
	format, err := OutputFormat()
	if err != nil {
		return err
	}

	settings, err := loadSettings(flags.configPath, flags.contextWidth)
	if err != nil {
		return err
	}

	maskHash := flags.ignoreHash
	maskCbor := flags.ignoreCbor || flags.ignoreMetadata
	stages := settings.Stages(maskHash, maskCbor)
	VerboseLog("Masking: hash=%v cbor=%v", maskHash, maskCbor)

	file1, err := loadAndMask(path1, stages)
	if err != nil {
		return err
	}
	file2, err := loadAndMask(path2, stages)
	if err != nil {
		return err
	}
	VerboseLog("Normalized sizes: %d and %d hex chars", len(file1.normalized), len(file2.normalized))
	VerboseLog("Masked %d regions in file 1, %d in file 2",
		len(file1.result.Regions), len(file2.result.Regions))

	result := diff.Compare(file1.result.Masked, file2.result.Masked)

	report := buildCompareReport(file1, file2, result, settings)
	return printReport(os.Stdout, report, format)
}
