// report.go defines the report structures shared by the text, JSON, and
// YAML renderings, and the pure formatting functions that build them.
//
// The same report document backs every output format, so the structured
// formats carry exactly the information the text format shows: file sizes,
// masked region listings, difference runs with bracketed context windows,
// and the summary totals.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Wardens-OSS-Club/bytecode-compare/internal/config"
	"github.com/Wardens-OSS-Club/bytecode-compare/internal/diff"
	"github.com/Wardens-OSS-Club/bytecode-compare/internal/metadata"
	"github.com/Wardens-OSS-Club/bytecode-compare/internal/model"
)

// RegionReport describes one masked region in a report.
type RegionReport struct {
	Kind     string `json:"kind" yaml:"kind"`
	Position int    `json:"position" yaml:"position"`
	Length   int    `json:"length" yaml:"length"`

	// Preview is the region content truncated for display.
	Preview string `json:"preview" yaml:"preview"`

	// Decoded is the CBOR view of the region content, present only when
	// the region is a complete, well-formed CBOR map.
	Decoded *metadata.Metadata `json:"decoded,omitempty" yaml:"decoded,omitempty"`
}

// FileReport describes one input file in a report.
type FileReport struct {
	Path string `json:"path" yaml:"path"`

	// RawChars is the file size in characters before normalization.
	RawChars int `json:"rawChars" yaml:"rawChars"`

	// NormalizedChars is the size after whitespace stripping.
	NormalizedChars int `json:"normalizedChars" yaml:"normalizedChars"`

	// MaskedChars is the size after placeholder substitution.
	MaskedChars int `json:"maskedChars" yaml:"maskedChars"`

	// Regions lists the masked regions in discovery order. Always a
	// slice (never null) so JSON output shows [].
	Regions []RegionReport `json:"regions" yaml:"regions"`
}

// RunReport describes one difference run in a report.
type RunReport struct {
	// Start and End are the run's inclusive index span.
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`

	// Content1 and Content2 are the differing spans, with "(missing)"
	// substituted when a span lies past a string's end.
	Content1 string `json:"content1" yaml:"content1"`
	Content2 string `json:"content2" yaml:"content2"`

	// Context1 and Context2 show each masked string around the run with
	// the differing span bracketed, clipped to string bounds.
	Context1 string `json:"context1" yaml:"context1"`
	Context2 string `json:"context2" yaml:"context2"`
}

// CompareReport is the full document produced by the root command.
type CompareReport struct {
	File1 FileReport `json:"file1" yaml:"file1"`
	File2 FileReport `json:"file2" yaml:"file2"`

	Identical bool `json:"identical" yaml:"identical"`

	Runs []RunReport `json:"runs" yaml:"runs"`

	TotalDifferentChars int     `json:"totalDifferentChars" yaml:"totalDifferentChars"`
	PercentDifferent    float64 `json:"percentDifferent" yaml:"percentDifferent"`
}

// InspectReport is the document produced by the inspect command.
type InspectReport struct {
	File FileReport `json:"file" yaml:"file"`

	// Metadata is the decoded trailing metadata block, when present and
	// well formed.
	Metadata *metadata.Metadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// buildFileReport converts a masked file into its report form.
func buildFileReport(f *maskedFile, previewLength int) FileReport {
	regions := make([]RegionReport, 0, len(f.result.Regions))
	for i := range f.result.Regions {
		r := &f.result.Regions[i]
		entry := RegionReport{
			Kind:     r.Kind.String(),
			Position: r.Position,
			Length:   r.Length,
			Preview:  r.Preview(previewLength),
		}
		// Best-effort decode: hash regions are truncated CBOR and fail
		// here; complete metadata maps decode and enrich the report.
		if decoded, err := metadata.Decode(r.Content); err == nil {
			entry.Decoded = decoded
		}
		regions = append(regions, entry)
	}

	return FileReport{
		Path:            f.path,
		RawChars:        f.rawLen,
		NormalizedChars: len(f.normalized),
		MaskedChars:     len(f.result.Masked),
		Regions:         regions,
	}
}

// bracketContext renders one masked string around a run as
// "before[content]after", clipped to the string's bounds.
func bracketContext(masked string, run *model.DifferenceRun, content string, width int) string {
	before, after := diff.Window(masked, run.Start, run.End, width)
	return before + "[" + content + "]" + after
}

// buildCompareReport assembles the full comparison document.
func buildCompareReport(file1, file2 *maskedFile, result model.ComparisonResult, settings *config.Settings) *CompareReport {
	report := &CompareReport{
		File1:               buildFileReport(file1, settings.PreviewLength),
		File2:               buildFileReport(file2, settings.PreviewLength),
		Identical:           result.Identical,
		Runs:                make([]RunReport, 0, len(result.Runs)),
		TotalDifferentChars: result.TotalDifferentChars,
		PercentDifferent:    result.PercentDifferent,
	}

	for i := range result.Runs {
		run := &result.Runs[i]
		report.Runs = append(report.Runs, RunReport{
			Start:    run.Start,
			End:      run.End,
			Content1: model.DisplayContent(run.Content1),
			Content2: model.DisplayContent(run.Content2),
			Context1: bracketContext(file1.result.Masked, run, run.Content1, settings.ContextWidth),
			Context2: bracketContext(file2.result.Masked, run, run.Content2, settings.ContextWidth),
		})
	}

	return report
}

// buildInspectReport assembles the single-file document, including the
// decoded trailing metadata block when the bytecode carries one.
func buildInspectReport(file *maskedFile, settings *config.Settings) *InspectReport {
	report := &InspectReport{
		File: buildFileReport(file, settings.PreviewLength),
	}
	if decoded, err := metadata.DecodeTrailing(file.normalized); err == nil {
		report.Metadata = decoded
	} else {
		VerboseLog("No decodable trailing metadata: %v", err)
	}
	return report
}

// printReport renders a report document to w in the selected format.
func printReport(w io.Writer, report any, format model.OutputFormat) error {
	switch format {
	case model.FormatJSON:
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON report: %w", err)
		}
		fmt.Fprintln(w, string(data))
		return nil
	case model.FormatYAML:
		data, err := yaml.Marshal(report)
		if err != nil {
			return fmt.Errorf("failed to encode YAML report: %w", err)
		}
		fmt.Fprint(w, string(data))
		return nil
	default:
		switch r := report.(type) {
		case *CompareReport:
			renderCompareText(w, r)
		case *InspectReport:
			renderInspectText(w, r)
		default:
			return fmt.Errorf("unsupported report type %T", report)
		}
		return nil
	}
}

// renderRegions writes one file's masked-region listing.
func renderRegions(w io.Writer, label string, regions []RegionReport) {
	if len(regions) == 0 {
		return
	}
	fmt.Fprintf(w, "Masked regions in %s:\n", label)
	for _, r := range regions {
		fmt.Fprintf(w, "  [%s] position %d, length %d: %s\n", r.Kind, r.Position, r.Length, r.Preview)
		// Decoded metadata is verbose-only detail in text mode; the
		// structured formats always carry it.
		if verbose && r.Decoded != nil {
			fmt.Fprintf(w, "      decoded: %s\n", r.Decoded)
		}
	}
}

// renderCompareText writes the human-readable comparison report.
func renderCompareText(w io.Writer, report *CompareReport) {
	fmt.Fprintf(w, "File 1: %s (%d raw chars, %d hex chars)\n",
		report.File1.Path, report.File1.RawChars, report.File1.NormalizedChars)
	fmt.Fprintf(w, "File 2: %s (%d raw chars, %d hex chars)\n",
		report.File2.Path, report.File2.RawChars, report.File2.NormalizedChars)

	if len(report.File1.Regions) > 0 || len(report.File2.Regions) > 0 {
		fmt.Fprintln(w)
		renderRegions(w, "file 1", report.File1.Regions)
		renderRegions(w, "file 2", report.File2.Regions)
	}

	fmt.Fprintln(w)
	if report.Identical {
		fmt.Fprintln(w, "Files are identical after masking.")
		return
	}

	if len(report.Runs) == 1 {
		fmt.Fprintln(w, "Found 1 difference run:")
	} else {
		fmt.Fprintf(w, "Found %d difference runs:\n", len(report.Runs))
	}

	for i, run := range report.Runs {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "#%d positions %d-%d (%d chars)\n", i+1, run.Start, run.End, run.End-run.Start+1)
		fmt.Fprintf(w, "   file1: %s\n", run.Content1)
		fmt.Fprintf(w, "   file2: %s\n", run.Content2)
		fmt.Fprintf(w, "   context1: %s\n", run.Context1)
		fmt.Fprintf(w, "   context2: %s\n", run.Context2)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total: %d differing characters (%.2f%%)\n",
		report.TotalDifferentChars, report.PercentDifferent)
}

// renderInspectText writes the human-readable single-file report.
func renderInspectText(w io.Writer, report *InspectReport) {
	fmt.Fprintf(w, "File: %s (%d raw chars, %d hex chars)\n",
		report.File.Path, report.File.RawChars, report.File.NormalizedChars)

	fmt.Fprintln(w)
	if len(report.File.Regions) == 0 {
		fmt.Fprintln(w, "No maskable regions found.")
	} else {
		fmt.Fprintf(w, "Maskable regions (%d):\n", len(report.File.Regions))
		for _, r := range report.File.Regions {
			fmt.Fprintf(w, "  [%s] position %d, length %d: %s\n", r.Kind, r.Position, r.Length, r.Preview)
			if r.Decoded != nil {
				fmt.Fprintf(w, "      decoded: %s\n", r.Decoded)
			}
		}
	}

	if report.Metadata != nil {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Trailing metadata: %s\n", report.Metadata)
	}
}
