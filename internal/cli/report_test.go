// report_test.go contains unit tests for the pure report-building and
// formatting functions used by the compare and inspect commands.
//
// These tests verify data transformation logic without requiring any
// external dependencies; file I/O paths are covered in compare_test.go.
package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Wardens-OSS-Club/bytecode-compare/internal/config"
	"github.com/Wardens-OSS-Club/bytecode-compare/internal/diff"
	"github.com/Wardens-OSS-Club/bytecode-compare/internal/mask"
	"github.com/Wardens-OSS-Club/bytecode-compare/internal/model"
)

// newMaskedFile builds a maskedFile fixture from raw text and a stage list,
// mirroring what loadAndMask does after reading from disk.
func newMaskedFile(path, raw string, stages []mask.Stage) *maskedFile {
	normalized := mask.NormalizeWhitespace(raw)
	return &maskedFile{
		path:       path,
		rawLen:     len(raw),
		normalized: normalized,
		result:     mask.Apply(normalized, stages),
	}
}

// TestBuildCompareReport_MissingTail verifies the unequal-length report:
// "AB" vs "ABCD" yields one run with "(missing)" content and bracketed
// context windows clipped to each string.
func TestBuildCompareReport_MissingTail(t *testing.T) {
	settings := config.Default()
	file1 := newMaskedFile("a.hex", "AB", nil)
	file2 := newMaskedFile("b.hex", "ABCD", nil)
	result := diff.Compare(file1.result.Masked, file2.result.Masked)

	report := buildCompareReport(file1, file2, result, settings)

	assert.False(t, report.Identical)
	require.Len(t, report.Runs, 1)

	run := report.Runs[0]
	assert.Equal(t, 2, run.Start)
	assert.Equal(t, 3, run.End)
	assert.Equal(t, "(missing)", run.Content1)
	assert.Equal(t, "CD", run.Content2)
	assert.Equal(t, "AB[]", run.Context1)
	assert.Equal(t, "AB[CD]", run.Context2)

	assert.Equal(t, 2, report.TotalDifferentChars)
	assert.Equal(t, 50.00, report.PercentDifferent)
}

// TestBuildCompareReport_Identical verifies the short-circuit report shape:
// no runs, zero totals, and empty (not nil) run slice for JSON output.
func TestBuildCompareReport_Identical(t *testing.T) {
	settings := config.Default()
	file1 := newMaskedFile("a.hex", "6080", nil)
	file2 := newMaskedFile("b.hex", "60 80\n", nil)
	result := diff.Compare(file1.result.Masked, file2.result.Masked)

	report := buildCompareReport(file1, file2, result, settings)

	assert.True(t, report.Identical)
	assert.NotNil(t, report.Runs)
	assert.Empty(t, report.Runs)
	assert.Equal(t, 0.0, report.PercentDifferent)
}

// TestBuildFileReport verifies file statistics and the region listing with
// preview truncation.
func TestBuildFileReport(t *testing.T) {
	hash := "a264697066735822" + strings.Repeat("11", 34)
	raw := "6080\n" + hash
	stages := config.Default().Stages(true, false)

	file := newMaskedFile("a.hex", raw, stages)
	report := buildFileReport(file, 30)

	assert.Equal(t, "a.hex", report.Path)
	assert.Equal(t, len(raw), report.RawChars)
	assert.Equal(t, len(raw)-1, report.NormalizedChars) // one newline stripped
	assert.Equal(t, len("6080[BYTECODE_HASH]"), report.MaskedChars)

	require.Len(t, report.Regions, 1)
	region := report.Regions[0]
	assert.Equal(t, "bytecode-hash", region.Kind)
	assert.Equal(t, 4, region.Position)
	assert.Equal(t, 84, region.Length)
	assert.Equal(t, hash[:30]+"...", region.Preview)

	// A hash region is a truncated CBOR map, so no decoded view appears.
	assert.Nil(t, region.Decoded)
}

// TestBracketContext verifies the bracketed rendering around a run.
func TestBracketContext(t *testing.T) {
	run := &model.DifferenceRun{Start: 4, End: 5}
	got := bracketContext("0123XY6789", run, "XY", 2)
	assert.Equal(t, "23[XY]67", got)
}

// TestRenderCompareText_Identical verifies the identical confirmation line.
func TestRenderCompareText_Identical(t *testing.T) {
	settings := config.Default()
	file1 := newMaskedFile("a.hex", "6080", nil)
	file2 := newMaskedFile("b.hex", "6080", nil)
	report := buildCompareReport(file1, file2, diff.Compare("6080", "6080"), settings)

	var buf bytes.Buffer
	renderCompareText(&buf, report)

	out := buf.String()
	assert.Contains(t, out, "File 1: a.hex")
	assert.Contains(t, out, "File 2: b.hex")
	assert.Contains(t, out, "Files are identical after masking.")
	assert.NotContains(t, out, "difference run")
}

// TestRenderCompareText_Differences verifies the run listing and summary
// line formatting.
func TestRenderCompareText_Differences(t *testing.T) {
	settings := config.Default()
	file1 := newMaskedFile("a.hex", "AB", nil)
	file2 := newMaskedFile("b.hex", "ABCD", nil)
	report := buildCompareReport(file1, file2, diff.Compare("AB", "ABCD"), settings)

	var buf bytes.Buffer
	renderCompareText(&buf, report)

	out := buf.String()
	assert.Contains(t, out, "Found 1 difference run:")
	assert.Contains(t, out, "#1 positions 2-3 (2 chars)")
	assert.Contains(t, out, "file1: (missing)")
	assert.Contains(t, out, "file2: CD")
	assert.Contains(t, out, "context2: AB[CD]")
	assert.Contains(t, out, "Total: 2 differing characters (50.00%)")
}

// TestPrintReport_JSON verifies that the JSON rendering is valid and
// carries the report fields, with runs as an array rather than null.
func TestPrintReport_JSON(t *testing.T) {
	settings := config.Default()
	file1 := newMaskedFile("a.hex", "AB", nil)
	file2 := newMaskedFile("b.hex", "AB", nil)
	report := buildCompareReport(file1, file2, diff.Compare("AB", "AB"), settings)

	var buf bytes.Buffer
	require.NoError(t, printReport(&buf, report, model.FormatJSON))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, true, decoded["identical"])
	assert.IsType(t, []any{}, decoded["runs"])
}

// TestPrintReport_YAML verifies that the YAML rendering is valid and
// carries the summary fields.
func TestPrintReport_YAML(t *testing.T) {
	settings := config.Default()
	file1 := newMaskedFile("a.hex", "AB", nil)
	file2 := newMaskedFile("b.hex", "ABCD", nil)
	report := buildCompareReport(file1, file2, diff.Compare("AB", "ABCD"), settings)

	var buf bytes.Buffer
	require.NoError(t, printReport(&buf, report, model.FormatYAML))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, false, decoded["identical"])
	assert.Equal(t, 2, decoded["totalDifferentChars"])
}

// TestBuildInspectReport verifies region listing and trailing-metadata
// decoding for a single file.
func TestBuildInspectReport(t *testing.T) {
	// A complete metadata map {"ipfs": <34 bytes>, "solc": 0.8.19}
	// followed by its 2-byte length, as compilers append it.
	metadataMap := "a2" +
		"6469706673" + "5822" + "1220" + strings.Repeat("ab", 32) +
		"64736f6c63" + "43000813"
	bytecode := "6080604052" + metadataMap + "0033"

	settings := config.Default()
	file := newMaskedFile("a.hex", bytecode, settings.Stages(true, true))

	report := buildInspectReport(file, settings)

	assert.Equal(t, "a.hex", report.File.Path)
	require.NotEmpty(t, report.File.Regions)
	assert.Equal(t, "bytecode-hash", report.File.Regions[0].Kind)

	// The bytecode ends with the map plus its 2-byte length (0x0033 = 51),
	// so the trailing metadata decodes.
	require.NotNil(t, report.Metadata)
	assert.Equal(t, "0.8.19", report.Metadata.SolcVersion)
}

// TestRenderInspectText verifies the single-file text rendering, including
// the no-regions message.
func TestRenderInspectText(t *testing.T) {
	report := &InspectReport{
		File: FileReport{
			Path:            "a.hex",
			RawChars:        10,
			NormalizedChars: 10,
			MaskedChars:     10,
			Regions:         []RegionReport{},
		},
	}

	var buf bytes.Buffer
	renderInspectText(&buf, report)

	out := buf.String()
	assert.Contains(t, out, "File: a.hex")
	assert.Contains(t, out, "No maskable regions found.")
}
