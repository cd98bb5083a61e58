// Package model defines the domain types for the bytecode-compare CLI.
//
// These types describe the two stages of a comparison: the regions redacted
// from each input (MaskedRegion) and the positional differences that remain
// between the two masked strings (DifferenceRun, ComparisonResult).
package model

import (
	"fmt"
	"math"
	"strings"
)

// MaskKind identifies which volatile-region pattern produced a MaskedRegion.
type MaskKind string

const (
	// KindBytecodeHash marks a masked content-hash region: the fixed
	// 16-hex-digit CBOR map-header prefix followed by the 68-hex-digit
	// hash payload embedded in compiled bytecode.
	KindBytecodeHash MaskKind = "bytecode-hash"

	// KindCborMetadata marks a masked CBOR-encoded metadata block, the
	// trailing build-metadata structure some compilers append.
	KindCborMetadata MaskKind = "cbor-metadata"
)

// String returns the string representation of MaskKind.
// This method satisfies the fmt.Stringer interface, enabling
// human-readable output in CLI commands and reports.
func (k MaskKind) String() string {
	return string(k)
}

// IsValid checks whether the MaskKind value is one of the
// predefined valid kinds.
func (k MaskKind) IsValid() bool {
	switch k {
	case KindBytecodeHash, KindCborMetadata:
		return true
	default:
		return false
	}
}

// ParseMaskKind converts a string to a MaskKind.
// Returns an error if the string does not match any valid kind.
func ParseMaskKind(s string) (MaskKind, error) {
	kind := MaskKind(strings.ToLower(s))
	if !kind.IsValid() {
		return "", fmt.Errorf("invalid mask kind: %q (valid: bytecode-hash, cbor-metadata)", s)
	}
	return kind, nil
}

// Placeholder returns the fixed token that replaces a matched region of
// this kind in the masked text. Placeholders contain no hexadecimal digit
// runs, so the default patterns can never match inside one — masking the
// same text twice yields no further matches.
func (k MaskKind) Placeholder() string {
	switch k {
	case KindBytecodeHash:
		return "[BYTECODE_HASH]"
	case KindCborMetadata:
		return "[CBOR_METADATA]"
	default:
		return ""
	}
}

// MaskedRegion records one pattern match that was replaced by a placeholder.
//
// Position and Length are offsets into the text as it existed immediately
// before that pattern's replacement pass: hash regions are located in the
// whitespace-normalized text, CBOR regions in the already-hash-masked text,
// since the CBOR pass runs second.
type MaskedRegion struct {
	// Kind identifies which pattern matched this region.
	Kind MaskKind `json:"kind" yaml:"kind"`

	// Position is the byte offset of the match.
	Position int `json:"position" yaml:"position"`

	// Length is the match length in characters.
	Length int `json:"length" yaml:"length"`

	// Content is the original matched text, preserved for display.
	Content string `json:"content" yaml:"content"`
}

// Preview returns the region content truncated to max characters with a
// trailing ellipsis, for compact display in region listings.
func (r *MaskedRegion) Preview(max int) string {
	if max <= 0 || len(r.Content) <= max {
		return r.Content
	}
	return r.Content[:max] + "..."
}

// DifferenceRun represents a maximal contiguous span where the two masked
// strings disagree at every position. End is inclusive. When a run extends
// past the end of the shorter string, that string's content is the empty
// string (the run covers characters the string does not have); DisplayContent
// renders such absent content as "(missing)".
type DifferenceRun struct {
	// Start is the first differing index.
	Start int `json:"start" yaml:"start"`

	// End is the last differing index (inclusive).
	End int `json:"end" yaml:"end"`

	// Content1 is the substring of the first masked string over the run,
	// clipped to the string's bounds. Empty when the run lies entirely
	// past the first string's end.
	Content1 string `json:"content1" yaml:"content1"`

	// Content2 is the substring of the second masked string over the run,
	// clipped to the string's bounds.
	Content2 string `json:"content2" yaml:"content2"`
}

// Length returns the number of positions the run covers.
func (d *DifferenceRun) Length() int {
	return d.End - d.Start + 1
}

// MissingContent is the display rendering for an absent (out-of-bounds) span.
const MissingContent = "(missing)"

// DisplayContent renders run content for human-readable output, substituting
// "(missing)" for an empty (absent) span.
func DisplayContent(content string) string {
	if content == "" {
		return MissingContent
	}
	return content
}

// ComparisonResult is the outcome of comparing two masked strings.
//
// Invariants: Runs are ordered by Start ascending and are non-adjacent
// (at least one matching position separates consecutive runs), and the
// union of all run spans plus all matching positions exactly partitions
// [0, max(len1, len2)).
type ComparisonResult struct {
	// Identical is true when the two masked strings are exactly equal.
	// No runs are computed in that case.
	Identical bool `json:"identical" yaml:"identical"`

	// Runs holds the difference runs, ordered by Start.
	Runs []DifferenceRun `json:"runs" yaml:"runs"`

	// TotalDifferentChars is the sum of run lengths.
	TotalDifferentChars int `json:"totalDifferentChars" yaml:"totalDifferentChars"`

	// PercentDifferent is TotalDifferentChars relative to the longer of
	// the two masked strings, as a percentage rounded to 2 decimal
	// places. Defined as 0 when both strings are empty.
	PercentDifferent float64 `json:"percentDifferent" yaml:"percentDifferent"`
}

// RoundPercent rounds a percentage to 2 decimal places, the precision used
// in the summary line and in structured reports.
func RoundPercent(p float64) float64 {
	return math.Round(p*100) / 100
}

// OutputFormat selects the rendering of command output.
type OutputFormat string

const (
	// FormatText is the human-readable default.
	FormatText OutputFormat = "text"

	// FormatJSON renders one indented JSON report document.
	FormatJSON OutputFormat = "json"

	// FormatYAML renders one YAML report document.
	FormatYAML OutputFormat = "yaml"
)

// String returns the string representation of OutputFormat.
func (f OutputFormat) String() string {
	return string(f)
}

// IsValid checks whether the OutputFormat value is one of the
// predefined valid formats.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatYAML:
		return true
	default:
		return false
	}
}

// ParseOutputFormat converts a string to an OutputFormat.
// Returns an error if the string does not match any valid format.
func ParseOutputFormat(s string) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(s))
	if !format.IsValid() {
		return "", fmt.Errorf("invalid output format: %q (valid: text, json, yaml)", s)
	}
	return format, nil
}

// ExitCode defines the CLI exit codes. These codes allow scripts and CI
// systems to programmatically determine the outcome of a command.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitUsage indicates a usage error: missing file arguments or an
	// explicit help request. Usage text is printed alongside.
	ExitUsage ExitCode = 1

	// ExitFileRead indicates an input file could not be read.
	ExitFileRead ExitCode = 2

	// ExitConfig indicates the configuration file was invalid, for
	// example an unparseable mask pattern.
	ExitConfig ExitCode = 3
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
