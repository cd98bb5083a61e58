package mask

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/Wardens-OSS-Club/bytecode-compare/internal/model"
)

// Default mask patterns, expressed over the whitespace-normalized text.
// Both are case-insensitive over the hexadecimal digit class.
//
// The CBOR pattern's non-greedy body reproduces the documented match shape
// of the upstream tooling; it is deliberately kept as configuration (see
// internal/config) rather than tightened into a structurally exact CBOR
// matcher.
const (
	// DefaultHashPattern matches the fixed CBOR map-header prefix of an
	// embedded content hash followed by exactly 68 hexadecimal digits.
	DefaultHashPattern = `(?i)a264697066735822[0-9a-f]{68}`

	// DefaultCborPattern matches the fixed metadata prefix followed by a
	// non-greedy run of hexadecimal digits and the literal suffix 6673.
	DefaultCborPattern = `(?i)a2644970667358[0-9a-f]+?6673`
)

// Stage is one masking pass: a pattern and the placeholder that replaces
// its matches. Stages are applied in slice order by Apply.
type Stage struct {
	// Kind labels the regions this stage produces.
	Kind model.MaskKind

	// Pattern is the compiled regular expression to scan for.
	Pattern *regexp.Regexp

	// Placeholder is the fixed token substituted for every match.
	Placeholder string
}

// NewStage builds a Stage for the given kind using the kind's fixed
// placeholder token.
func NewStage(kind model.MaskKind, pattern *regexp.Regexp) Stage {
	return Stage{Kind: kind, Pattern: pattern, Placeholder: kind.Placeholder()}
}

// Result is the outcome of masking one input: the masked text and the
// regions that were replaced, in discovery order (stage order, then
// left-to-right within a stage).
type Result struct {
	// Masked is the text after all enabled stages have run.
	Masked string

	// Regions lists every replaced match. Positions are offsets into the
	// text as it existed before that region's stage ran.
	Regions []model.MaskedRegion
}

// NormalizeWhitespace deletes every whitespace character from raw text.
//
// This runs identically on both inputs before any masking or diffing, so
// two files that differ only in line wrapping normalize to the same string.
func NormalizeWhitespace(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Apply folds the given stages over the normalized text.
//
// For each stage: all non-overlapping matches are located left-to-right and
// recorded as regions with their offsets in the current text, then every
// match is replaced with the stage's placeholder. The replaced text is fed
// to the next stage. A nil or empty stage list returns the input unchanged
// with no regions.
func Apply(normalized string, stages []Stage) Result {
	text := normalized
	var regions []model.MaskedRegion

	for _, stage := range stages {
		matches := stage.Pattern.FindAllStringIndex(text, -1)
		for _, m := range matches {
			regions = append(regions, model.MaskedRegion{
				Kind:     stage.Kind,
				Position: m[0],
				Length:   m[1] - m[0],
				Content:  text[m[0]:m[1]],
			})
		}
		if len(matches) > 0 {
			text = stage.Pattern.ReplaceAllLiteralString(text, stage.Placeholder)
		}
	}

	return Result{Masked: text, Regions: regions}
}

// Mask normalizes raw file text and applies the given stages in one call.
func Mask(raw string, stages []Stage) Result {
	return Apply(NormalizeWhitespace(raw), stages)
}
