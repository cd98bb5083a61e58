package diff

import (
	"github.com/Wardens-OSS-Club/bytecode-compare/internal/model"
)

// DefaultContextWidth is the number of characters of surrounding masked text
// shown on each side of a difference run in human-readable output.
const DefaultContextWidth = 16

// charAt returns the byte at index i and whether the index is in bounds.
// Comparing (byte, present) pairs gives the absent positions of the shorter
// string a value that never equals a real character.
func charAt(s string, i int) (byte, bool) {
	if i < 0 || i >= len(s) {
		return 0, false
	}
	return s[i], true
}

// clip bounds i to [0, len(s)] so substring extraction never panics on runs
// that extend past a string's end.
func clip(s string, i int) int {
	if i < 0 {
		return 0
	}
	if i > len(s) {
		return len(s)
	}
	return i
}

// Compare extracts the ordered difference runs between two masked strings.
//
// Exactly equal strings short-circuit to an identical result with no runs
// (this includes the case where both are empty, keeping the percentage
// defined without dividing by zero). Otherwise a shared index walks
// [0, max(len1, len2)): the first mismatch opens a run, and the first
// subsequent match — or index exhaustion — closes it. Run content is the
// substring of each string over the closed span, clipped to that string's
// bounds, so an absent span yields the empty string.
func Compare(masked1, masked2 string) model.ComparisonResult {
	if masked1 == masked2 {
		return model.ComparisonResult{Identical: true}
	}

	maxLen := max(len(masked1), len(masked2))
	var runs []model.DifferenceRun
	runStart := -1

	closeRun := func(end int) {
		runs = append(runs, model.DifferenceRun{
			Start:    runStart,
			End:      end,
			Content1: masked1[clip(masked1, runStart):clip(masked1, end+1)],
			Content2: masked2[clip(masked2, runStart):clip(masked2, end+1)],
		})
		runStart = -1
	}

	for i := 0; i < maxLen; i++ {
		c1, ok1 := charAt(masked1, i)
		c2, ok2 := charAt(masked2, i)
		mismatch := ok1 != ok2 || c1 != c2

		if mismatch {
			if runStart < 0 {
				runStart = i
			}
			continue
		}
		if runStart >= 0 {
			closeRun(i - 1)
		}
	}
	if runStart >= 0 {
		closeRun(maxLen - 1)
	}

	total := 0
	for i := range runs {
		total += runs[i].Length()
	}

	percent := 0.0
	if maxLen > 0 {
		percent = model.RoundPercent(float64(total) / float64(maxLen) * 100)
	}

	return model.ComparisonResult{
		Runs:                runs,
		TotalDifferentChars: total,
		PercentDifferent:    percent,
	}
}

// Window returns the fixed-width context immediately before and after a
// difference run within one masked string, clipped to the string's bounds.
// start and end are the run's inclusive span; width is the maximum number
// of characters on each side.
func Window(s string, start, end, width int) (before, after string) {
	if width < 0 {
		width = 0
	}
	before = s[clip(s, start-width):clip(s, start)]
	after = s[clip(s, end+1):clip(s, end+1+width)]
	return before, after
}
