// Package mask implements whitespace normalization and volatile-region
// masking for hexadecimal bytecode text.
//
// Masking is an ordered pipeline of stages folded left-to-right over the
// normalized text. Each stage scans for non-overlapping matches of its
// pattern, records one model.MaskedRegion per match, and then replaces every
// match with the stage's fixed placeholder token. The next stage operates on
// the replaced text, so with both default stages enabled the CBOR pattern is
// matched against text whose hash occurrences are already placeholders.
//
// Pattern scanning is a pure function of the input string: Go regular
// expressions carry no internal match cursor, so reusing a compiled pattern
// across both input files cannot leak scan state from one file into the
// other.
package mask
