// Package diff implements strictly positional difference extraction between
// two masked bytecode strings.
//
// The comparison walks a shared index over both strings, treating a position
// past the end of the shorter string as an "absent" value that never equals
// any real character. Maximal contiguous mismatch spans are collected into
// model.DifferenceRun records; there is no alignment or resynchronization
// after insertions or deletions.
package diff
