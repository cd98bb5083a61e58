// Package model defines the domain types and value objects for the
// bytecode-compare CLI.
//
// This package contains pure data structures with no external dependencies.
// All entities (MaskedRegion, DifferenceRun, ComparisonResult) are transient
// values computed fresh per invocation — the tool keeps no persistent state
// between runs.
//
// The package also defines exit codes (ExitCode) and a custom error type
// (CLIError) that carries exit codes for proper OS process exit handling.
package model
