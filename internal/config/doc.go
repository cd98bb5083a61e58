// Package config loads the optional bytecode-compare configuration file.
//
// The file uses JSONC (JSON with Comments), parsed with
// github.com/tidwall/jsonc to strip comments before handing the result to
// the standard encoding/json library. Configuration covers the two mask
// patterns (Go regular expression syntax), the context window width, and
// the region preview length; every field is optional and falls back to the
// built-in default.
package config
