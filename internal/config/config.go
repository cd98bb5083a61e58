package config

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"

	"github.com/tidwall/jsonc"

	"github.com/Wardens-OSS-Club/bytecode-compare/internal/diff"
	"github.com/Wardens-OSS-Club/bytecode-compare/internal/mask"
	"github.com/Wardens-OSS-Club/bytecode-compare/internal/model"
)

// DefaultPreviewLength is the truncation length for region content previews
// in listings.
const DefaultPreviewLength = 30

// candidateFiles are the configuration file names probed, in order, in the
// working directory when no --config path is given.
var candidateFiles = []string{
	".bytecode-compare.jsonc",
	".bytecode-compare.json",
}

// rawSettings is the JSON shape of the configuration file. Only the fields
// below are recognized; unknown fields are silently ignored.
type rawSettings struct {
	// HashPattern overrides the bytecode-hash mask pattern.
	HashPattern string `json:"hashPattern,omitempty"`

	// CborPattern overrides the CBOR-metadata mask pattern.
	CborPattern string `json:"cborPattern,omitempty"`

	// ContextWidth overrides the context window width around each
	// difference run.
	ContextWidth int `json:"contextWidth,omitempty"`

	// PreviewLength overrides the truncation length for region previews.
	PreviewLength int `json:"previewLength,omitempty"`
}

// Settings holds the effective configuration after defaults are applied and
// patterns are compiled.
type Settings struct {
	// HashPattern matches embedded content-hash regions.
	HashPattern *regexp.Regexp

	// CborPattern matches CBOR metadata regions.
	CborPattern *regexp.Regexp

	// ContextWidth is the context window width in characters.
	ContextWidth int

	// PreviewLength is the region preview truncation length.
	PreviewLength int
}

// Default returns the built-in settings: the documented default patterns,
// a 16-character context window, and a 30-character preview.
func Default() *Settings {
	return &Settings{
		HashPattern:   regexp.MustCompile(mask.DefaultHashPattern),
		CborPattern:   regexp.MustCompile(mask.DefaultCborPattern),
		ContextWidth:  diff.DefaultContextWidth,
		PreviewLength: DefaultPreviewLength,
	}
}

// Find probes the working directory for a configuration file and returns
// its path, or the empty string when none exists.
func Find() string {
	for _, name := range candidateFiles {
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			return name
		}
	}
	return ""
}

// Load reads a configuration file, strips JSONC comments, and merges the
// result over the defaults. A missing or unreadable file, malformed JSON,
// or an invalid pattern returns a CLIError with ExitConfig.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitConfig,
			fmt.Sprintf("cannot read config file %s", path), err)
	}
	return Parse(data, path)
}

// Parse merges raw JSONC configuration bytes over the defaults. The path is
// used only for error messages.
func Parse(data []byte, path string) (*Settings, error) {
	// Strip JSONC comments (// and /* */) and trailing commas before
	// parsing with the standard library.
	cleanJSON := jsonc.ToJSON(data)

	var raw rawSettings
	if err := json.Unmarshal(cleanJSON, &raw); err != nil {
		return nil, model.WrapCLIError(model.ExitConfig,
			fmt.Sprintf("cannot parse config file %s", path), err)
	}

	settings := Default()

	if raw.HashPattern != "" {
		re, err := regexp.Compile(raw.HashPattern)
		if err != nil {
			return nil, model.WrapCLIError(model.ExitConfig,
				fmt.Sprintf("invalid hashPattern in %s", path), err)
		}
		settings.HashPattern = re
	}
	if raw.CborPattern != "" {
		re, err := regexp.Compile(raw.CborPattern)
		if err != nil {
			return nil, model.WrapCLIError(model.ExitConfig,
				fmt.Sprintf("invalid cborPattern in %s", path), err)
		}
		settings.CborPattern = re
	}
	if raw.ContextWidth > 0 {
		settings.ContextWidth = raw.ContextWidth
	}
	if raw.PreviewLength > 0 {
		settings.PreviewLength = raw.PreviewLength
	}

	return settings, nil
}

// Stages builds the ordered masking pipeline from the settings: the hash
// stage first, then the CBOR stage on the hash-masked text. Disabled stages
// are omitted entirely.
func (s *Settings) Stages(maskHash, maskCbor bool) []mask.Stage {
	var stages []mask.Stage
	if maskHash {
		stages = append(stages, mask.NewStage(model.KindBytecodeHash, s.HashPattern))
	}
	if maskCbor {
		stages = append(stages, mask.NewStage(model.KindCborMetadata, s.CborPattern))
	}
	return stages
}
