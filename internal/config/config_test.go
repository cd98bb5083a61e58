package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wardens-OSS-Club/bytecode-compare/internal/mask"
	"github.com/Wardens-OSS-Club/bytecode-compare/internal/model"
)

// TestDefault verifies the built-in settings: documented patterns, a
// 16-character context window, and a 30-character preview.
func TestDefault(t *testing.T) {
	settings := Default()

	assert.Equal(t, mask.DefaultHashPattern, settings.HashPattern.String())
	assert.Equal(t, mask.DefaultCborPattern, settings.CborPattern.String())
	assert.Equal(t, 16, settings.ContextWidth)
	assert.Equal(t, 30, settings.PreviewLength)
}

// TestParse verifies JSONC parsing with comments and partial overrides:
// unspecified fields keep their defaults.
func TestParse(t *testing.T) {
	data := []byte(`{
		// tighten the hash pattern for this project
		"hashPattern": "(?i)ff[0-9a-f]{4}",
		"contextWidth": 8,
	}`)

	settings, err := Parse(data, "test.jsonc")
	require.NoError(t, err)

	assert.Equal(t, "(?i)ff[0-9a-f]{4}", settings.HashPattern.String())
	assert.Equal(t, 8, settings.ContextWidth)

	// Untouched fields fall back to the defaults.
	assert.Equal(t, mask.DefaultCborPattern, settings.CborPattern.String())
	assert.Equal(t, DefaultPreviewLength, settings.PreviewLength)
}

// TestParse_EmptyObject verifies that an empty config file yields the
// defaults unchanged.
func TestParse_EmptyObject(t *testing.T) {
	settings, err := Parse([]byte(`{}`), "test.json")
	require.NoError(t, err)
	assert.Equal(t, Default().ContextWidth, settings.ContextWidth)
}

// TestParse_InvalidPattern verifies that an unparseable regex surfaces as a
// configuration-class CLIError.
func TestParse_InvalidPattern(t *testing.T) {
	data := []byte(`{"cborPattern": "(["}`)

	_, err := Parse(data, "test.json")
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitConfig, cliErr.Code)
}

// TestParse_MalformedJSON verifies the error class for unparseable files.
func TestParse_MalformedJSON(t *testing.T) {
	_, err := Parse([]byte(`{"hashPattern": `), "broken.json")
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitConfig, cliErr.Code)
}

// TestLoad verifies reading a config file from disk, including JSONC
// comment stripping.
func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".bytecode-compare.jsonc")
	content := `{
		/* preview more of each region */
		"previewLength": 60,
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	settings, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 60, settings.PreviewLength)
}

// TestLoad_MissingFile verifies the configuration-class error for an
// unreadable path.
func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.jsonc"))
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitConfig, cliErr.Code)
}

// TestStages verifies pipeline construction: fixed hash-before-CBOR order
// and omission of disabled stages.
func TestStages(t *testing.T) {
	settings := Default()

	tests := []struct {
		name               string
		maskHash, maskCbor bool
		wantKinds          []model.MaskKind
	}{
		{
			name:      "both enabled, hash first",
			maskHash:  true,
			maskCbor:  true,
			wantKinds: []model.MaskKind{model.KindBytecodeHash, model.KindCborMetadata},
		},
		{
			name:      "hash only",
			maskHash:  true,
			wantKinds: []model.MaskKind{model.KindBytecodeHash},
		},
		{
			name:      "cbor only",
			maskCbor:  true,
			wantKinds: []model.MaskKind{model.KindCborMetadata},
		},
		{
			name:      "none",
			wantKinds: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stages := settings.Stages(tt.maskHash, tt.maskCbor)
			require.Len(t, stages, len(tt.wantKinds))
			for i, kind := range tt.wantKinds {
				assert.Equal(t, kind, stages[i].Kind)
				assert.Equal(t, kind.Placeholder(), stages[i].Placeholder)
			}
		})
	}
}
