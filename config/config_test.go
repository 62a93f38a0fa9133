package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "yaml", cfg.Output.Format)
	assert.Empty(t, cfg.Headers)
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ffigen.yaml")
	data := `
module: Clang
headers:
  - clang-c/Index.h
header_patterns:
  - 'clang-c/.*\.h$'
prefixes: [clang_, CX]
blocking: [clang_parseTranslationUnit]
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "Clang", cfg.Module)
	assert.Equal(t, "clang", cfg.Library, "library defaults to the lower-cased module")
	assert.Equal(t, []string{"clang_", "CX"}, cfg.Prefixes)
	assert.Equal(t, "yaml", cfg.Output.Format)
	assert.True(t, cfg.IsBlocking("clang_parseTranslationUnit"))
	assert.False(t, cfg.IsBlocking("clang_getCString"))
}

func TestLoadFromPathErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFromPath(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("headers: [a.h\n"), 0644))
	_, err = LoadFromPath(bad)
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("module: X\n"), 0644))
	_, err = LoadFromPath(empty)
	assert.True(t, errors.Is(err, ErrInvalidConfig))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"no headers", func(c *Config) { c.Headers = nil }, true},
		{"bad format", func(c *Config) { c.Output.Format = "xml" }, true},
		{"json format", func(c *Config) { c.Output.Format = "json" }, false},
		{"bad pattern", func(c *Config) { c.HeaderPatterns = []string{"("} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Headers = []string{"a.h"}
			tt.modify(cfg)

			err := Validate(cfg)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMatches(t *testing.T) {
	cfg := &Config{
		Headers:        []string{"widget.h"},
		HeaderPatterns: []string{`/include/gfx/.*\.h$`},
	}

	assert.True(t, cfg.Matches("/usr/include/widget.h"))
	assert.True(t, cfg.Matches("/opt/include/gfx/color.h"))
	assert.False(t, cfg.Matches("/usr/include/stdio.h"))
	assert.False(t, cfg.Matches(""), "builtins have no file")
}

func TestMerge(t *testing.T) {
	loaded := &Config{Module: "Gfx", Library: "gfx2", Prefixes: []string{"gfx_"}}
	defaults := &Config{Prefixes: []string{"x_"}, Output: OutputConfig{Format: "json"}}

	merged := Merge(loaded, defaults)
	assert.Equal(t, "gfx2", merged.Library)
	assert.Equal(t, []string{"gfx_"}, merged.Prefixes)
	assert.Equal(t, "json", merged.Output.Format)
}

func TestParseSkipsValidation(t *testing.T) {
	cfg, err := Parse([]byte("module: Widget\n"))
	require.NoError(t, err)
	assert.Equal(t, "Widget", cfg.Module)
	assert.Empty(t, cfg.Output.Format)

	_, err = Parse([]byte("module: [\n"))
	assert.Error(t, err)
}

func TestLoadSkipsValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ffigen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("module: Widget\nprefixes: [wgt_]\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Widget", cfg.Module)
	assert.Equal(t, []string{"wgt_"}, cfg.Prefixes)
	assert.Empty(t, cfg.Headers, "headers can still come from the command line")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
