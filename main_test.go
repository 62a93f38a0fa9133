package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ffigen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
module: Clang
headers: [clang-c/Index.h]
prefixes: [clang_]
output:
  format: json
`), 0644))

	configPath = path
	includes = []string{"/usr/lib/llvm/include"}
	cflags = []string{"-DNDEBUG"}
	t.Cleanup(func() {
		configPath, includes, cflags = "", nil, nil
		dumpCmd.Flags().Set("module", "")
	})
	require.NoError(t, dumpCmd.Flags().Set("module", "Index"))

	cfg, err := loadConfig(dumpCmd, []string{"./clang-c/CXString.h"})
	require.NoError(t, err)

	assert.Equal(t, "Index", cfg.Module)
	assert.Equal(t, "index", cfg.Library)
	assert.Equal(t, []string{"clang-c/Index.h", "clang-c/CXString.h"}, cfg.Headers)
	assert.Equal(t, []string{"-I/usr/lib/llvm/include", "-DNDEBUG"}, cfg.CFlags)
	assert.Equal(t, []string{"clang_"}, cfg.Prefixes)
	assert.Equal(t, "json", cfg.Output.Format)
}

func TestLoadConfigRequiresHeaders(t *testing.T) {
	_, err := loadConfig(versionCmd, nil)
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "ffigen "+Version+"\n", out.String())
}
