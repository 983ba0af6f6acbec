package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ensime.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
source_roots = ["src", "vendor"]
lint = "all"
index_db = "custom.db"
max_completions = 7
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"src", "vendor"}, cfg.SourceRoots)
	assert.Equal(t, "all", cfg.Lint)
	assert.Equal(t, "custom.db", cfg.IndexDB)
	assert.Equal(t, 7, cfg.MaxCompletions)
}

func TestLoad_ZeroMaxCompletionsFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ensime.toml")
	require.NoError(t, os.WriteFile(path, []byte("max_completions = 0\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().MaxCompletions, cfg.MaxCompletions)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ensime.toml")
	require.NoError(t, os.WriteFile(path, []byte("not toml ["), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
