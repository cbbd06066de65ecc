package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	content := `
languages:
  - python
excludeDirs:
  - vendor
  - node_modules
sourceRoots:
  - src
verbose: true
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "involve.yml"), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"python"}, cfg.Languages)
	assert.Equal(t, []string{"vendor", "node_modules"}, cfg.ExcludeDirs)
	assert.Equal(t, []string{"src"}, cfg.SourceRoots)
	assert.True(t, cfg.Verbose)
}

func TestLoad_YamlExtension(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "involve.yaml"), []byte("verbose: true\n"), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.True(t, cfg.Verbose)
}

func TestLoad_Missing(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, cfg.Languages)
	assert.False(t, cfg.Verbose)
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "involve.yml"), []byte("languages: {not a list"), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}
