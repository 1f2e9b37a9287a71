package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for config:
// - Load returns defaults when no config file exists
// - Load reads .rubyoutline/config.yml
// - Validation rejects empty DSL names
// - BuildRegistry merges extra callbacks and suffixes into the tables

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, []string{"**.rb"}, cfg.Outline.Include)
	assert.Empty(t, cfg.DSL.ExtraCallbacks)
}

func TestLoad_FromFile(t *testing.T) {
	t.Parallel()

	rootDir := t.TempDir()
	configDir := filepath.Join(rootDir, ".rubyoutline")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yml"), []byte(`
dsl:
  extra_callbacks:
    - before_broadcast
  test_superclass_suffixes:
    - TestCase
    - Spec
outline:
  include:
    - "app/**.rb"
`), 0o644))

	cfg, err := Load(rootDir)
	require.NoError(t, err)
	assert.Equal(t, []string{"before_broadcast"}, cfg.DSL.ExtraCallbacks)
	assert.Equal(t, []string{"TestCase", "Spec"}, cfg.DSL.TestSuperclassSuffixes)
	assert.Equal(t, []string{"app/**.rb"}, cfg.Outline.Include)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.NoError(t, cfg.Validate())

	cfg.DSL.ExtraCallbacks = []string{" "}
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.DSL.TestSuperclassSuffixes = []string{""}
	assert.Error(t, cfg.Validate())
}

func TestBuildRegistry(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.DSL.ExtraCallbacks = []string{"before_broadcast"}
	reg := cfg.BuildRegistry()
	require.NotNil(t, reg)
}
