package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the config directory at a temp dir for the test.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(EnvPrefix+"_HOME", dir)
	ResetGlobalConfigForTest()
	t.Cleanup(ResetGlobalConfigForTest)
	return dir
}

func TestGlobalConfig(t *testing.T) {
	isolate(t)

	cfg := GetGlobalConfig()
	require.NotNil(t, cfg)
	assert.Equal(t, "table", cfg.Output.DefaultFormat)

	cfg2 := GetGlobalConfig()
	assert.Same(t, cfg, cfg2)

	ResetGlobalConfigForTest()
	cfg3 := GetGlobalConfig()
	assert.NotSame(t, cfg, cfg3)
}

func TestSetGlobalConfig(t *testing.T) {
	isolate(t)

	custom := Defaults()
	custom.Output.DefaultFormat = "json"
	SetGlobalConfig(custom)

	assert.Same(t, custom, GetGlobalConfig())
	assert.Equal(t, "json", GetDefaultOutputFormat())
}

func TestGetConfigDir(t *testing.T) {
	dir := isolate(t)

	got, err := GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, dir, got)

	path, err := ConfigFilePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "config.yaml"), path)
}

func TestEnsureLogDir(t *testing.T) {
	dir := isolate(t)

	cfg := Defaults()
	cfg.Logging.File = filepath.Join(dir, "logs", "nested", "solarsizer.log")
	SetGlobalConfig(cfg)

	require.NoError(t, EnsureLogDir())
	info, err := os.Stat(filepath.Dir(cfg.Logging.File))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
