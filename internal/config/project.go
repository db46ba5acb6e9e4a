package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/kcalvin/solarsizer/internal/logging"
)

// ResolveProjectDir locates a project-local .solarsizer directory. It checks
// the flag value, then SOLARSIZER_PROJECT_DIR, then walks up from startDir.
// It returns "" when none is found and never creates directories.
func ResolveProjectDir(flagValue, startDir string) string {
	if flagValue != "" {
		return toAbsProjectDir(flagValue)
	}
	if envDir := os.Getenv(EnvPrefix + "_PROJECT_DIR"); envDir != "" {
		return toAbsProjectDir(envDir)
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, configDirName)
		if info, statErr := os.Stat(filepath.Join(candidate, configFileName)); statErr == nil && !info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// NewWithProjectDir returns New() with the project overlay at
// projectDir/config.yaml shallow-merged on top. Environment overrides are
// re-applied after the merge so they keep the highest precedence.
func NewWithProjectDir(ctx context.Context, projectDir string) *Config {
	cfg := New()
	if projectDir == "" {
		return cfg
	}

	overlayPath := filepath.Join(projectDir, configFileName)
	if _, err := os.Stat(overlayPath); err != nil {
		return cfg
	}

	if err := ShallowMergeYAML(cfg, overlayPath); err != nil {
		logging.FromContext(ctx).Warn().
			Str("component", "config").
			Err(err).
			Str("overlay_path", overlayPath).
			Msg("failed to merge project config, using global defaults")
		return New()
	}
	_ = cfg.ApplyEnv()

	return cfg
}

func toAbsProjectDir(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	if filepath.Base(abs) == configDirName {
		return abs
	}
	return filepath.Join(abs, configDirName)
}
