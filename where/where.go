// Package where implements a cross-platform resolver for application-specific filesystem paths.
package where

import (
	"os"
	"path/filepath"

	"github.com/epwatch-cli/epwatch/constant"
	"github.com/epwatch-cli/epwatch/filesystem"
	"github.com/epwatch-cli/epwatch/key"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// EnvConfigPath is the environment variable identifier used to override the default configuration directory.
const EnvConfigPath = "EPWATCH_CONFIG_PATH"

// Ledger file names, relative to the ledger directory.
const (
	ProgressFile  = ".progress"
	PositionsFile = ".positions.json"
)

// ensureDir guarantees the existence of a directory at the specified path, creating it if necessary.
func ensureDir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// Config resolves the absolute path to the primary application configuration directory.
// It prioritizes the XDG_CONFIG_HOME specification on Linux and equivalent user profile paths on Darwin and Windows.
// Direct override: The path resolution can be explicitly specified via the EPWATCH_CONFIG_PATH environment variable.
func Config() string {
	if custom, ok := os.LookupEnv(EnvConfigPath); ok {
		return ensureDir(custom)
	}

	base := lo.Must(os.UserConfigDir())
	return ensureDir(filepath.Join(base, constant.Epwatch))
}

// Cache resolves the absolute path to the application's persistent cache directory.
// Compliance: Adheres to the XDG_CACHE_HOME specification or platform-specific equivalent.
func Cache() string {
	base, err := os.UserCacheDir()
	if err != nil {
		// Fallback: Revert to a localized cache directory if the system-provided path is inaccessible.
		base = filepath.Join(".", "cache")
	}
	return ensureDir(filepath.Join(base, constant.Epwatch))
}

// Logs resolves the absolute path to the directory used for application diagnostic and audit logs.
func Logs() string {
	return ensureDir(filepath.Join(Config(), "logs"))
}

// Ledger resolves the directory holding the progress and position files.
// Defaults to the current working directory, matching the historical layout
// where the ledger sits next to wherever the tracker is invoked.
func Ledger() string {
	dir := viper.GetString(key.LedgerDir)
	if dir == "" {
		dir = "."
	}
	return dir
}

// Progress resolves the path to the persisted current-episode file.
func Progress() string {
	return filepath.Join(Ledger(), ProgressFile)
}

// Positions resolves the path to the persisted playback-position map.
func Positions() string {
	return filepath.Join(Ledger(), PositionsFile)
}

// Durations resolves the path to the cached media-duration registry.
func Durations() string {
	return filepath.Join(Cache(), "durations.json")
}

// Temp resolves a unique, volatile filesystem path for transient application artifacts.
func Temp() string {
	return ensureDir(filepath.Join(os.TempDir(), constant.Epwatch))
}
