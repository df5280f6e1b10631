// Package fs provides filesystem locations and file-backed storage for the
// Mythoscribe client.
package fs

import (
	"os"
	"path/filepath"
)

const appName = "mythoscribe"

// DefaultConfigDir returns the directory holding preferences and config.yaml.
// Uses XDG_CONFIG_HOME if set, otherwise falls back to ~/.config/mythoscribe,
// or the system temp directory if home is unavailable.
func DefaultConfigDir() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// DefaultStateDir returns the directory for logs.
// Uses XDG_STATE_HOME if set, otherwise ~/.local/state/mythoscribe.
func DefaultStateDir() string {
	return xdgDir("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

// DefaultDownloadDir returns ~/Downloads when it exists, otherwise the
// working directory.
func DefaultDownloadDir() string {
	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		dir := filepath.Join(home, "Downloads")
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return "."
}

func xdgDir(env, fallback string) string {
	if xdg := os.Getenv(env); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), appName)
	}
	return filepath.Join(home, fallback, appName)
}
