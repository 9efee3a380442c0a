// Package ttstore is an optional, disk-backed mirror of the engine's
// transposition table, built on BadgerDB. It exists purely to warm-start
// a fresh process from a previous session's table; nothing in the search
// hot path depends on it.
package ttstore

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "threecheck-engine"

// DefaultDir returns a platform-specific data directory for snapshots,
// following the usual per-OS convention for application data directories,
// and creates it if needed. Open does not fall back to it: callers pass
// their own path.
func DefaultDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		baseDir = filepath.Join(homeDir, "Library", "Application Support")

	case "windows":
		baseDir = os.Getenv("APPDATA")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, "AppData", "Roaming")
		}

	default:
		baseDir = os.Getenv("XDG_DATA_HOME")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, ".local", "share")
		}
	}

	dataDir := filepath.Join(baseDir, appName, "ttstore")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}
