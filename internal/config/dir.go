// Package config resolves postsync settings from flags, environment and config files.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the postsync configuration directory.
//
// Resolution:
//   - $POSTSYNC_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/postsync if set
//   - %AppData%/postsync on Windows
//   - ~/.config/postsync on macOS and Linux
func Dir() string {
	if dir := os.Getenv("POSTSYNC_CONFIG_HOME"); dir != "" {
		return dir
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "postsync")
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "postsync")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "postsync")
}
