// Package xdg provides XDG Base Directory paths for credcheck.
package xdg

import (
	"os"
	"path/filepath"
)

const appName = "credcheck"

// ConfigDir returns the XDG config directory for credcheck.
// Checks XDG_CONFIG_HOME first, falls back to ~/.config.
func ConfigDir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		base = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(base, appName)
}

// ConfigFile returns the default config file path.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// PolicyFile returns the default credential policy path.
func PolicyFile() string {
	return filepath.Join(ConfigDir(), "policy.yaml")
}

// Exists reports whether path names an existing regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
