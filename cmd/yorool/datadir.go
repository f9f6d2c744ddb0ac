// ABOUTME: XDG-based data directory resolution for the yorool CLI.
// ABOUTME: Checks XDG_DATA_HOME and falls back to ~/.local/share/yorool.
package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// defaultDataDir returns the default data directory for yorool traces.
// It checks XDG_DATA_HOME first, then falls back to ~/.local/share/yorool.
func defaultDataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "yorool"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	return filepath.Join(home, ".local", "share", "yorool"), nil
}

// resolveDataDir returns flagValue when set, otherwise the default, and
// makes sure the directory exists.
func resolveDataDir(flagValue string) (string, error) {
	dir := flagValue
	if dir == "" {
		var err error
		if dir, err = defaultDataDir(); err != nil {
			return "", err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create data dir: %w", err)
	}
	return dir, nil
}
