// ABOUTME: Tests for XDG-based data directory resolution used by the yorool CLI.
// ABOUTME: Covers XDG_DATA_HOME override, default fallback to ~/.local/share/yorool, and flag overrides.
package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultDataDirUsesXDGDataHome(t *testing.T) {
	customDir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", customDir)

	got, err := defaultDataDir()
	if err != nil {
		t.Fatalf("defaultDataDir failed: %v", err)
	}

	want := filepath.Join(customDir, "yorool")
	if got != want {
		t.Errorf("defaultDataDir() = %q, want %q", got, want)
	}
}

func TestDefaultDataDirFallsBackToHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("HOME", home)

	got, err := defaultDataDir()
	if err != nil {
		t.Fatalf("defaultDataDir failed: %v", err)
	}

	want := filepath.Join(home, ".local", "share", "yorool")
	if got != want {
		t.Errorf("defaultDataDir() = %q, want %q", got, want)
	}
}

func TestResolveDataDirCreatesFlagDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	got, err := resolveDataDir(dir)
	if err != nil {
		t.Fatalf("resolveDataDir failed: %v", err)
	}
	if got != dir {
		t.Errorf("resolveDataDir() = %q, want %q", got, dir)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("data dir not created: %v", err)
	}
}
