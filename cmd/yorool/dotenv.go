// ABOUTME: Loads environment variables from .env files at startup via godotenv.
// ABOUTME: Existing environment variables always win; missing files are ignored.
package main

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// dotEnvCandidates lists .env files in the working directory and its
// parents, then next to the executable, without duplicates.
func dotEnvCandidates() []string {
	seen := map[string]bool{}
	var paths []string
	add := func(p string) {
		if p == "" || seen[p] {
			return
		}
		seen[p] = true
		paths = append(paths, p)
	}

	if wd, err := os.Getwd(); err == nil {
		dir := wd
		for {
			add(filepath.Join(dir, ".env"))
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}
	if exe, err := os.Executable(); err == nil {
		add(filepath.Join(filepath.Dir(exe), ".env"))
	}
	return paths
}

// loadDotEnv loads every existing candidate. godotenv.Load never overrides
// variables already set, so nearer files take precedence.
func loadDotEnv(paths []string) []string {
	var loaded []string
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err == nil {
			loaded = append(loaded, p)
		}
	}
	return loaded
}
