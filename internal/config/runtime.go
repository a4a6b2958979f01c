package config

import (
	"os"
	"path/filepath"
)

// GetRuntimePath resolves the runtime directory before any config
// struct is parsed, so .env loading can precede env.Parse calls.
func GetRuntimePath() string {
	path := os.Getenv("HELPBUDDY_RUNTIME_PATH")
	if path == "" {
		path = ".helpbuddy"
	}

	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}
