package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DotEnvFile is read for GITHUB_TOKEN when present.
const DotEnvFile = ".env"

// ExpandPath expands a leading ~ or ~/ to the user's home directory.
// ~user forms are returned unchanged.
func ExpandPath(path string) (string, error) {
	rest, ok := strings.CutPrefix(path, "~")
	if !ok || (rest != "" && rest[0] != '/' && rest[0] != filepath.Separator) {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("expanding %s: %w", path, err)
	}
	return filepath.Join(home, rest), nil
}

// RelativeTo resolves path against the directory holding configFile.
// Absolute paths and an empty configFile leave path unchanged.
func RelativeTo(configFile, path string) string {
	if configFile == "" || path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(filepath.Dir(configFile), path)
}
