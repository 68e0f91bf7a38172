// Package testutil provides test helpers for CLI tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteFile creates a file with the given content in the specified directory.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create parent dirs for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
	return path
}

// ReadFile returns the content of dir/name.
func ReadFile(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("failed to read file %s: %v", name, err)
	}
	return string(data)
}

// Document wraps app objects into an applications document.
func Document(apps ...string) string {
	return `{"apps": [` + strings.Join(apps, ",\n") + "]}\n"
}

// App is a complete, valid entry for tests. Use it with Document.
const App = `{
  "id": "org.example.emu",
  "url": "https://github.com/example/emu",
  "author": "example",
  "name": "Emu",
  "additionalSettings": {"includePrereleases": false},
  "categories": ["Emulator"],
  "overrideSource": "GitHub"
}`

// Workspace writes a document to dir/src/applications.json and returns
// its path. The directory layout matches the default config.
func Workspace(t *testing.T, doc string) (dir, source string) {
	t.Helper()
	dir = t.TempDir()
	source = WriteFile(t, dir, filepath.Join("src", "applications.json"), doc)
	return dir, source
}
