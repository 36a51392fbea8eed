package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SetupDocs creates a temporary project with documents under source/json.
// docs maps document ids to file contents. Returns the project directory and
// the document root.
func SetupDocs(t *testing.T, docs map[string]string) (projectDir, sourceDir string) {
	t.Helper()

	projectDir = t.TempDir()
	sourceDir = filepath.Join(projectDir, "source", "json")
	if err := os.MkdirAll(sourceDir, 0755); err != nil {
		t.Fatal(err)
	}

	for id, content := range docs {
		WriteFile(t, filepath.Join(sourceDir, filepath.FromSlash(id)+".json"), content)
	}
	return projectDir, sourceDir
}

// WriteFile writes content to path, creating parent directories.
// Fails the test on error.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}
