package test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteCorpus writes the given JSONL lines as a corpus fixture and
// returns its path.
func WriteCorpus(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.jsonl")
	data := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("failed to write corpus fixture: %v", err)
	}
	return path
}
