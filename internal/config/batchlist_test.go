package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeBatchFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write batch file: %v", err)
	}
	return path
}

func TestReadBatchList(t *testing.T) {
	path := writeBatchFile(t, `downloads:
  - link: https://www.youtube.com/watch?v=dQw4w9WgXcQ
    op: /tmp/song.mp3
  - link: https://youtu.be/jNQXAC9IVRw
`)

	entries, err := ReadBatchList(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}
	if entries[0].Link != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
		t.Errorf("Unexpected first link: %s", entries[0].Link)
	}
	if entries[0].OutputPath != "/tmp/song.mp3" {
		t.Errorf("Unexpected output path: %s", entries[0].OutputPath)
	}
	if entries[1].OutputPath != "" {
		t.Errorf("Expected empty output path, got %s", entries[1].OutputPath)
	}
}

func TestReadBatchList_SkipsEmptyLinks(t *testing.T) {
	path := writeBatchFile(t, `downloads:
  - link: ""
  - link: https://youtu.be/jNQXAC9IVRw
`)

	entries, err := ReadBatchList(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(entries))
	}
}

func TestReadBatchList_MissingFile(t *testing.T) {
	_, err := ReadBatchList("/nonexistent/batch.yaml")
	if err == nil {
		t.Error("Expected error for missing file, got nil")
	}
}

func TestReadBatchList_InvalidYAML(t *testing.T) {
	path := writeBatchFile(t, "downloads: [unclosed")

	_, err := ReadBatchList(path)
	if err == nil {
		t.Error("Expected error for invalid YAML, got nil")
	}
}
