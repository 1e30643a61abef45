package platform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCreateDirectoryIfNotExists(t *testing.T) {
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "test_dir")

	if _, err := os.Stat(testDir); !os.IsNotExist(err) {
		t.Fatalf("Test directory already exists: %s", testDir)
	}

	err := CreateDirectoryIfNotExists(testDir)
	if err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}

	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}

	// Second call should not fail
	err = CreateDirectoryIfNotExists(testDir)
	if err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestGetHomeDownloadsDir(t *testing.T) {
	downloadsDir, err := GetHomeDownloadsDir()
	if err != nil {
		t.Fatalf("Failed to get downloads directory: %v", err)
	}

	if downloadsDir == "" {
		t.Fatal("Downloads directory is empty")
	}

	if filepath.Base(downloadsDir) != "Downloads" {
		t.Errorf("Expected directory to end with 'Downloads', got: %s", downloadsDir)
	}
}

func TestEnsureMP3Extension(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/tmp/song.mp3", "/tmp/song.mp3"},
		{"/tmp/song.MP3", "/tmp/song.MP3"},
		{"/tmp/song", "/tmp/song.mp3"},
		{"/tmp/song.wav", "/tmp/song.wav.mp3"},
		{"song", "song.mp3"},
	}

	for _, test := range tests {
		result := EnsureMP3Extension(test.path)
		if result != test.expected {
			t.Errorf("EnsureMP3Extension(%s) = %s, expected %s", test.path, result, test.expected)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"test/file.mp3", "test_file.mp3"},
		{"normal-name.mp3", "normal-name.mp3"},
		{`a<b>c:d"e`, "a_b_c_d_e"},
		{"  padded  ", "padded"},
		{`back\slash|pipe?q*star`, "back_slash_pipe_q_star"},
	}

	for _, test := range tests {
		result := SanitizeFilename(test.name)
		if result != test.expected {
			t.Errorf("SanitizeFilename(%s) = %s, expected %s", test.name, result, test.expected)
		}
	}
}

func TestSuggestedFilename(t *testing.T) {
	tests := []struct {
		title    string
		expected string
	}{
		{"My Song", "My Song.mp3"},
		{"Trailing dots...", "Trailing dots.mp3"},
		{"a/b", "a_b.mp3"},
		{"", "audio.mp3"},
		{"...", "audio.mp3"},
	}

	for _, test := range tests {
		result := SuggestedFilename(test.title)
		if result != test.expected {
			t.Errorf("SuggestedFilename(%s) = %s, expected %s", test.title, result, test.expected)
		}
	}
}

func TestTempPathAndCommit(t *testing.T) {
	tempDir := t.TempDir()
	dest := filepath.Join(tempDir, "out.mp3")
	temp := TempPath(dest)

	if !strings.HasSuffix(temp, ".part") {
		t.Errorf("TempPath should end with .part, got %s", temp)
	}
	if filepath.Dir(temp) != filepath.Dir(dest) {
		t.Error("Temp file must live in the destination directory")
	}

	if err := os.WriteFile(temp, []byte("mp3 bytes"), 0644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}

	if err := CommitTempFile(temp, dest); err != nil {
		t.Fatalf("CommitTempFile failed: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("Destination file missing after commit: %v", err)
	}
	if string(data) != "mp3 bytes" {
		t.Errorf("Destination content = %q, expected 'mp3 bytes'", data)
	}
	if _, err := os.Stat(temp); !os.IsNotExist(err) {
		t.Error("Temp file should be gone after commit")
	}
}

func TestDiscardTempFile(t *testing.T) {
	tempDir := t.TempDir()
	temp := filepath.Join(tempDir, "out.mp3.part")

	if err := os.WriteFile(temp, []byte("partial"), 0644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}

	DiscardTempFile(temp)
	if _, err := os.Stat(temp); !os.IsNotExist(err) {
		t.Error("Temp file should be removed")
	}

	// Discarding a missing file must not panic
	DiscardTempFile(temp)
}

func TestCheckParentWritable(t *testing.T) {
	tempDir := t.TempDir()

	if err := CheckParentWritable(filepath.Join(tempDir, "out.mp3")); err != nil {
		t.Errorf("Expected writable parent, got error: %v", err)
	}

	missing := filepath.Join(tempDir, "no-such-dir", "out.mp3")
	if err := CheckParentWritable(missing); err == nil {
		t.Error("Expected error for missing parent directory, got nil")
	}
}

func TestRenewOutputPath(t *testing.T) {
	tempDir := t.TempDir()
	existing := filepath.Join(tempDir, "song.mp3")
	if err := os.WriteFile(existing, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	renewed := RenewOutputPath(existing)
	if renewed == existing {
		t.Error("RenewOutputPath should not return the original path")
	}
	if filepath.Base(renewed) != "song-(1).mp3" {
		t.Errorf("Expected song-(1).mp3, got %s", filepath.Base(renewed))
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes    uint64
		expected string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1048576, "1.00 MB"},
		{5242880, "5.00 MB"},
		{1073741824, "1.00 GB"},
	}

	for _, test := range tests {
		result := FormatBytes(test.bytes)
		if result != test.expected {
			t.Errorf("FormatBytes(%d): expected %s, got %s", test.bytes, test.expected, result)
		}
	}
}
