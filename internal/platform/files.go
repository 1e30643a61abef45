package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Output file naming
const (
	MP3Extension    = ".mp3"
	TempFileSuffix  = ".part"
	DefaultFileName = "audio"
)

// invalidFilenameChars are replaced with underscores when deriving a file
// name from a video title.
const invalidFilenameChars = `<>:"/\|?*`

// CreateDirectoryIfNotExists creates the directory if it does not exist
func CreateDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, DefaultDirPermissions)
	}
	return nil
}

// GetHomeDownloadsDir returns the user's Downloads directory
func GetHomeDownloadsDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, "Downloads"), nil
}

// EnsureMP3Extension appends ".mp3" unless the path already carries it
func EnsureMP3Extension(path string) string {
	if strings.EqualFold(filepath.Ext(path), MP3Extension) {
		return path
	}
	return path + MP3Extension
}

// SanitizeFilename replaces characters that are invalid in file names with
// underscores and trims surrounding whitespace.
func SanitizeFilename(name string) string {
	sanitized := strings.Map(func(r rune) rune {
		if strings.ContainsRune(invalidFilenameChars, r) {
			return '_'
		}
		return r
	}, name)
	return strings.TrimSpace(sanitized)
}

// SuggestedFilename derives a save-dialog file name from a video title
func SuggestedFilename(title string) string {
	name := strings.Trim(SanitizeFilename(title), ". ")
	if name == "" {
		name = DefaultFileName
	}
	return name + MP3Extension
}

// TempPath returns the temporary sibling path for a destination. The temp
// file lives in the same directory so the final rename stays atomic.
func TempPath(destinationPath string) string {
	return destinationPath + TempFileSuffix
}

// CommitTempFile atomically moves the temp file into the destination
func CommitTempFile(tempPath, destinationPath string) error {
	if err := os.Rename(tempPath, destinationPath); err != nil {
		return fmt.Errorf("failed to move temp file into place: %w", err)
	}
	return nil
}

// DiscardTempFile removes a temp file, tolerating it being already gone
func DiscardTempFile(tempPath string) {
	if err := os.Remove(tempPath); err != nil && !os.IsNotExist(err) {
		// Leftover temp files are reported on the next run, not fatal here
		return
	}
}

// CheckParentWritable verifies the destination's parent directory exists and
// accepts new files.
func CheckParentWritable(destinationPath string) error {
	parent := filepath.Dir(destinationPath)
	info, err := os.Stat(parent)
	if err != nil {
		return fmt.Errorf("destination directory does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("destination parent is not a directory: %s", parent)
	}
	probe, err := os.CreateTemp(parent, ".mp3get-probe-*")
	if err != nil {
		return fmt.Errorf("destination directory is not writable: %w", err)
	}
	name := probe.Name()
	probe.Close()
	os.Remove(name)
	return nil
}

// FormatBytes renders a byte count in human-readable form
func FormatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// RenewOutputPath returns a non-existing variant of the path by inserting a
// "-(n)" suffix before the extension.
func RenewOutputPath(outputPath string) string {
	dir := filepath.Dir(outputPath)
	base := filepath.Base(outputPath)
	ext := filepath.Ext(base)
	name := base[:len(base)-len(ext)]
	index := 1
	for {
		outputPath = filepath.Join(dir, fmt.Sprintf("%s-(%d)%s", name, index, ext))
		if _, err := os.Stat(outputPath); os.IsNotExist(err) {
			return outputPath
		}
		index++
	}
}
