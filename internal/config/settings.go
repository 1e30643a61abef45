package config

import (
	"fyne.io/fyne/v2"
	"github.com/ytget/mp3get/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeySaveDir      = "save_directory"
	KeyReEncode     = "re_encode_audio"
	KeyBitrate      = "audio_bitrate"
	KeyDebugLogging = "debug_logging"
)

// Default values
const (
	DefaultReEncode     = false
	DefaultBitrate      = "192k"
	DefaultDebugLogging = false
)

// BitrateOptions lists the selectable MP3 bitrates.
var BitrateOptions = []string{"128k", "192k", "256k", "320k"}

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetSaveDirectory returns the directory offered as the initial save location
func (s *Settings) GetSaveDirectory() string {
	dir := s.app.Preferences().String(KeySaveDir)
	if dir == "" {
		// Use system default Downloads directory
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = "/tmp/downloads"
		}
		s.SetSaveDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetSaveDirectory sets the initial save location
func (s *Settings) SetSaveDirectory(dir string) {
	s.app.Preferences().SetString(KeySaveDir, dir)
}

// GetReEncode returns whether downloads are re-encoded through ffmpeg
func (s *Settings) GetReEncode() bool {
	return s.app.Preferences().BoolWithFallback(KeyReEncode, DefaultReEncode)
}

// SetReEncode sets whether downloads are re-encoded through ffmpeg
func (s *Settings) SetReEncode(reEncode bool) {
	s.app.Preferences().SetBool(KeyReEncode, reEncode)
}

// GetBitrate returns the configured re-encoding bitrate
func (s *Settings) GetBitrate() string {
	bitrate := s.app.Preferences().String(KeyBitrate)
	if bitrate == "" {
		s.SetBitrate(DefaultBitrate)
		return DefaultBitrate
	}
	return bitrate
}

// SetBitrate sets the re-encoding bitrate
func (s *Settings) SetBitrate(bitrate string) {
	if bitrate == "" {
		bitrate = DefaultBitrate
	}
	s.app.Preferences().SetString(KeyBitrate, bitrate)
}

// GetDebugLogging returns whether debug logging is enabled
func (s *Settings) GetDebugLogging() bool {
	return s.app.Preferences().BoolWithFallback(KeyDebugLogging, DefaultDebugLogging)
}

// SetDebugLogging sets whether debug logging is enabled
func (s *Settings) SetDebugLogging(debug bool) {
	s.app.Preferences().SetBool(KeyDebugLogging, debug)
}
