package config

import (
	"sync"

	"github.com/ytget/png2webp/internal/platform"
)

// Default values
const (
	DefaultQuality       = 1.0
	MinQuality           = 0.01
	MaxQuality           = 1.0
	DefaultLanguage      = "system"
	DefaultMultiple      = true
	FallbackDownloadsDir = "/tmp/downloads"
)

// Settings holds the configuration for the current session. Nothing is
// written back to disk; values start from Defaults and live in memory.
type Settings struct {
	mu          sync.RWMutex
	downloadDir string
	quality     float64
	language    string
	watchDir    string
	multiple    bool
}

// NewSettings creates a settings manager seeded from defaults
func NewSettings(defaults Defaults) *Settings {
	s := &Settings{
		quality:  DefaultQuality,
		language: DefaultLanguage,
		multiple: DefaultMultiple,
	}
	s.apply(defaults)
	return s
}

func (s *Settings) apply(d Defaults) {
	if d.DownloadDirectory != "" {
		s.SetDownloadDirectory(d.DownloadDirectory)
	}
	if d.Quality != nil {
		s.SetQuality(*d.Quality)
	}
	if d.Language != "" {
		s.SetLanguage(d.Language)
	}
	if d.WatchDirectory != "" {
		s.SetWatchDirectory(d.WatchDirectory)
	}
	if d.Multiple != nil {
		s.SetMultiple(*d.Multiple)
	}
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	s.mu.RLock()
	dir := s.downloadDir
	s.mu.RUnlock()
	if dir != "" {
		return dir
	}

	// Use system default Downloads directory
	defaultDir, err := platform.GetHomeDownloadsDir()
	if err != nil {
		defaultDir = FallbackDownloadsDir
	}
	s.SetDownloadDirectory(defaultDir)
	return defaultDir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.mu.Lock()
	s.downloadDir = dir
	s.mu.Unlock()
}

// GetQuality returns the WebP quality factor in [MinQuality, MaxQuality]
func (s *Settings) GetQuality() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.quality
}

// SetQuality sets the WebP quality factor, clamped to the slider range
func (s *Settings) SetQuality(quality float64) {
	if quality < MinQuality {
		quality = MinQuality
	}
	if quality > MaxQuality {
		quality = MaxQuality
	}
	s.mu.Lock()
	s.quality = quality
	s.mu.Unlock()
}

// GetQualityPercent returns the quality as a slider value 1..100
func (s *Settings) GetQualityPercent() int {
	return int(s.GetQuality()*100 + 0.5)
}

// SetQualityPercent sets the quality from a slider value 1..100
func (s *Settings) SetQualityPercent(percent int) {
	s.SetQuality(float64(percent) / 100)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.language
}

// SetLanguage sets the application language; unknown codes fall back to the default
func (s *Settings) SetLanguage(lang string) {
	if _, ok := s.GetLanguageOptions()[lang]; !ok {
		lang = DefaultLanguage
	}
	s.mu.Lock()
	s.language = lang
	s.mu.Unlock()
}

// GetWatchDirectory returns the folder watched for new PNG files; empty disables watching
func (s *Settings) GetWatchDirectory() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.watchDir
}

// SetWatchDirectory sets the watch folder
func (s *Settings) SetWatchDirectory(dir string) {
	s.mu.Lock()
	s.watchDir = dir
	s.mu.Unlock()
}

// GetMultiple returns whether intake accepts several files at once
func (s *Settings) GetMultiple() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.multiple
}

// SetMultiple sets whether intake accepts several files at once
func (s *Settings) SetMultiple(multiple bool) {
	s.mu.Lock()
	s.multiple = multiple
	s.mu.Unlock()
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}
