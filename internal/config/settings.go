package config

import (
	"fyne.io/fyne/v2"

	"github.com/tubefetch/tubefetch/internal/engine"
	"github.com/tubefetch/tubefetch/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir      = "download_directory"
	KeyMaxParallel      = "max_parallel_downloads"
	KeyDownloadKind     = "download_kind"
	KeyVideoQuality     = "video_quality"
	KeyFilenameTemplate = "filename_template"
)

// Default values
const (
	DefaultMaxParallel      = 2
	DefaultDownloadKind     = engine.KindVideo
	DefaultVideoQuality     = "1080p"
	DefaultFilenameTemplate = "%(title)s.%(ext)s"
)

// Concurrency budget bounds exposed to the user
const (
	MinParallel = 1
	MaxParallel = 5
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = "/tmp/downloads"
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetMaxParallelDownloads returns the concurrency budget for the next
// dispatch. Changing it mid-dispatch only affects later dispatches.
func (s *Settings) GetMaxParallelDownloads() int {
	value := s.app.Preferences().Int(KeyMaxParallel)
	if value <= 0 {
		s.SetMaxParallelDownloads(DefaultMaxParallel)
		return DefaultMaxParallel
	}
	return value
}

// SetMaxParallelDownloads sets the concurrency budget, clamped to [1, 5]
func (s *Settings) SetMaxParallelDownloads(count int) {
	if count < MinParallel {
		count = MinParallel
	}
	if count > MaxParallel {
		count = MaxParallel
	}
	s.app.Preferences().SetInt(KeyMaxParallel, count)
}

// GetDownloadKind returns "video" or "audio"
func (s *Settings) GetDownloadKind() string {
	kind := s.app.Preferences().String(KeyDownloadKind)
	if kind == "" {
		s.SetDownloadKind(DefaultDownloadKind)
		return DefaultDownloadKind
	}
	return kind
}

// SetDownloadKind sets the download kind
func (s *Settings) SetDownloadKind(kind string) {
	if kind != engine.KindVideo && kind != engine.KindAudio {
		kind = DefaultDownloadKind
	}
	s.app.Preferences().SetString(KeyDownloadKind, kind)
}

// GetVideoQuality returns the configured quality cap
func (s *Settings) GetVideoQuality() string {
	quality := s.app.Preferences().String(KeyVideoQuality)
	if quality == "" {
		s.SetVideoQuality(DefaultVideoQuality)
		return DefaultVideoQuality
	}
	return quality
}

// SetVideoQuality sets the quality cap
func (s *Settings) SetVideoQuality(quality string) {
	s.app.Preferences().SetString(KeyVideoQuality, quality)
}

// GetFilenameTemplate returns the output filename template
func (s *Settings) GetFilenameTemplate() string {
	template := s.app.Preferences().String(KeyFilenameTemplate)
	if template == "" {
		s.SetFilenameTemplate(DefaultFilenameTemplate)
		return DefaultFilenameTemplate
	}
	return template
}

// SetFilenameTemplate sets the output filename template
func (s *Settings) SetFilenameTemplate(template string) {
	if template == "" {
		template = DefaultFilenameTemplate
	}
	s.app.Preferences().SetString(KeyFilenameTemplate, template)
}

// GetVideoQualityOptions returns the selectable quality caps
func (s *Settings) GetVideoQualityOptions() []string {
	return []string{"4k", "1080p", "720p", "480p"}
}

// StartOptions assembles the engine output options from current settings
func (s *Settings) StartOptions() engine.StartOptions {
	return engine.StartOptions{
		OutputDir:        s.GetDownloadDirectory(),
		Kind:             s.GetDownloadKind(),
		Quality:          s.GetVideoQuality(),
		FilenameTemplate: s.GetFilenameTemplate(),
	}
}
