package config

import (
	"net/url"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"

	"github.com/ytget/silk-installer/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyArchiveURL  = "archive_url"
	KeyArchiveName = "archive_name"
	KeyDownloadDir = "download_directory"
	KeyLanguage    = "app_language"
)

// Default values
const (
	DefaultArchiveURL  = "https://github.com/BepInEx/BepInEx/releases/download/v5.4.23.2/BepInEx_win_x64_5.4.23.2.zip"
	DefaultArchiveName = "BepInEx.zip"
	DefaultLanguage    = "system"
	FallbackDownloads  = "downloads"
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetArchiveURL returns the URL the archive is downloaded from
func (s *Settings) GetArchiveURL() string {
	archiveURL := s.app.Preferences().String(KeyArchiveURL)
	if archiveURL == "" {
		s.SetArchiveURL(DefaultArchiveURL)
		return DefaultArchiveURL
	}
	return archiveURL
}

// SetArchiveURL sets the archive URL. Values that are not absolute http(s)
// URLs reset it to the default.
func (s *Settings) SetArchiveURL(archiveURL string) {
	archiveURL = strings.TrimSpace(archiveURL)
	if !isHTTPURL(archiveURL) {
		archiveURL = DefaultArchiveURL
	}
	s.app.Preferences().SetString(KeyArchiveURL, archiveURL)
}

// GetArchiveName returns the file name the archive is saved under
func (s *Settings) GetArchiveName() string {
	name := s.app.Preferences().String(KeyArchiveName)
	if name == "" {
		s.SetArchiveName(DefaultArchiveName)
		return DefaultArchiveName
	}
	return name
}

// SetArchiveName sets the archive file name; directory components are dropped
func (s *Settings) SetArchiveName(name string) {
	name = filepath.Base(strings.TrimSpace(name))
	if name == "." || name == ".." || name == string(filepath.Separator) || name == "" {
		name = DefaultArchiveName
	}
	s.app.Preferences().SetString(KeyArchiveName, name)
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		// Use system default Downloads directory
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = FallbackDownloads
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

// GetArchivePath returns the full path the archive is downloaded to
func (s *Settings) GetArchivePath() string {
	return filepath.Join(s.GetDownloadDirectory(), s.GetArchiveName())
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
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

func isHTTPURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}
