// Package config persists the last-used download settings through Fyne
// preferences so the form comes back the way the user left it.
package config

import (
	"fyne.io/fyne/v2"

	"github.com/ytget/ytdlp-gui/internal/model"
	"github.com/ytget/ytdlp-gui/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyOutputDir       = "output_directory"
	KeyFormatChoice    = "format_choice"
	KeyCustomFormat    = "custom_format"
	KeyQuality         = "quality"
	KeySubtitles       = "subtitles"
	KeyEmbedMetadata   = "embed_metadata"
	KeyAdvancedOptions = "advanced_options"
)

// Default values
const (
	DefaultFormatChoice = model.FormatBest
	DefaultQuality      = model.QualityBestAvailable
)

// Settings manages persisted application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetOutputDirectory returns the configured output directory, falling back
// to the system Downloads directory.
func (s *Settings) GetOutputDirectory() string {
	dir := s.app.Preferences().String(KeyOutputDir)
	if dir == "" {
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			return ""
		}
		s.SetOutputDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetOutputDirectory sets the output directory
func (s *Settings) SetOutputDirectory(dir string) {
	s.app.Preferences().SetString(KeyOutputDir, dir)
}

// GetFormatChoice returns the configured format choice
func (s *Settings) GetFormatChoice() model.FormatChoice {
	choice := model.FormatChoice(s.app.Preferences().String(KeyFormatChoice))
	switch choice {
	case model.FormatBest, model.FormatAudio, model.FormatCustom:
		return choice
	}
	return DefaultFormatChoice
}

// SetFormatChoice sets the format choice
func (s *Settings) SetFormatChoice(choice model.FormatChoice) {
	s.app.Preferences().SetString(KeyFormatChoice, string(choice))
}

// GetQuality returns the configured quality label
func (s *Settings) GetQuality() string {
	quality := s.app.Preferences().String(KeyQuality)
	if _, ok := model.QualityFormats[quality]; !ok {
		return DefaultQuality
	}
	return quality
}

// SetQuality sets the quality label
func (s *Settings) SetQuality(quality string) {
	s.app.Preferences().SetString(KeyQuality, quality)
}

// LoadDownloadSettings assembles a Settings value from the stored
// preferences. The URL text is intentionally not persisted.
func (s *Settings) LoadDownloadSettings() model.Settings {
	prefs := s.app.Preferences()
	return model.Settings{
		OutputDir:       s.GetOutputDirectory(),
		FormatChoice:    s.GetFormatChoice(),
		CustomFormat:    prefs.String(KeyCustomFormat),
		Quality:         s.GetQuality(),
		Subtitles:       prefs.Bool(KeySubtitles),
		EmbedMetadata:   prefs.Bool(KeyEmbedMetadata),
		AdvancedOptions: prefs.String(KeyAdvancedOptions),
	}
}

// SaveDownloadSettings persists everything except the URL text.
func (s *Settings) SaveDownloadSettings(ds model.Settings) {
	prefs := s.app.Preferences()
	s.SetOutputDirectory(ds.OutputDir)
	s.SetFormatChoice(ds.FormatChoice)
	prefs.SetString(KeyCustomFormat, ds.CustomFormat)
	s.SetQuality(ds.Quality)
	prefs.SetBool(KeySubtitles, ds.Subtitles)
	prefs.SetBool(KeyEmbedMetadata, ds.EmbedMetadata)
	prefs.SetString(KeyAdvancedOptions, ds.AdvancedOptions)
}
