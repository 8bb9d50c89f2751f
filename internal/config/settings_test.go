package config

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/ytdlp-gui/internal/model"
)

func TestNewSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.app != app {
		t.Error("Settings app reference should match provided app")
	}
}

func TestOutputDirectory(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	dir := settings.GetOutputDirectory()
	if dir == "" {
		t.Error("Output directory should not be empty")
	}

	// Test setting custom value
	customDir := "/custom/videos"
	settings.SetOutputDirectory(customDir)

	if got := settings.GetOutputDirectory(); got != customDir {
		t.Errorf("Expected output directory %s, got %s", customDir, got)
	}
}

func TestFormatChoice(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if got := settings.GetFormatChoice(); got != DefaultFormatChoice {
		t.Errorf("Expected default format choice %s, got %s", DefaultFormatChoice, got)
	}

	settings.SetFormatChoice(model.FormatAudio)
	if got := settings.GetFormatChoice(); got != model.FormatAudio {
		t.Errorf("Expected format choice %s, got %s", model.FormatAudio, got)
	}

	// Invalid stored value falls back to the default
	app.Preferences().SetString(KeyFormatChoice, "nonsense")
	if got := settings.GetFormatChoice(); got != DefaultFormatChoice {
		t.Errorf("Expected fallback to %s, got %s", DefaultFormatChoice, got)
	}
}

func TestQuality(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if got := settings.GetQuality(); got != DefaultQuality {
		t.Errorf("Expected default quality %s, got %s", DefaultQuality, got)
	}

	settings.SetQuality("720p")
	if got := settings.GetQuality(); got != "720p" {
		t.Errorf("Expected quality 720p, got %s", got)
	}

	// Unknown labels fall back to the default
	app.Preferences().SetString(KeyQuality, "999p")
	if got := settings.GetQuality(); got != DefaultQuality {
		t.Errorf("Expected fallback to %s, got %s", DefaultQuality, got)
	}
}

func TestDownloadSettingsRoundTrip(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	saved := model.Settings{
		URLs:            "https://a.example/1",
		OutputDir:       "/custom/videos",
		FormatChoice:    model.FormatCustom,
		CustomFormat:    "bv*+ba",
		Quality:         "1080p",
		Subtitles:       true,
		EmbedMetadata:   true,
		AdvancedOptions: "--limit-rate 1M",
	}
	settings.SaveDownloadSettings(saved)

	loaded := settings.LoadDownloadSettings()
	if loaded.URLs != "" {
		t.Error("URL text must not be persisted")
	}
	saved.URLs = ""
	if loaded != saved {
		t.Errorf("round trip diverged: %+v vs %+v", loaded, saved)
	}
}
