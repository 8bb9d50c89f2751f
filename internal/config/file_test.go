package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ytget/ytdlp-gui/internal/model"
)

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig()
	if cfg.Engine.Binary != DefaultBinName {
		t.Errorf("default binary = %q", cfg.Engine.Binary)
	}
	if cfg.Download.Quality != DefaultQuality {
		t.Errorf("default quality = %q", cfg.Download.Quality)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("default log level = %q", cfg.Logging.Level)
	}
}

func TestLoadFileConfig_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
engine:
  binary: /usr/local/bin/yt-dlp
download:
  output_dir: /srv/videos
  format_choice: audio
  quality: 720p
  subtitles: true
history:
  disabled: true
logging:
  level: debug
`)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFileConfig(path)
	if err != nil {
		t.Fatalf("LoadFileConfig() error: %v", err)
	}

	if cfg.Engine.Binary != "/usr/local/bin/yt-dlp" {
		t.Errorf("binary = %q", cfg.Engine.Binary)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level = %q", cfg.Logging.Level)
	}
	if cfg.HistoryPath() != "" {
		t.Error("disabled history should have empty path")
	}

	settings := cfg.DownloadSettings()
	if settings.OutputDir != "/srv/videos" {
		t.Errorf("OutputDir = %q", settings.OutputDir)
	}
	if settings.FormatChoice != model.FormatAudio {
		t.Errorf("FormatChoice = %q", settings.FormatChoice)
	}
	if settings.Quality != "720p" {
		t.Errorf("Quality = %q", settings.Quality)
	}
	if !settings.Subtitles {
		t.Error("Subtitles not set")
	}
}

func TestDownloadSettings_InvalidValuesFallBack(t *testing.T) {
	cfg := DefaultFileConfig()
	cfg.Download.FormatChoice = "nonsense"
	cfg.Download.Quality = "999p"

	settings := cfg.DownloadSettings()
	if settings.FormatChoice != DefaultFormatChoice {
		t.Errorf("FormatChoice = %q, expected fallback", settings.FormatChoice)
	}
	if settings.Quality != DefaultQuality {
		t.Errorf("Quality = %q, expected fallback", settings.Quality)
	}
}
