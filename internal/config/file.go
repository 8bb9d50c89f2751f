package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ytget/ytdlp-gui/internal/model"
)

// Config file locations and environment prefix
const (
	EnvPrefix      = "YTDLPGUI"
	ConfigDirName  = ".ytdlp-gui"
	HistoryDBName  = "history.db"
	DefaultBinName = "yt-dlp"
)

// FileConfig holds the settings read from the YAML config file and the
// environment. It backs the terminal and headless modes, which have no
// preference store of their own.
type FileConfig struct {
	Engine struct {
		Binary string `mapstructure:"binary"`
	} `mapstructure:"engine"`

	Download struct {
		OutputDir       string `mapstructure:"output_dir"`
		FormatChoice    string `mapstructure:"format_choice"`
		CustomFormat    string `mapstructure:"custom_format"`
		Quality         string `mapstructure:"quality"`
		Subtitles       bool   `mapstructure:"subtitles"`
		EmbedMetadata   bool   `mapstructure:"embed_metadata"`
		AdvancedOptions string `mapstructure:"advanced_options"`
	} `mapstructure:"download"`

	History struct {
		Disabled bool   `mapstructure:"disabled"`
		Path     string `mapstructure:"path"`
	} `mapstructure:"history"`

	Logging struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"logging"`
}

// DefaultFileConfig returns the built-in defaults.
func DefaultFileConfig() *FileConfig {
	cfg := &FileConfig{}
	cfg.Engine.Binary = DefaultBinName
	cfg.Download.FormatChoice = string(DefaultFormatChoice)
	cfg.Download.Quality = DefaultQuality
	cfg.Logging.Level = "info"
	return cfg
}

// LoadFileConfig loads configuration from file and environment. A missing
// config file is not an error; defaults apply.
func LoadFileConfig(configPath string) (*FileConfig, error) {
	cfg := DefaultFileConfig()

	v := viper.New()
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("$HOME/" + ConfigDirName)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Download.OutputDir = expandPath(cfg.Download.OutputDir)
	cfg.History.Path = expandPath(cfg.History.Path)
	return cfg, nil
}

// DownloadSettings maps the file configuration onto the settings model.
func (c *FileConfig) DownloadSettings() model.Settings {
	choice := model.FormatChoice(c.Download.FormatChoice)
	switch choice {
	case model.FormatBest, model.FormatAudio, model.FormatCustom:
	default:
		choice = DefaultFormatChoice
	}
	quality := c.Download.Quality
	if _, ok := model.QualityFormats[quality]; !ok {
		quality = DefaultQuality
	}
	return model.Settings{
		OutputDir:       c.Download.OutputDir,
		FormatChoice:    choice,
		CustomFormat:    c.Download.CustomFormat,
		Quality:         quality,
		Subtitles:       c.Download.Subtitles,
		EmbedMetadata:   c.Download.EmbedMetadata,
		AdvancedOptions: c.Download.AdvancedOptions,
	}
}

// HistoryPath returns the history database location, or "" when history
// recording is disabled.
func (c *FileConfig) HistoryPath() string {
	if c.History.Disabled {
		return ""
	}
	if c.History.Path != "" {
		return c.History.Path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ConfigDirName, HistoryDBName)
}

// expandPath expands environment variables and ~ in paths.
func expandPath(path string) string {
	path = os.ExpandEnv(path)
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return path
}
