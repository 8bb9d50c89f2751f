package model

import "strings"

// FormatChoice selects how the format expression is derived.
type FormatChoice string

const (
	// FormatBest picks the best stream for the selected quality label.
	FormatBest FormatChoice = "best"

	// FormatAudio requests audio-only streams regardless of quality.
	FormatAudio FormatChoice = "audio"

	// FormatCustom uses the free-text selector from CustomFormat.
	FormatCustom FormatChoice = "custom"
)

// QualityBestAvailable is the quality label that leaves format selection
// entirely to the engine.
const QualityBestAvailable = "Best available"

// AudioFormatExpr is the fixed selector used for FormatAudio.
const AudioFormatExpr = "bestaudio/best"

// QualityFormats maps quality labels to format-selector expressions. The
// empty expression means "no explicit selector".
var QualityFormats = map[string]string{
	QualityBestAvailable: "",
	"2160p":              "bv*[height<=2160]+ba/b[height<=2160]",
	"1440p":              "bv*[height<=1440]+ba/b[height<=1440]",
	"1080p":              "bv*[height<=1080]+ba/b[height<=1080]",
	"720p":               "bv*[height<=720]+ba/b[height<=720]",
	"480p":               "bv*[height<=480]+ba/b[height<=480]",
}

// QualityLabels returns the quality labels in display order.
func QualityLabels() []string {
	return []string{QualityBestAvailable, "2160p", "1440p", "1080p", "720p", "480p"}
}

// Settings captures every user-facing download option. It is a plain value
// object: construct it, pass it by value, never mutate a shared copy.
type Settings struct {
	URLs            string // raw multi-line / comma-separated URL text
	OutputDir       string // empty means engine default
	FormatChoice    FormatChoice
	CustomFormat    string // meaningful only with FormatCustom
	Quality         string // quality label, see QualityFormats
	Subtitles       bool   // download subtitles for all languages
	EmbedMetadata   bool   // embed metadata and thumbnail
	AdvancedOptions string // extra engine CLI arguments, shell-quoted
}

// SplitURLs normalizes raw URL text: commas and newlines both separate
// entries, surrounding whitespace is trimmed, empties are dropped, input
// order is preserved.
func SplitURLs(raw string) []string {
	var urls []string
	for _, line := range strings.Split(strings.ReplaceAll(raw, ",", "\n"), "\n") {
		if u := strings.TrimSpace(line); u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

// BuildFormat derives the format-selector expression for the settings.
// An empty result means the engine default applies. FormatAudio overrides
// the quality label; a blank custom format degrades to the engine default
// rather than erroring.
func BuildFormat(s Settings) string {
	switch s.FormatChoice {
	case FormatAudio:
		return AudioFormatExpr
	case FormatCustom:
		return strings.TrimSpace(s.CustomFormat)
	}
	return QualityFormats[s.Quality]
}
