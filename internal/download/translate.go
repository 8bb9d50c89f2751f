package download

import (
	"strings"

	shellwords "github.com/mattn/go-shellwords"

	"github.com/ytget/ytdlp-gui/internal/engine"
	"github.com/ytget/ytdlp-gui/internal/model"
)

// Translate maps user settings plus a URL list onto the engine's option
// schema. The argument vector is assembled in fixed precedence (output
// directory, format selector, subtitle flags, metadata flags, advanced
// tokens) and then handed to the engine's own option parser, whose
// diagnostics are captured into the returned error rather than leaking to
// the console. The second return value is the engine-normalized URL list.
func Translate(urls []string, s model.Settings, eng engine.Engine) (*engine.Options, []string, error) {
	clean := make([]string, 0, len(urls))
	for _, u := range urls {
		if u = strings.TrimSpace(u); u != "" {
			clean = append(clean, u)
		}
	}
	if len(clean) == 0 {
		return nil, nil, NewValidationError("at least one URL is required")
	}

	args, err := buildArgs(s)
	if err != nil {
		return nil, nil, err
	}

	opts, parsed, err := eng.ParseOptions(append(args, clean...))
	if err != nil {
		return nil, nil, NewValidationError("unable to parse options: %v", err)
	}
	return opts, parsed, nil
}

// buildArgs assembles the engine argument vector from settings.
func buildArgs(s model.Settings) ([]string, error) {
	var args []string
	if s.OutputDir != "" {
		args = append(args, "-P", s.OutputDir)
	}
	if format := model.BuildFormat(s); format != "" {
		args = append(args, "-f", format)
	}
	if s.Subtitles {
		args = append(args, "--write-subs", "--sub-langs", "all")
	}
	if s.EmbedMetadata {
		args = append(args, "--add-metadata", "--embed-thumbnail")
	}
	if s.AdvancedOptions != "" {
		extra, err := shellwords.Parse(s.AdvancedOptions)
		if err != nil {
			return nil, NewValidationError("advanced options error: %v", err)
		}
		args = append(args, extra...)
	}
	return args, nil
}
