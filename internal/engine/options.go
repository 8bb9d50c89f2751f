package engine

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// Post-processor tags set by ParseArgs.
const (
	PPMetadata       = "Metadata"
	PPEmbedThumbnail = "EmbedThumbnail"
	PPExtractAudio   = "ExtractAudio"
)

// DefaultRetries matches the engine's own default retry count.
const DefaultRetries = 10

// InfiniteRetries marks a "retry forever" request.
const InfiniteRetries = -1

// Postprocessor is one post-download step requested from the engine.
type Postprocessor struct {
	Key    string
	Format string
}

// Options is the option set consumed by Download. The parsed fields mirror
// the engine's CLI grammar; the injected fields at the bottom are set by
// the caller after parsing and are never read from the command line.
type Options struct {
	Format              string
	OutputDir           string
	OutputTemplate      string
	WriteSubtitles      bool
	WriteAutoSubs       bool
	SubtitleLangs       string
	EmbedSubtitles      bool
	ConvertSubs         string
	EmbedMetadata       bool
	EmbedThumbnail      bool
	ExtractAudio        bool
	AudioFormat         string
	RateLimit           int64 // bytes per second, 0 means unlimited
	Retries             int
	Proxy               string
	NoPlaylist          bool
	YesPlaylist         bool
	MergeOutputFormat   string
	Cookies             string
	RestrictFilenames   bool
	ForceOverwrites     bool
	ConcurrentFragments int
	UserAgent           string

	Postprocessors []Postprocessor

	// Injected by the caller.
	Logger          Logger
	ProgressHooks   []ProgressHook
	NewlineProgress bool
	Quiet           bool
	NoWarnings      bool
}

// ParseArgs parses a CLI-style argument vector into Options. Positional
// arguments are returned as the normalized URL list. Parse diagnostics are
// captured and returned inside the error instead of reaching the console.
func ParseArgs(args []string) (*Options, []string, error) {
	opts := &Options{Retries: DefaultRetries}

	var diag bytes.Buffer
	fs := pflag.NewFlagSet("yt-dlp", pflag.ContinueOnError)
	fs.SetOutput(&diag)
	fs.SortFlags = false

	var (
		limitRate     string
		retries       string
		addMetadata   bool
		embedMetadata bool
		noWarnings    bool
		quiet         bool
		newline       bool
		progress      bool
	)

	fs.StringVarP(&opts.OutputDir, "paths", "P", "", "directory to save files to")
	fs.StringVarP(&opts.OutputTemplate, "output", "o", "", "output filename template")
	fs.StringVarP(&opts.Format, "format", "f", "", "video format selector")
	fs.BoolVar(&opts.WriteSubtitles, "write-subs", false, "write subtitle files")
	fs.BoolVar(&opts.WriteAutoSubs, "write-auto-subs", false, "write auto-generated subtitles")
	fs.StringVar(&opts.SubtitleLangs, "sub-langs", "", "subtitle languages")
	fs.BoolVar(&opts.EmbedSubtitles, "embed-subs", false, "embed subtitles in the video")
	fs.StringVar(&opts.ConvertSubs, "convert-subs", "", "convert subtitles to the given format")
	fs.BoolVar(&addMetadata, "add-metadata", false, "embed metadata in the file")
	fs.BoolVar(&embedMetadata, "embed-metadata", false, "embed metadata in the file")
	fs.BoolVar(&opts.EmbedThumbnail, "embed-thumbnail", false, "embed thumbnail as cover art")
	fs.BoolVarP(&opts.ExtractAudio, "extract-audio", "x", false, "convert video files to audio-only")
	fs.StringVar(&opts.AudioFormat, "audio-format", "", "audio format for -x")
	fs.StringVarP(&limitRate, "limit-rate", "r", "", "maximum download rate, e.g. 50K or 4.2M")
	fs.StringVarP(&retries, "retries", "R", "", "number of retries or \"infinite\"")
	fs.StringVar(&opts.Proxy, "proxy", "", "proxy URL")
	fs.BoolVar(&opts.NoPlaylist, "no-playlist", false, "download only the video")
	fs.BoolVar(&opts.YesPlaylist, "yes-playlist", false, "download the whole playlist")
	fs.StringVar(&opts.MergeOutputFormat, "merge-output-format", "", "container for merged formats")
	fs.StringVar(&opts.Cookies, "cookies", "", "netscape cookie file")
	fs.BoolVar(&opts.RestrictFilenames, "restrict-filenames", false, "restrict filenames to ASCII")
	fs.BoolVar(&opts.ForceOverwrites, "force-overwrites", false, "overwrite existing files")
	fs.IntVarP(&opts.ConcurrentFragments, "concurrent-fragments", "N", 0, "fragments to download concurrently")
	fs.StringVar(&opts.UserAgent, "user-agent", "", "custom User-Agent header")
	fs.BoolVar(&noWarnings, "no-warnings", false, "suppress warnings")
	fs.BoolVarP(&quiet, "quiet", "q", false, "quiet mode")
	fs.BoolVar(&newline, "newline", false, "one progress line per update")
	fs.BoolVar(&progress, "progress", false, "show progress even in quiet mode")

	if err := fs.Parse(args); err != nil {
		msg := strings.TrimSpace(diag.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, nil, fmt.Errorf("%s", msg)
	}

	if limitRate != "" {
		n, err := ParseByteSize(limitRate)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid --limit-rate %q: %v", limitRate, err)
		}
		opts.RateLimit = n
	}
	if retries != "" {
		if strings.EqualFold(retries, "infinite") {
			opts.Retries = InfiniteRetries
		} else {
			n, err := strconv.Atoi(retries)
			if err != nil || n < 0 {
				return nil, nil, fmt.Errorf("invalid --retries %q", retries)
			}
			opts.Retries = n
		}
	}

	opts.EmbedMetadata = addMetadata || embedMetadata
	opts.NoWarnings = noWarnings
	opts.Quiet = quiet
	opts.NewlineProgress = newline

	if opts.EmbedMetadata {
		opts.Postprocessors = append(opts.Postprocessors, Postprocessor{Key: PPMetadata})
	}
	if opts.EmbedThumbnail {
		opts.Postprocessors = append(opts.Postprocessors, Postprocessor{Key: PPEmbedThumbnail})
	}
	if opts.ExtractAudio {
		opts.Postprocessors = append(opts.Postprocessors, Postprocessor{Key: PPExtractAudio, Format: opts.AudioFormat})
	}

	return opts, fs.Args(), nil
}

// commandArgs rebuilds the argument vector Download hands to the binary.
// URLs and driver-owned progress flags are appended separately.
func (o *Options) commandArgs() []string {
	var args []string
	if o.OutputDir != "" {
		args = append(args, "-P", o.OutputDir)
	}
	if o.OutputTemplate != "" {
		args = append(args, "-o", o.OutputTemplate)
	}
	if o.Format != "" {
		args = append(args, "-f", o.Format)
	}
	if o.WriteSubtitles {
		args = append(args, "--write-subs")
	}
	if o.WriteAutoSubs {
		args = append(args, "--write-auto-subs")
	}
	if o.SubtitleLangs != "" {
		args = append(args, "--sub-langs", o.SubtitleLangs)
	}
	if o.EmbedSubtitles {
		args = append(args, "--embed-subs")
	}
	if o.ConvertSubs != "" {
		args = append(args, "--convert-subs", o.ConvertSubs)
	}
	if o.EmbedMetadata {
		args = append(args, "--embed-metadata")
	}
	if o.EmbedThumbnail {
		args = append(args, "--embed-thumbnail")
	}
	if o.ExtractAudio {
		args = append(args, "-x")
	}
	if o.AudioFormat != "" {
		args = append(args, "--audio-format", o.AudioFormat)
	}
	if o.RateLimit > 0 {
		args = append(args, "--limit-rate", strconv.FormatInt(o.RateLimit, 10))
	}
	if o.Retries == InfiniteRetries {
		args = append(args, "--retries", "infinite")
	} else if o.Retries != DefaultRetries {
		args = append(args, "--retries", strconv.Itoa(o.Retries))
	}
	if o.Proxy != "" {
		args = append(args, "--proxy", o.Proxy)
	}
	if o.NoPlaylist {
		args = append(args, "--no-playlist")
	}
	if o.YesPlaylist {
		args = append(args, "--yes-playlist")
	}
	if o.MergeOutputFormat != "" {
		args = append(args, "--merge-output-format", o.MergeOutputFormat)
	}
	if o.Cookies != "" {
		args = append(args, "--cookies", o.Cookies)
	}
	if o.RestrictFilenames {
		args = append(args, "--restrict-filenames")
	}
	if o.ForceOverwrites {
		args = append(args, "--force-overwrites")
	}
	if o.ConcurrentFragments > 0 {
		args = append(args, "-N", strconv.Itoa(o.ConcurrentFragments))
	}
	if o.UserAgent != "" {
		args = append(args, "--user-agent", o.UserAgent)
	}
	if o.Quiet {
		args = append(args, "--quiet")
	}
	if o.NoWarnings {
		args = append(args, "--no-warnings")
	}
	if o.NewlineProgress {
		args = append(args, "--newline")
	}
	return args
}

var byteSizeRe = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)\s*([kKmMgGtT])?(?:i?[bB])?\s*$`)

// ParseByteSize parses an engine-style size such as "10K", "4.2MiB" or
// "1G" into bytes. Suffixes scale by 1024.
func ParseByteSize(s string) (int64, error) {
	m := byteSizeRe.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid size: %s", s)
	}
	val, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, err
	}
	switch strings.ToLower(m[2]) {
	case "k":
		val *= 1 << 10
	case "m":
		val *= 1 << 20
	case "g":
		val *= 1 << 30
	case "t":
		val *= 1 << 40
	}
	return int64(val), nil
}
