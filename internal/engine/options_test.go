package engine

import (
	"reflect"
	"strings"
	"testing"
)

func TestParseArgs_Full(t *testing.T) {
	opts, urls, err := ParseArgs([]string{
		"-P", "/tmp/videos",
		"-f", "bv*+ba",
		"--write-subs", "--sub-langs", "en,de",
		"--add-metadata", "--embed-thumbnail",
		"--limit-rate", "10K",
		"--retries", "3",
		"--no-playlist",
		"https://a.example/1", "https://a.example/2",
	})
	if err != nil {
		t.Fatalf("ParseArgs() error: %v", err)
	}

	if opts.OutputDir != "/tmp/videos" {
		t.Errorf("OutputDir = %q", opts.OutputDir)
	}
	if opts.Format != "bv*+ba" {
		t.Errorf("Format = %q", opts.Format)
	}
	if !opts.WriteSubtitles || opts.SubtitleLangs != "en,de" {
		t.Errorf("subtitles = %v langs = %q", opts.WriteSubtitles, opts.SubtitleLangs)
	}
	if !opts.EmbedMetadata || !opts.EmbedThumbnail {
		t.Errorf("metadata = %v thumbnail = %v", opts.EmbedMetadata, opts.EmbedThumbnail)
	}
	if opts.RateLimit != 10240 {
		t.Errorf("RateLimit = %d, expected 10240", opts.RateLimit)
	}
	if opts.Retries != 3 {
		t.Errorf("Retries = %d, expected 3", opts.Retries)
	}
	if !opts.NoPlaylist {
		t.Error("NoPlaylist not set")
	}
	if !reflect.DeepEqual(urls, []string{"https://a.example/1", "https://a.example/2"}) {
		t.Errorf("urls = %v", urls)
	}
}

func TestParseArgs_Postprocessors(t *testing.T) {
	opts, _, err := ParseArgs([]string{"--add-metadata", "--embed-thumbnail", "-x", "--audio-format", "mp3", "https://a.example/1"})
	if err != nil {
		t.Fatalf("ParseArgs() error: %v", err)
	}

	expected := []Postprocessor{
		{Key: PPMetadata},
		{Key: PPEmbedThumbnail},
		{Key: PPExtractAudio, Format: "mp3"},
	}
	if !reflect.DeepEqual(opts.Postprocessors, expected) {
		t.Errorf("Postprocessors = %v, expected %v", opts.Postprocessors, expected)
	}
}

func TestParseArgs_Defaults(t *testing.T) {
	opts, urls, err := ParseArgs([]string{"https://a.example/1"})
	if err != nil {
		t.Fatalf("ParseArgs() error: %v", err)
	}
	if opts.Retries != DefaultRetries {
		t.Errorf("Retries = %d, expected %d", opts.Retries, DefaultRetries)
	}
	if opts.RateLimit != 0 {
		t.Errorf("RateLimit = %d, expected 0", opts.RateLimit)
	}
	if len(urls) != 1 {
		t.Errorf("urls = %v", urls)
	}
}

func TestParseArgs_InfiniteRetries(t *testing.T) {
	opts, _, err := ParseArgs([]string{"--retries", "infinite", "https://a.example/1"})
	if err != nil {
		t.Fatalf("ParseArgs() error: %v", err)
	}
	if opts.Retries != InfiniteRetries {
		t.Errorf("Retries = %d, expected %d", opts.Retries, InfiniteRetries)
	}
}

func TestParseArgs_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"--definitely-not-a-flag", "https://a.example/1"}},
		{"bad limit rate", []string{"--limit-rate", "fast", "https://a.example/1"}},
		{"negative retries", []string{"--retries", "-2", "https://a.example/1"}},
		{"non-numeric retries", []string{"--retries", "many", "https://a.example/1"}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, _, err := ParseArgs(test.args); err == nil {
				t.Errorf("ParseArgs(%v) succeeded, expected error", test.args)
			}
		})
	}
}

func TestParseArgs_UnknownFlagDiagnosticCaptured(t *testing.T) {
	_, _, err := ParseArgs([]string{"--definitely-not-a-flag"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "definitely-not-a-flag") {
		t.Errorf("error %q does not name the offending flag", err)
	}
}

func TestParseByteSize(t *testing.T) {
	tests := []struct {
		input    string
		expected int64
		wantErr  bool
	}{
		{"1024", 1024, false},
		{"10K", 10240, false},
		{"10k", 10240, false},
		{"1M", 1 << 20, false},
		{"4.5M", 4718592, false},
		{"1MiB", 1 << 20, false},
		{"2G", 2 << 30, false},
		{"1T", 1 << 40, false},
		{"", 0, true},
		{"fast", 0, true},
		{"-5K", 0, true},
	}

	for _, test := range tests {
		result, err := ParseByteSize(test.input)
		if (err != nil) != test.wantErr {
			t.Errorf("ParseByteSize(%q) error = %v, wantErr %v", test.input, err, test.wantErr)
			continue
		}
		if !test.wantErr && result != test.expected {
			t.Errorf("ParseByteSize(%q) = %d, expected %d", test.input, result, test.expected)
		}
	}
}

func TestCommandArgs_RoundTrip(t *testing.T) {
	opts, urls, err := ParseArgs([]string{
		"-P", "/tmp/videos",
		"-f", "bv*+ba",
		"--write-subs", "--sub-langs", "all",
		"--embed-metadata", "--embed-thumbnail",
		"--limit-rate", "1M",
		"--proxy", "socks5://localhost:1080",
		"https://a.example/1",
	})
	if err != nil {
		t.Fatalf("ParseArgs() error: %v", err)
	}

	rebuilt, reParsed, err := ParseArgs(append(opts.commandArgs(), urls...))
	if err != nil {
		t.Fatalf("re-parse error: %v", err)
	}
	if rebuilt.OutputDir != opts.OutputDir || rebuilt.Format != opts.Format ||
		rebuilt.RateLimit != opts.RateLimit || rebuilt.Proxy != opts.Proxy {
		t.Errorf("round trip diverged: %+v vs %+v", rebuilt, opts)
	}
	if !reflect.DeepEqual(reParsed, urls) {
		t.Errorf("urls diverged: %v vs %v", reParsed, urls)
	}
}

func TestCommandArgs_DefaultRetriesOmitted(t *testing.T) {
	opts := &Options{Retries: DefaultRetries}
	for _, arg := range opts.commandArgs() {
		if arg == "--retries" {
			t.Error("default retry count should not be emitted")
		}
	}

	opts = &Options{Retries: InfiniteRetries}
	joined := strings.Join(opts.commandArgs(), " ")
	if !strings.Contains(joined, "--retries infinite") {
		t.Errorf("infinite retries missing from %q", joined)
	}
}
