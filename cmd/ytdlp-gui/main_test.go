package main

import (
	"testing"

	"github.com/ytget/ytdlp-gui/internal/model"
)

func TestApplySelectionFlags(t *testing.T) {
	base := model.Settings{
		FormatChoice: model.FormatBest,
		Quality:      model.QualityBestAvailable,
	}

	tests := []struct {
		name     string
		quality  string
		format   string
		audio    bool
		expected model.FormatChoice
	}{
		{"no flags keep config choice", "", "", false, model.FormatBest},
		{"quality alone", "1080p", "", false, model.FormatBest},
		{"format alone", "", "bv*+ba", false, model.FormatCustom},
		{"audio alone", "", "", true, model.FormatAudio},
		{"audio wins over quality", "1080p", "", true, model.FormatAudio},
		{"audio wins over format", "", "bv*+ba", true, model.FormatAudio},
		{"format wins over quality", "1080p", "bv*+ba", false, model.FormatCustom},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := applySelectionFlags(base, test.quality, test.format, test.audio)
			if result.FormatChoice != test.expected {
				t.Errorf("FormatChoice = %s, expected %s", result.FormatChoice, test.expected)
			}
		})
	}
}

func TestApplySelectionFlags_ValuesCarried(t *testing.T) {
	result := applySelectionFlags(model.Settings{}, "720p", "", false)
	if result.Quality != "720p" {
		t.Errorf("Quality = %q, expected 720p", result.Quality)
	}

	result = applySelectionFlags(model.Settings{}, "", "bv*[height<=480]+ba", false)
	if result.CustomFormat != "bv*[height<=480]+ba" {
		t.Errorf("CustomFormat = %q", result.CustomFormat)
	}

	// Audio keeps the quality value around even though it overrides the
	// choice; only the choice changes.
	result = applySelectionFlags(model.Settings{}, "720p", "", true)
	if result.FormatChoice != model.FormatAudio || result.Quality != "720p" {
		t.Errorf("settings = %+v", result)
	}
}
