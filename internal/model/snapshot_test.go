package model

import (
	"testing"

	"github.com/ytget/ytdlp-gui/internal/engine"
)

func TestSummarize_Percent(t *testing.T) {
	tests := []struct {
		name       string
		downloaded int64
		total      int64
		estimate   int64
		expected   *float64
	}{
		{"unknown total gives nil percent", 100, 0, 0, nil},
		{"halfway", 500, 1000, 0, ptrFloat(50)},
		{"estimate used when total missing", 250, 0, 1000, ptrFloat(25)},
		{"total preferred over estimate", 500, 1000, 4000, ptrFloat(50)},
		{"overshoot clamps to 100", 1500, 1000, 0, ptrFloat(100)},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			snap := Summarize(engine.ProgressUpdate{
				DownloadedBytes:    test.downloaded,
				TotalBytes:         test.total,
				TotalBytesEstimate: test.estimate,
			})
			if (snap.Percent == nil) != (test.expected == nil) {
				t.Fatalf("Percent = %v, expected %v", snap.Percent, test.expected)
			}
			if snap.Percent != nil && *snap.Percent != *test.expected {
				t.Errorf("Percent = %v, expected %v", *snap.Percent, *test.expected)
			}
		})
	}
}

func TestSummarize_FilenameFallsBackToTitle(t *testing.T) {
	snap := Summarize(engine.ProgressUpdate{Title: "Some Video"})
	if snap.Filename != "Some Video" {
		t.Errorf("Filename = %q, expected title fallback", snap.Filename)
	}

	snap = Summarize(engine.ProgressUpdate{Filename: "video.mp4", Title: "Some Video"})
	if snap.Filename != "video.mp4" {
		t.Errorf("Filename = %q, expected filename to win", snap.Filename)
	}
}

func TestFormatSpeed(t *testing.T) {
	tests := []struct {
		speed    *float64
		expected string
	}{
		{nil, ""},
		{ptrFloat(0), ""},
		{ptrFloat(512), "512.00 B/s"},
		{ptrFloat(2048), "2.00 KiB/s"},
		{ptrFloat(1310720), "1.25 MiB/s"},
		{ptrFloat(2147483648), "2.00 GiB/s"},
	}

	for _, test := range tests {
		result := FormatSpeed(test.speed)
		if result != test.expected {
			t.Errorf("FormatSpeed(%v) = %q, expected %q", test.speed, result, test.expected)
		}
	}
}

func TestFormatETA(t *testing.T) {
	tests := []struct {
		eta      *int64
		expected string
	}{
		{nil, ""},
		{ptrInt(0), ""},
		{ptrInt(30), "00:30"},
		{ptrInt(90), "01:30"},
		{ptrInt(3661), "1:01:01"},
		{ptrInt(7323), "2:02:03"},
	}

	for _, test := range tests {
		result := FormatETA(test.eta)
		if result != test.expected {
			t.Errorf("FormatETA(%v) = %q, expected %q", test.eta, result, test.expected)
		}
	}
}

func ptrFloat(v float64) *float64 { return &v }
func ptrInt(v int64) *int64       { return &v }
