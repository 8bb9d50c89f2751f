package model

import (
	"fmt"

	"github.com/ytget/ytdlp-gui/internal/engine"
)

// ProgressSnapshot is a display-ready reduction of one raw engine progress
// update. Percent is nil while the total size is unknown so the UI can show
// an indeterminate bar; Speed and ETA pass through nullable.
type ProgressSnapshot struct {
	Status   string
	Filename string
	Percent  *float64 // 0..100
	Speed    *float64 // bytes per second
	ETA      *int64   // seconds
}

// Summarize reduces a raw progress update into a ProgressSnapshot. It is
// recomputed on every event and keeps no state.
func Summarize(u engine.ProgressUpdate) ProgressSnapshot {
	total := u.TotalBytes
	if total == 0 {
		total = u.TotalBytesEstimate
	}

	var percent *float64
	if total > 0 {
		p := float64(u.DownloadedBytes) / float64(total) * 100
		if p < 0 {
			p = 0
		}
		if p > 100 {
			p = 100
		}
		percent = &p
	}

	filename := u.Filename
	if filename == "" {
		filename = u.Title
	}

	return ProgressSnapshot{
		Status:   u.Status,
		Filename: filename,
		Percent:  percent,
		Speed:    u.Speed,
		ETA:      u.ETA,
	}
}

// FormatSpeed renders a transfer speed as e.g. "1.25 MiB/s", scaling
// through KiB/MiB/GiB per 1024. Nil or zero speed renders empty.
func FormatSpeed(speed *float64) string {
	if speed == nil || *speed == 0 {
		return ""
	}
	units := []string{"B/s", "KiB/s", "MiB/s", "GiB/s"}
	value := *speed
	idx := 0
	for value >= 1024 && idx < len(units)-1 {
		value /= 1024
		idx++
	}
	return fmt.Sprintf("%.2f %s", value, units[idx])
}

// FormatETA renders seconds as H:MM:SS when at least an hour remains,
// MM:SS otherwise. Nil or zero renders empty.
func FormatETA(eta *int64) string {
	if eta == nil || *eta == 0 {
		return ""
	}
	secs := *eta
	mins := secs / 60
	secs %= 60
	hours := mins / 60
	mins %= 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, mins, secs)
	}
	return fmt.Sprintf("%02d:%02d", mins, secs)
}
