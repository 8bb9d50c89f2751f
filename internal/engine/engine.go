package engine

import (
	"context"
	"errors"
)

// Progress status tags reported by the engine.
const (
	StatusDownloading = "downloading"
	StatusFinished    = "finished"
	StatusError       = "error"
)

// ErrCancelled is returned by a progress hook to abort the in-flight
// download, and by Download once the abort has taken effect.
var ErrCancelled = errors.New("download cancelled")

// Logger receives diagnostic lines produced by the engine while a download
// runs. Implementations are called from the download goroutine.
type Logger interface {
	Debug(msg string)
	Info(msg string)
	Warning(msg string)
	Error(msg string)
}

// ProgressUpdate is one raw transfer-status report from the engine.
// Speed and ETA are nil when the engine does not know them yet.
type ProgressUpdate struct {
	Status             string
	Filename           string
	DownloadedBytes    int64
	TotalBytes         int64
	TotalBytesEstimate int64
	Speed              *float64 // bytes per second
	ETA                *int64   // seconds
	Title              string
}

// ProgressHook is invoked for every ProgressUpdate the engine emits.
// Returning ErrCancelled aborts the download; any other non-nil error is
// treated the same way but reported as a failure.
type ProgressHook func(ProgressUpdate) error

// Engine is the contract of the wrapped download engine. ParseOptions
// validates a CLI-style argument vector (flags plus trailing URLs) and
// returns the resulting option set with the normalized URL list. Download
// blocks until the run completes, is cancelled, or fails.
type Engine interface {
	ParseOptions(args []string) (*Options, []string, error)
	Download(ctx context.Context, opts *Options, urls []string) error
}
