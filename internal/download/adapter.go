package download

import (
	"sync/atomic"

	"github.com/ytget/ytdlp-gui/internal/engine"
	"github.com/ytget/ytdlp-gui/internal/model"
)

// Callbacks carries the four presentation-layer callbacks for one run.
// All of them are invoked from the run's background goroutine; marshaling
// onto a UI thread is the caller's job.
type Callbacks struct {
	Log        func(msg string)
	Progress   func(u engine.ProgressUpdate)
	Status     func(msg string)
	Completion func(ok bool, msg string)
}

// normalize replaces nil callbacks with no-ops so call sites stay simple.
func (c Callbacks) normalize() Callbacks {
	if c.Log == nil {
		c.Log = func(string) {}
	}
	if c.Progress == nil {
		c.Progress = func(engine.ProgressUpdate) {}
	}
	if c.Status == nil {
		c.Status = func(string) {}
	}
	if c.Completion == nil {
		c.Completion = func(bool, string) {}
	}
	return c
}

// uiLogger adapts the log callback to the engine logger contract. Debug and
// info lines pass through verbatim; warnings and errors carry a severity
// tag so they stay recognizable in a plain text log.
type uiLogger struct {
	cb func(string)
}

func (l uiLogger) Debug(msg string) {
	if msg != "" {
		l.cb(msg)
	}
}

func (l uiLogger) Info(msg string) {
	l.Debug(msg)
}

func (l uiLogger) Warning(msg string) {
	l.cb("WARNING: " + msg)
}

func (l uiLogger) Error(msg string) {
	l.cb("ERROR: " + msg)
}

// prepare normalizes the raw URL text, translates the settings, and wires
// the callback surface into the resulting options: a logger adapter, a
// single hook that polls the cancellation flag before forwarding each
// update, newline progress rendering, and un-suppressed warnings.
func prepare(s model.Settings, eng engine.Engine, cbs Callbacks, cancel *atomic.Bool) (*engine.Options, []string, error) {
	opts, urls, err := Translate(model.SplitURLs(s.URLs), s, eng)
	if err != nil {
		return nil, nil, err
	}

	opts.Logger = uiLogger{cb: cbs.Log}
	opts.ProgressHooks = []engine.ProgressHook{
		func(u engine.ProgressUpdate) error {
			if cancel.Load() {
				return engine.ErrCancelled
			}
			cbs.Progress(u)
			return nil
		},
	}
	opts.NewlineProgress = true
	opts.Quiet = false
	opts.NoWarnings = false
	return opts, urls, nil
}
