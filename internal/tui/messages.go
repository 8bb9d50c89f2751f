package tui

import "github.com/ytget/ytdlp-gui/internal/engine"

// Message types for worker events

type logMsg struct {
	line string
}

type statusMsg struct {
	text string
}

type progressMsg struct {
	update engine.ProgressUpdate
}

type completionMsg struct {
	ok      bool
	message string
}

type expandedMsg struct {
	urls []string
	err  error
}
