package tui

// Package tui implements the terminal front-end used when no graphical
// display is available. It drives the same download service as the
// desktop UI, with worker callbacks bridged into Bubbletea messages.
