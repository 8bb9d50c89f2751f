package download

// Package download is the coordination core: it translates user settings
// into engine options, runs the engine on a background goroutine, relays
// log/progress/status events through caller-supplied callbacks, and
// guarantees exactly one completion signal per run.
