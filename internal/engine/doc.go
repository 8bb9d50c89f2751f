package engine

// Package engine wraps the external yt-dlp download engine behind a small
// contract: an option-parsing entry point, a blocking download entry point,
// and injectable logger/progress hooks. The rest of the app never talks to
// the binary directly.
