package engine

// Package engine adapts yt-dlp (via github.com/lrstanley/go-ytdlp) to the
// orchestrator's external-engine boundary: start a job and receive an
// opaque job ID, cancel a job by ID, and consume a single asynchronous
// stream of progress and error events.
