package platform

// Package platform holds the OS and network plumbing around the core:
// metadata retrieval for a source URL, filesystem helpers including
// post-cancel partial-file cleanup, and locating or installing the yt-dlp
// binary.
