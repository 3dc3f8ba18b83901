package model

// VideoInfo describes one candidate item produced by metadata retrieval.
// The title may be empty for a bare video URL; it is backfilled by the
// engine's progress events once the download starts.
type VideoInfo struct {
	ID       string
	Title    string
	URL      string
	Duration string
}

// Batch is the immutable candidate list fetched for one source URL. The
// selection set indexes into Videos; a new fetch replaces the batch and
// re-seeds the selection.
type Batch struct {
	Title  string
	URL    string
	Videos []VideoInfo
}

// DisplayTitle returns the candidate title, falling back to the URL
func (v VideoInfo) DisplayTitle() string {
	if v.Title != "" {
		return v.Title
	}
	return v.URL
}
