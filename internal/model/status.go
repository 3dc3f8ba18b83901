package model

// JobStatus represents the lifecycle state of a download job
type JobStatus string

const (
	// StatusStarting means the engine accepted the job but no data has moved yet
	StatusStarting JobStatus = "starting"

	// StatusDownloading means the transfer is in progress
	StatusDownloading JobStatus = "downloading"

	// StatusConverting means the downloaded file is being post-processed
	StatusConverting JobStatus = "converting"

	// StatusDownloadComplete means the transfer finished but the job is not settled yet
	StatusDownloadComplete JobStatus = "download_complete"

	// StatusCompleted means the job finished successfully
	StatusCompleted JobStatus = "completed"

	// StatusFailed means the job failed with an error
	StatusFailed JobStatus = "failed"

	// StatusCancelled is carried by events only; a cancelled job is removed
	// from the registry rather than stored with this status
	StatusCancelled JobStatus = "cancelled"
)

// String returns the string representation of JobStatus
func (s JobStatus) String() string {
	return string(s)
}

// IsActive returns true if a job in this status belongs in the active view
func (s JobStatus) IsActive() bool {
	switch s {
	case StatusStarting, StatusDownloading, StatusConverting, StatusDownloadComplete:
		return true
	}
	return false
}

// IsTerminal returns true for statuses with no further transitions
func (s JobStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}
