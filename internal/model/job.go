package model

import "time"

// UnknownTitle is the placeholder used until a progress event backfills the
// real title.
const UnknownTitle = "Unknown"

// Job represents one in-flight or recently finished download.
//
// Jobs are created on first sighting of an ID, either by an explicit start
// call or by an out-of-order progress event for an ID the registry has never
// seen, and mutated in place by subsequent events for the same ID.
type Job struct {
	ID         string
	Title      string
	Kind       string  // "video" or "audio", informational only
	Progress   float64 // 0..100, last reported value; regressions are tolerated
	Status     JobStatus
	Converting bool      // post-processing sub-phase, orthogonal to Status
	FirstSeen  time.Time // when the registry first saw this ID
}

// JobUpdate carries the partial fields of a single progress event. Title and
// Kind are merged only when non-empty; Converting only when present.
type JobUpdate struct {
	Status     JobStatus
	Progress   float64
	Title      string
	Kind       string
	Converting *bool
}
