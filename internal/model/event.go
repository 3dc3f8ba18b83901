package model

// Event is the closed set of notifications the engine delivers to the
// reconciler. Exactly two variants exist: ProgressEvent for anything keyed
// by a job ID, and ErrorEvent for failures that never produced a job.
type Event interface {
	event()
}

// ProgressEvent reports a status/progress change for one job ID. Events may
// arrive out of order across jobs; an event for an unknown ID implicitly
// creates the job.
type ProgressEvent struct {
	ID         string
	Status     JobStatus
	Progress   float64
	Title      string // empty when the engine does not know it yet
	Kind       string // empty when unchanged
	Converting *bool  // nil when unchanged
}

func (ProgressEvent) event() {}

// Update converts the event into the partial-field form the registry merges.
func (e ProgressEvent) Update() JobUpdate {
	return JobUpdate{
		Status:     e.Status,
		Progress:   e.Progress,
		Title:      e.Title,
		Kind:       e.Kind,
		Converting: e.Converting,
	}
}

// ErrorEvent reports a failure that is not attributable to a job ID; it is
// keyed by the identity of the original request, typically the source URL.
type ErrorEvent struct {
	SourceKey string
	Message   string
}

func (ErrorEvent) event() {}
