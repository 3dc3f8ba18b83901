package download

// Package download implements the job orchestration core: the in-memory job
// registry, the permanent cancellation tombstone set, the candidate
// selection set, the bounded batch dispatcher, and the event reconciler
// that folds the engine's asynchronous event stream into a consistent
// active-job view for the UI.
