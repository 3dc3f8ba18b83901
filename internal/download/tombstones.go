package download

import "sync"

// Tombstones is the permanent record of job IDs the user has cancelled.
// Entries are never removed for the lifetime of the process: once an ID is
// tombstoned, no event for it may touch the registry or reappear in the
// active view, even if the cancel call to the engine itself failed.
type Tombstones struct {
	mu  sync.RWMutex
	ids map[string]struct{}
}

// NewTombstones creates an empty tombstone set
func NewTombstones() *Tombstones {
	return &Tombstones{ids: make(map[string]struct{})}
}

// Add marks a single ID as cancelled
func (t *Tombstones) Add(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.ids[id] = struct{}{}
}

// AddAll marks every given ID as cancelled in one atomic step, so a batch
// cancel cannot interleave with event application halfway through.
func (t *Tombstones) AddAll(ids []string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, id := range ids {
		t.ids[id] = struct{}{}
	}
}

// Contains reports whether the ID has been cancelled
func (t *Tombstones) Contains(id string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.ids[id]
	return ok
}

// Len returns the number of tombstoned IDs
func (t *Tombstones) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.ids)
}
