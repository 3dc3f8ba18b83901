package download

import (
	"container/heap"
	"time"
)

// eviction is one pending removal of a terminal job from the registry
type eviction struct {
	id  string
	due time.Time
}

// evictionHeap orders pending evictions by deadline
type evictionHeap []eviction

func (h evictionHeap) Len() int            { return len(h) }
func (h evictionHeap) Less(i, j int) bool  { return h[i].due.Before(h[j].due) }
func (h evictionHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *evictionHeap) Push(x interface{}) { *h = append(*h, x.(eviction)) }
func (h *evictionHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// evictionSchedule is a deadline queue for terminal jobs, replacing one
// timer per job with a single earliest-deadline timer in the reconciler
// loop. It is owned by the reconciler goroutine and needs no locking.
type evictionSchedule struct {
	heap      evictionHeap
	scheduled map[string]struct{}
}

func newEvictionSchedule() *evictionSchedule {
	return &evictionSchedule{scheduled: make(map[string]struct{})}
}

// Schedule records a removal deadline for the ID. A deadline measured from
// the first terminal sighting is kept; later terminal events for the same
// ID do not push it out.
func (e *evictionSchedule) Schedule(id string, due time.Time) {
	if _, ok := e.scheduled[id]; ok {
		return
	}
	e.scheduled[id] = struct{}{}
	heap.Push(&e.heap, eviction{id: id, due: due})
}

// Next returns the earliest pending deadline, if any
func (e *evictionSchedule) Next() (time.Time, bool) {
	if len(e.heap) == 0 {
		return time.Time{}, false
	}
	return e.heap[0].due, true
}

// Due pops every ID whose deadline has passed. Popped IDs may be scheduled
// again by a later terminal event, which is harmless: removal is
// idempotent with an already-absent job.
func (e *evictionSchedule) Due(now time.Time) []string {
	var ids []string
	for len(e.heap) > 0 && !e.heap[0].due.After(now) {
		ev := heap.Pop(&e.heap).(eviction)
		delete(e.scheduled, ev.id)
		ids = append(ids, ev.id)
	}
	return ids
}
