package download

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/tubefetch/tubefetch/internal/engine"
	"github.com/tubefetch/tubefetch/internal/model"
)

// Engine is the external download engine as seen by the orchestrator. The
// concrete implementation lives in internal/engine; tests substitute fakes.
type Engine interface {
	Start(ctx context.Context, item model.VideoInfo, opts engine.StartOptions) (string, error)
	Cancel(id string) error
	Events() <-chan model.Event
}

// Timing defaults
const (
	defaultEvictDelay = 3 * time.Second
	defaultPaceDelay  = 500 * time.Millisecond
)

// Orchestrator owns all orchestration state: the job registry, the
// tombstone set and the selection set are mutated only through its
// operations, never by collaborators directly. The presentation layer
// reads the active view through ActiveJobs or the change callback.
type Orchestrator struct {
	registry   *Registry
	tombstones *Tombstones
	selection  *Selection
	evictions  *evictionSchedule
	engine     Engine

	// stateMu makes the tombstone check and the registry write one atomic
	// step, so a cancel can never slip between them and let a stale event
	// resurrect the job.
	stateMu sync.Mutex

	// wireMu guards the fields set after construction, once the UI exists
	wireMu   sync.RWMutex
	notifier Notifier
	onChange func([]model.Job)

	batchMu sync.Mutex
	batch   model.Batch

	evictDelay time.Duration
	paceDelay  time.Duration
}

// NewOrchestrator wires an orchestrator to its engine. A nil notifier
// falls back to logging.
func NewOrchestrator(eng Engine, notifier Notifier) *Orchestrator {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &Orchestrator{
		registry:   NewRegistry(),
		tombstones: NewTombstones(),
		selection:  NewSelection(),
		evictions:  newEvictionSchedule(),
		engine:     eng,
		notifier:   notifier,
		evictDelay: defaultEvictDelay,
		paceDelay:  defaultPaceDelay,
	}
}

// SetChangeCallback registers the function receiving the full active-job
// set after every reconciliation pass. The callback may run on any
// goroutine; a UI must hop to its own thread itself. Safe to call while
// the reconciler is running.
func (o *Orchestrator) SetChangeCallback(cb func([]model.Job)) {
	o.wireMu.Lock()
	o.onChange = cb
	o.wireMu.Unlock()
}

// SetNotifier swaps in the presentation notifier once the UI exists. Safe
// to call while the reconciler is running.
func (o *Orchestrator) SetNotifier(notifier Notifier) {
	if notifier == nil {
		return
	}
	o.wireMu.Lock()
	o.notifier = notifier
	o.wireMu.Unlock()
}

// notify returns the current notification sink
func (o *Orchestrator) notify() Notifier {
	o.wireMu.RLock()
	defer o.wireMu.RUnlock()
	return o.notifier
}

// LoadBatch replaces the current candidate batch and re-seeds the
// selection with every candidate included.
func (o *Orchestrator) LoadBatch(batch model.Batch) {
	o.batchMu.Lock()
	o.batch = batch
	o.batchMu.Unlock()
	o.selection.Reset(len(batch.Videos))
}

// Batch returns the current candidate batch
func (o *Orchestrator) Batch() model.Batch {
	o.batchMu.Lock()
	defer o.batchMu.Unlock()
	return o.batch
}

// Selection returns the selection set for the current batch
func (o *Orchestrator) Selection() *Selection {
	return o.selection
}

// SelectedItems maps the selected indices back to candidates, in candidate
// order.
func (o *Orchestrator) SelectedItems() []model.VideoInfo {
	batch := o.Batch()
	indices := o.selection.Indices()
	items := make([]model.VideoInfo, 0, len(indices))
	for _, i := range indices {
		if i < len(batch.Videos) {
			items = append(items, batch.Videos[i])
		}
	}
	return items
}

// ActiveJobs returns the ordered snapshot of jobs in a non-terminal status
func (o *Orchestrator) ActiveJobs() []model.Job {
	return ActiveJobs(o.registry.Snapshot())
}

// Jobs returns the full ordered registry snapshot, terminal jobs included
func (o *Orchestrator) Jobs() []model.Job {
	return o.registry.Snapshot()
}

// Cancel cancels one job. The tombstone is inserted before the engine call,
// so a progress event racing with the cancel is suppressed no matter how
// the two interleave. The tombstone is kept even if the engine call fails:
// the user's cancel intent wins over engine-reported truth, and the job
// never reappears in the active view.
func (o *Orchestrator) Cancel(id string) {
	o.stateMu.Lock()
	o.tombstones.Add(id)
	o.stateMu.Unlock()

	err := o.engine.Cancel(id)

	// Not waiting for a terminal event; a cancelled job stops emitting.
	o.stateMu.Lock()
	o.registry.Remove(id)
	o.stateMu.Unlock()
	o.emitChange()

	if err != nil {
		log.Printf("job %s: cancel failed: %v", id, err)
		o.notify().CancelFailed(id, err)
	}
}

// CancelAll cancels every tracked job: all IDs are tombstoned as a single
// atomic batch before any cancel call is issued, then each cancel is
// attempted best-effort, then the registry is cleared unconditionally.
func (o *Orchestrator) CancelAll() {
	o.stateMu.Lock()
	ids := o.registry.IDs()
	o.tombstones.AddAll(ids)
	o.stateMu.Unlock()

	for _, id := range ids {
		if err := o.engine.Cancel(id); err != nil {
			log.Printf("job %s: cancel failed: %v", id, err)
		}
	}

	o.stateMu.Lock()
	o.registry.Clear()
	o.stateMu.Unlock()
	o.emitChange()
}

// emitChange hands the derived active view to the presentation callback
func (o *Orchestrator) emitChange() {
	o.wireMu.RLock()
	cb := o.onChange
	o.wireMu.RUnlock()
	if cb != nil {
		cb(o.ActiveJobs())
	}
}

// ActiveJobs filters a registry snapshot down to the active view: jobs in
// starting, downloading, converting or download_complete. Terminal jobs
// stay in the registry until evicted but are not active.
func ActiveJobs(jobs []model.Job) []model.Job {
	active := make([]model.Job, 0, len(jobs))
	for _, job := range jobs {
		if job.Status.IsActive() {
			active = append(active, job)
		}
	}
	return active
}
