package download

import (
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tubefetch/tubefetch/internal/engine"
	"github.com/tubefetch/tubefetch/internal/model"
)

// ErrNothingSelected is returned when a dispatch is requested with an
// empty selection.
var ErrNothingSelected = errors.New("no items selected")

// Concurrency budget bounds; the budget is read once per dispatch.
const (
	minBudget = 1
	maxBudget = 5
)

// DispatchSelected dispatches the currently selected candidates. See
// DispatchBatch.
func (o *Orchestrator) DispatchSelected(ctx context.Context, opts engine.StartOptions, budget int) error {
	return o.DispatchBatch(ctx, o.SelectedItems(), opts, budget)
}

// DispatchBatch admits items into the engine in FIFO order, at most
// min(budget, len(items)) outstanding start calls at once, with a fixed
// pacing delay after each attempt. A failed start is logged, surfaced as a
// notification and skipped; it never halts the batch. DispatchBatch
// returns once every admission attempt has been issued — it does not wait
// for any job to finish, and it never blocks cancellation of jobs that
// already started.
func (o *Orchestrator) DispatchBatch(ctx context.Context, items []model.VideoInfo, opts engine.StartOptions, budget int) error {
	if len(items) == 0 {
		return ErrNothingSelected
	}

	if len(items) == 1 {
		o.startOne(ctx, items[0], opts)
		return nil
	}

	if budget < minBudget {
		budget = minBudget
	}
	if budget > maxBudget {
		budget = maxBudget
	}
	workers := budget
	if workers > len(items) {
		workers = len(items)
	}

	var cursor int64
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			o.dispatchWorker(ctx, items, opts, &cursor)
		}()
	}
	wg.Wait()
	return nil
}

// dispatchWorker pulls the next unstarted item from the shared cursor
// until the batch is exhausted, pacing between pulls. The pacing spreads
// admissions to the engine; parallelism is bounded by the worker count,
// not the delay.
func (o *Orchestrator) dispatchWorker(ctx context.Context, items []model.VideoInfo, opts engine.StartOptions, cursor *int64) {
	for {
		idx := int(atomic.AddInt64(cursor, 1)) - 1
		if idx >= len(items) {
			return
		}

		o.startOne(ctx, items[idx], opts)

		select {
		case <-time.After(o.paceDelay):
		case <-ctx.Done():
			return
		}
	}
}

// startOne issues a single start call and records the admitted job. The
// engine also emits a starting event for the same ID; the registry upsert
// is idempotent with it.
func (o *Orchestrator) startOne(ctx context.Context, item model.VideoInfo, opts engine.StartOptions) {
	id, err := o.engine.Start(ctx, item, opts)
	if err != nil {
		log.Printf("dispatch: start failed for %s: %v", item.URL, err)
		o.notify().StartFailed(item, err)
		return
	}

	o.stateMu.Lock()
	o.registry.Upsert(id, model.JobUpdate{
		Status: model.StatusStarting,
		Title:  item.Title,
		Kind:   opts.Kind,
	})
	o.stateMu.Unlock()
	o.emitChange()
}
