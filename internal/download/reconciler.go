package download

import (
	"context"
	"time"

	"github.com/tubefetch/tubefetch/internal/model"
)

// Run is the reconciliation loop. It is the single goroutine applying
// engine events to the registry and draining the eviction schedule, so
// event application needs no ordering machinery beyond the channel itself:
// events for one job are applied in arrival order.
func (o *Orchestrator) Run(ctx context.Context) {
	events := o.engine.Events()

	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		o.armEvictionTimer(timer)

		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			o.apply(ev)
		case <-timer.C:
			o.evictDue()
		}
	}
}

// armEvictionTimer points the single timer at the earliest pending
// eviction deadline, or leaves it stopped when none is pending.
func (o *Orchestrator) armEvictionTimer(timer *time.Timer) {
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	if due, ok := o.evictions.Next(); ok {
		timer.Reset(time.Until(due))
	}
}

// apply reconciles one inbound event. The variants are a closed set, so
// the switch is exhaustive.
func (o *Orchestrator) apply(ev model.Event) {
	switch e := ev.(type) {
	case model.ProgressEvent:
		o.applyProgress(e)
	case model.ErrorEvent:
		o.notify().EngineError(e.SourceKey, e.Message, IsBotDetection(e.Message))
	}
}

// applyProgress applies a job event: tombstoned IDs are dropped
// permanently, a cancelled status removes the job, everything else is an
// upsert. An unknown ID is an implicit creation at whatever status the
// event carries. The tombstone check and the registry write happen under
// stateMu as one step; a concurrent Cancel either lands its tombstone
// before the check or removes the job after the upsert, and in both
// interleavings the job ends up gone.
func (o *Orchestrator) applyProgress(e model.ProgressEvent) {
	o.stateMu.Lock()
	if o.tombstones.Contains(e.ID) {
		o.stateMu.Unlock()
		return
	}

	if e.Status == model.StatusCancelled {
		o.registry.Remove(e.ID)
		o.stateMu.Unlock()
		o.emitChange()
		return
	}

	job := o.registry.Upsert(e.ID, e.Update())
	if job.Status.IsTerminal() {
		o.evictions.Schedule(e.ID, time.Now().Add(o.evictDelay))
	}
	o.stateMu.Unlock()
	o.emitChange()
}

// evictDue removes every job whose eviction deadline has passed. Removal
// is idempotent with jobs already gone through explicit cancellation.
func (o *Orchestrator) evictDue() {
	ids := o.evictions.Due(time.Now())
	if len(ids) == 0 {
		return
	}
	o.stateMu.Lock()
	for _, id := range ids {
		o.registry.Remove(id)
	}
	o.stateMu.Unlock()
	o.emitChange()
}
