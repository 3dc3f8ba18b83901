package download

import (
	"sort"
	"sync"
	"time"

	"github.com/tubefetch/tubefetch/internal/model"
)

// Registry is the authoritative in-memory store of all known jobs. An
// Upsert for an unknown ID creates the job, which tolerates progress events
// racing ahead of the start notification.
type Registry struct {
	mu   sync.RWMutex
	jobs map[string]*model.Job
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{jobs: make(map[string]*model.Job)}
}

// Upsert creates the job if absent or merges the update into the existing
// job. A previously known non-empty title is never discarded when the
// update omits it, and a terminal status never moves back to an active
// one: a late non-terminal event cannot reopen a settled job. The
// resulting job is returned by value.
func (r *Registry) Upsert(id string, u model.JobUpdate) model.Job {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, exists := r.jobs[id]
	if !exists {
		job = &model.Job{
			ID:        id,
			Title:     model.UnknownTitle,
			FirstSeen: time.Now(),
		}
		r.jobs[id] = job
	}

	if !job.Status.IsTerminal() || u.Status.IsTerminal() {
		job.Status = u.Status
		job.Progress = clampProgress(u.Progress)
	}
	if u.Title != "" {
		job.Title = u.Title
	}
	if u.Kind != "" {
		job.Kind = u.Kind
	}
	if u.Converting != nil {
		job.Converting = *u.Converting
	}
	return *job
}

// Remove deletes the job unconditionally. Removing an absent ID is a no-op.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.jobs, id)
}

// Clear drops every job
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs = make(map[string]*model.Job)
}

// Contains reports whether a job with the given ID is tracked
func (r *Registry) Contains(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.jobs[id]
	return ok
}

// Len returns the number of tracked jobs
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.jobs)
}

// IDs returns the IDs of all tracked jobs
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.jobs))
	for id := range r.jobs {
		ids = append(ids, id)
	}
	return ids
}

// Snapshot returns a copy of all current jobs ordered by first sighting,
// then ID. The order is stable across reconciliation passes so the UI diff
// never reorders rows.
func (r *Registry) Snapshot() []model.Job {
	r.mu.RLock()
	defer r.mu.RUnlock()

	jobs := make([]model.Job, 0, len(r.jobs))
	for _, job := range r.jobs {
		jobs = append(jobs, *job)
	}
	sort.Slice(jobs, func(i, j int) bool {
		if !jobs[i].FirstSeen.Equal(jobs[j].FirstSeen) {
			return jobs[i].FirstSeen.Before(jobs[j].FirstSeen)
		}
		return jobs[i].ID < jobs[j].ID
	})
	return jobs
}

// clampProgress bounds a reported percentage to [0, 100]. Regressions are
// kept as-is; the engine does not guarantee monotonic progress.
func clampProgress(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
