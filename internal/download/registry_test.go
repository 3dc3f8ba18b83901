package download

import (
	"testing"
	"time"

	"github.com/tubefetch/tubefetch/internal/model"
)

func TestRegistryUpsertCreatesUnknownJob(t *testing.T) {
	r := NewRegistry()

	job := r.Upsert("job-1", model.JobUpdate{Status: model.StatusDownloading, Progress: 42})

	if job.ID != "job-1" {
		t.Errorf("Expected ID job-1, got %s", job.ID)
	}
	if job.Title != model.UnknownTitle {
		t.Errorf("Expected placeholder title %q, got %q", model.UnknownTitle, job.Title)
	}
	if job.Status != model.StatusDownloading {
		t.Errorf("Expected status downloading, got %s", job.Status)
	}
	if job.Progress != 42 {
		t.Errorf("Expected progress 42, got %f", job.Progress)
	}
	if job.FirstSeen.IsZero() {
		t.Error("FirstSeen should be set on creation")
	}
	if !r.Contains("job-1") {
		t.Error("Registry should contain the created job")
	}
	if r.Len() != 1 {
		t.Errorf("Expected 1 job, got %d", r.Len())
	}
}

func TestRegistryTitleMerge(t *testing.T) {
	r := NewRegistry()

	r.Upsert("job-1", model.JobUpdate{Status: model.StatusStarting, Title: "First Title"})

	// An update without a title keeps the known one
	job := r.Upsert("job-1", model.JobUpdate{Status: model.StatusDownloading, Progress: 10})
	if job.Title != "First Title" {
		t.Errorf("Title should survive an update without one, got %q", job.Title)
	}

	// A later title wins
	job = r.Upsert("job-1", model.JobUpdate{Status: model.StatusDownloading, Title: "Better Title"})
	if job.Title != "Better Title" {
		t.Errorf("Expected updated title, got %q", job.Title)
	}
}

func TestRegistryKindAndConvertingMerge(t *testing.T) {
	r := NewRegistry()
	converting := true

	r.Upsert("job-1", model.JobUpdate{Status: model.StatusStarting, Kind: "audio"})
	job := r.Upsert("job-1", model.JobUpdate{Status: model.StatusConverting, Converting: &converting})

	if job.Kind != "audio" {
		t.Errorf("Kind should survive an update without one, got %q", job.Kind)
	}
	if !job.Converting {
		t.Error("Converting should be set from the update")
	}

	// nil Converting leaves the flag alone
	job = r.Upsert("job-1", model.JobUpdate{Status: model.StatusConverting, Progress: 99})
	if !job.Converting {
		t.Error("Converting should survive an update without the flag")
	}
}

func TestRegistryProgressClamp(t *testing.T) {
	tests := []struct {
		name     string
		progress float64
		want     float64
	}{
		{"negative clamped to zero", -5, 0},
		{"overshoot clamped to hundred", 150, 100},
		{"in range kept", 73.5, 73.5},
		{"regression kept", 20, 20},
	}

	r := NewRegistry()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := r.Upsert("job-1", model.JobUpdate{Status: model.StatusDownloading, Progress: tt.progress})
			if job.Progress != tt.want {
				t.Errorf("Expected progress %f, got %f", tt.want, job.Progress)
			}
		})
	}
}

func TestRegistryTerminalStatusSticks(t *testing.T) {
	r := NewRegistry()
	r.Upsert("job-1", model.JobUpdate{Status: model.StatusCompleted, Progress: 100})

	// A late non-terminal event cannot reopen a settled job
	job := r.Upsert("job-1", model.JobUpdate{Status: model.StatusDownloading, Progress: 50})
	if job.Status != model.StatusCompleted {
		t.Errorf("Expected completed to stick, got %s", job.Status)
	}
	if job.Progress != 100 {
		t.Errorf("Expected progress 100 to stick, got %f", job.Progress)
	}

	// The title still merges
	job = r.Upsert("job-1", model.JobUpdate{Status: model.StatusDownloading, Title: "Late Title"})
	if job.Title != "Late Title" {
		t.Errorf("Title should merge past the status guard, got %q", job.Title)
	}
	if job.Status != model.StatusCompleted {
		t.Errorf("Expected completed to stick, got %s", job.Status)
	}

	// Terminal to terminal stays allowed
	job = r.Upsert("job-1", model.JobUpdate{Status: model.StatusFailed})
	if job.Status != model.StatusFailed {
		t.Errorf("Expected failed, got %s", job.Status)
	}
}

func TestRegistrySnapshotOrder(t *testing.T) {
	r := NewRegistry()
	base := time.Now()

	// Seed out of order with explicit first sightings
	r.jobs["c"] = &model.Job{ID: "c", Status: model.StatusDownloading, FirstSeen: base.Add(2 * time.Second)}
	r.jobs["a"] = &model.Job{ID: "a", Status: model.StatusDownloading, FirstSeen: base}
	r.jobs["b"] = &model.Job{ID: "b", Status: model.StatusDownloading, FirstSeen: base.Add(time.Second)}

	// Ties fall back to ID order
	r.jobs["z"] = &model.Job{ID: "z", Status: model.StatusDownloading, FirstSeen: base}

	got := r.Snapshot()
	want := []string{"a", "z", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("Expected %d jobs, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("Position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
}

func TestRegistrySnapshotIsACopy(t *testing.T) {
	r := NewRegistry()
	r.Upsert("job-1", model.JobUpdate{Status: model.StatusDownloading, Progress: 10})

	snap := r.Snapshot()
	snap[0].Progress = 99
	snap[0].Title = "hijacked"

	fresh := r.Snapshot()
	if fresh[0].Progress != 10 || fresh[0].Title == "hijacked" {
		t.Errorf("Mutating a snapshot should not affect the registry, got %+v", fresh[0])
	}
}

func TestRegistryRemoveAndClear(t *testing.T) {
	r := NewRegistry()
	r.Upsert("job-1", model.JobUpdate{Status: model.StatusDownloading})
	r.Upsert("job-2", model.JobUpdate{Status: model.StatusDownloading})

	r.Remove("job-1")
	if r.Contains("job-1") {
		t.Error("Removed job should be gone")
	}

	// Removing an absent ID is a no-op
	r.Remove("job-1")
	if r.Len() != 1 {
		t.Errorf("Expected 1 job after repeated remove, got %d", r.Len())
	}

	r.Clear()
	if r.Len() != 0 {
		t.Errorf("Expected empty registry after clear, got %d", r.Len())
	}
}
