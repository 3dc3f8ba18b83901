package download

import "testing"

func TestTombstonesAdd(t *testing.T) {
	ts := NewTombstones()

	if ts.Contains("job-1") {
		t.Error("Empty set should not contain anything")
	}

	ts.Add("job-1")
	if !ts.Contains("job-1") {
		t.Error("Added ID should be contained")
	}

	// Adding twice is a no-op
	ts.Add("job-1")
	if ts.Len() != 1 {
		t.Errorf("Expected 1 tombstone, got %d", ts.Len())
	}
}

func TestTombstonesAddAll(t *testing.T) {
	ts := NewTombstones()
	ts.AddAll([]string{"a", "b", "c"})

	for _, id := range []string{"a", "b", "c"} {
		if !ts.Contains(id) {
			t.Errorf("ID %s should be tombstoned", id)
		}
	}
	if ts.Len() != 3 {
		t.Errorf("Expected 3 tombstones, got %d", ts.Len())
	}

	ts.AddAll(nil)
	if ts.Len() != 3 {
		t.Errorf("Empty batch changed count to %d", ts.Len())
	}
}
