package download

import "testing"

func TestSelectionResetSelectsAll(t *testing.T) {
	s := NewSelection()
	s.Reset(3)

	if s.Count() != 3 {
		t.Errorf("Expected 3 selected after reset, got %d", s.Count())
	}
	if !s.IsAllSelected() {
		t.Error("All candidates should be selected after reset")
	}
	for i := 0; i < 3; i++ {
		if !s.IsSelected(i) {
			t.Errorf("Index %d should be selected after reset", i)
		}
	}
}

func TestSelectionToggle(t *testing.T) {
	s := NewSelection()
	s.Reset(3)

	s.Toggle(1)
	if s.IsSelected(1) {
		t.Error("Toggled index should be deselected")
	}
	if s.IsAllSelected() {
		t.Error("IsAllSelected should be false with one index out")
	}

	s.Toggle(1)
	if !s.IsSelected(1) {
		t.Error("Second toggle should re-select the index")
	}

	// Out-of-range toggles are ignored
	s.Toggle(-1)
	s.Toggle(3)
	if s.Count() != 3 {
		t.Errorf("Out-of-range toggle changed count to %d", s.Count())
	}
}

func TestSelectionSelectAndDeselectAll(t *testing.T) {
	s := NewSelection()
	s.Reset(4)

	s.DeselectAll()
	if s.Count() != 0 {
		t.Errorf("Expected empty selection, got %d", s.Count())
	}
	if s.IsAllSelected() {
		t.Error("IsAllSelected should be false for an empty non-trivial selection")
	}

	s.SelectAll()
	if !s.IsAllSelected() {
		t.Error("SelectAll should include every candidate")
	}

	// SelectAll is idempotent
	s.SelectAll()
	if s.Count() != 4 {
		t.Errorf("Expected 4 selected after repeated SelectAll, got %d", s.Count())
	}
}

func TestSelectionIndicesOrdered(t *testing.T) {
	s := NewSelection()
	s.Reset(5)
	s.Toggle(1)
	s.Toggle(3)

	got := s.Indices()
	want := []int{0, 2, 4}
	if len(got) != len(want) {
		t.Fatalf("Expected %d indices, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Position %d: expected %d, got %d", i, want[i], got[i])
		}
	}
}

func TestSelectionResetReplacesPrevious(t *testing.T) {
	s := NewSelection()
	s.Reset(5)
	s.Toggle(2)

	s.Reset(2)
	if s.Count() != 2 {
		t.Errorf("Expected 2 selected after re-seed, got %d", s.Count())
	}
	if !s.IsAllSelected() {
		t.Error("A re-seeded selection should start with everything selected")
	}
}
