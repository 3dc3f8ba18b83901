package download

import (
	"sort"
	"sync"
)

// Selection tracks which candidate items of the current batch are included
// for dispatch, as 0-based indices into the immutable candidate list. A new
// fetch resets the selection with every index present.
type Selection struct {
	mu         sync.Mutex
	candidates int
	picked     map[int]struct{}
}

// NewSelection creates an empty selection over zero candidates
func NewSelection() *Selection {
	return &Selection{picked: make(map[int]struct{})}
}

// Reset re-seeds the selection for a freshly fetched batch of n candidates,
// with all of them selected.
func (s *Selection) Reset(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.candidates = n
	s.picked = make(map[int]struct{}, n)
	for i := 0; i < n; i++ {
		s.picked[i] = struct{}{}
	}
}

// SelectAll includes every candidate index
func (s *Selection) SelectAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < s.candidates; i++ {
		s.picked[i] = struct{}{}
	}
}

// DeselectAll empties the selection
func (s *Selection) DeselectAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.picked = make(map[int]struct{}, s.candidates)
}

// Toggle flips membership of one index. Out-of-range indices are ignored.
func (s *Selection) Toggle(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= s.candidates {
		return
	}
	if _, ok := s.picked[i]; ok {
		delete(s.picked, i)
	} else {
		s.picked[i] = struct{}{}
	}
}

// IsSelected reports whether the index is included
func (s *Selection) IsSelected(i int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.picked[i]
	return ok
}

// IsAllSelected reports whether every candidate is included
func (s *Selection) IsAllSelected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.picked) == s.candidates
}

// Count returns the number of selected candidates
func (s *Selection) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.picked)
}

// Indices returns the selected indices in ascending order, preserving the
// FIFO admission order of the candidate list.
func (s *Selection) Indices() []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]int, 0, len(s.picked))
	for i := range s.picked {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}
