package cursor

import "sync"

// SelectionSet is the ordered collection of selections in a view.
// Order is whatever the last writer produced; overlapping or duplicate
// selections are kept as-is.
type SelectionSet struct {
	mu         sync.RWMutex
	selections []Selection
}

// NewSelectionSet creates a set holding sels in order.
func NewSelectionSet(sels ...Selection) *SelectionSet {
	cs := &SelectionSet{}
	cs.selections = append(cs.selections, sels...)
	return cs
}

// All returns a copy of all selections.
// The returned slice is safe to modify without affecting the set.
func (cs *SelectionSet) All() []Selection {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	result := make([]Selection, len(cs.selections))
	copy(result, cs.selections)
	return result
}

// Count returns the number of selections.
func (cs *SelectionSet) Count() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return len(cs.selections)
}

// Get returns the selection at index and whether it exists.
func (cs *SelectionSet) Get(index int) (Selection, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	if index < 0 || index >= len(cs.selections) {
		return Selection{}, false
	}
	return cs.selections[index], true
}

// Last returns the last selection and whether the set is non-empty.
func (cs *SelectionSet) Last() (Selection, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	if len(cs.selections) == 0 {
		return Selection{}, false
	}
	return cs.selections[len(cs.selections)-1], true
}

// Add appends a selection.
func (cs *SelectionSet) Add(sel Selection) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.selections = append(cs.selections, sel)
}

// SetAll replaces every selection in one step (clear, then add in order).
func (cs *SelectionSet) SetAll(sels []Selection) {
	next := make([]Selection, len(sels))
	copy(next, sels)

	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.selections = next
}

// Clear removes all selections.
func (cs *SelectionSet) Clear() {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.selections = nil
}

// Clone returns a deep copy of the set.
func (cs *SelectionSet) Clone() *SelectionSet {
	return NewSelectionSet(cs.All()...)
}

// Equals returns true if two sets hold the same selections in the same order.
func (cs *SelectionSet) Equals(other *SelectionSet) bool {
	if other == nil {
		return false
	}
	a, b := cs.All(), other.All()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equals(b[i]) {
			return false
		}
	}
	return true
}
