package palette

import "sync"

// History tracks recently confirmed panel inputs.
// Entries are stored in most-recently-used order.
type History struct {
	mu       sync.Mutex
	items    []string
	maxItems int
}

// NewHistory creates a history with the given capacity.
func NewHistory(maxItems int) *History {
	if maxItems <= 0 {
		maxItems = 100
	}
	return &History{
		items:    make([]string, 0, maxItems),
		maxItems: maxItems,
	}
}

// Add records an entry.
// If the entry was already in history, it is moved to the front.
func (h *History) Add(text string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i, item := range h.items {
		if item == text {
			h.items = append(h.items[:i], h.items[i+1:]...)
			break
		}
	}

	h.items = append([]string{text}, h.items...)

	if len(h.items) > h.maxItems {
		h.items = h.items[:h.maxItems]
	}
}

// Recent returns up to limit entries, most recent first.
func (h *History) Recent(limit int) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	if limit <= 0 || limit > len(h.items) {
		limit = len(h.items)
	}

	result := make([]string, limit)
	copy(result, h.items[:limit])
	return result
}

// Len returns the number of items in history.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.items)
}

// Clear removes all history entries.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.items = h.items[:0]
}
