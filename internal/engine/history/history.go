package history

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/dshills/selkit/internal/engine/cursor"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries is used when NewHistory is given a non-positive limit.
const DefaultMaxEntries = 1000

// Target is the selection set that undo and redo restore into.
type Target interface {
	All() []cursor.Selection
	SetAll(sels []cursor.Selection)
}

// EntryInfo describes a recorded change.
type EntryInfo struct {
	Action    string
	Timestamp time.Time
}

type entry struct {
	action    string
	before    []cursor.Selection
	after     []cursor.Selection
	timestamp time.Time
}

func (e *entry) info() EntryInfo {
	return EntryInfo{Action: e.action, Timestamp: e.timestamp}
}

// History manages undo/redo stacks of selection snapshots.
type History struct {
	mu sync.Mutex

	undoStack []*entry
	redoStack []*entry

	maxEntries int
}

// NewHistory creates a new history manager.
func NewHistory(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{
		maxEntries: maxEntries,
	}
}

// Record adds a change made by action. It reports whether anything was
// recorded; identical before and after snapshots are ignored.
func (h *History) Record(action string, before, after []cursor.Selection) bool {
	if slices.Equal(before, after) {
		return false
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = append(h.undoStack, &entry{
		action:    action,
		before:    slices.Clone(before),
		after:     slices.Clone(after),
		timestamp: time.Now(),
	})
	h.redoStack = nil

	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
	return true
}

// Undo restores the selections from before the last recorded change.
func (h *History) Undo(t Target) (EntryInfo, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return EntryInfo{}, ErrNothingToUndo
	}
	e := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, e)

	t.SetAll(slices.Clone(e.before))
	return e.info(), nil
}

// Redo reapplies the last undone change.
func (h *History) Redo(t Target) (EntryInfo, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.redoStack) == 0 {
		return EntryInfo{}, ErrNothingToRedo
	}
	e := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, e)

	t.SetAll(slices.Clone(e.after))
	return e.info(), nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo operations available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo operations available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// PeekUndo returns the next change Undo would revert.
func (h *History) PeekUndo() (EntryInfo, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.undoStack) == 0 {
		return EntryInfo{}, false
	}
	return h.undoStack[len(h.undoStack)-1].info(), true
}

// Clear removes all undo/redo history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.undoStack = nil
	h.redoStack = nil
}
