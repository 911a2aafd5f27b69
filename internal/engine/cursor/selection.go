package cursor

import (
	"fmt"

	"github.com/dshills/selkit/internal/engine/buffer"
)

// Offset is an alias for buffer.Offset for convenience.
type Offset = buffer.Offset

// NoXPos marks a selection without a visual column hint.
const NoXPos = -1.0

// Selection represents a directional range of selected text.
// Anchor is where the selection started; Head is the cursor position.
// When Anchor == Head, this represents a cursor with no selection.
// XPos is the remembered visual column used for vertical movement, or NoXPos.
// Selection is an immutable value type.
type Selection struct {
	Anchor Offset
	Head   Offset
	XPos   float64
}

// NewSelection creates a selection from anchor to head without a column hint.
func NewSelection(anchor, head Offset) Selection {
	return Selection{Anchor: anchor, Head: head, XPos: NoXPos}
}

// NewSelectionWithXPos creates a selection carrying a visual column hint.
func NewSelectionWithXPos(anchor, head Offset, xpos float64) Selection {
	return Selection{Anchor: anchor, Head: head, XPos: xpos}
}

// NewCursorSelection creates a selection representing just a cursor (no extent).
func NewCursorSelection(offset Offset) Selection {
	return Selection{Anchor: offset, Head: offset, XPos: NoXPos}
}

// IsEmpty returns true if the selection has no extent (just a cursor).
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Head
}

// Len returns the length of the selection in characters.
func (s Selection) Len() Offset {
	return s.End() - s.Start()
}

// Start returns the lower bound of the selection.
func (s Selection) Start() Offset {
	if s.Anchor <= s.Head {
		return s.Anchor
	}
	return s.Head
}

// End returns the upper bound of the selection.
func (s Selection) End() Offset {
	if s.Anchor >= s.Head {
		return s.Anchor
	}
	return s.Head
}

// HasXPos reports whether the selection carries a visual column hint.
func (s Selection) HasXPos() bool {
	return s.XPos >= 0
}

// IsForward returns true if the selection extends forward (head >= anchor).
func (s Selection) IsForward() bool {
	return s.Head >= s.Anchor
}

// IsBackward returns true if the selection extends backward (head < anchor).
func (s Selection) IsBackward() bool {
	return s.Head < s.Anchor
}

// Flip returns a selection with anchor and head swapped.
func (s Selection) Flip() Selection {
	return Selection{Anchor: s.Head, Head: s.Anchor, XPos: s.XPos}
}

// Normalize returns a forward selection (anchor <= head).
func (s Selection) Normalize() Selection {
	if s.Anchor <= s.Head {
		return s
	}
	return s.Flip()
}

// Clamp returns a selection clamped to the valid range [0, maxOffset].
func (s Selection) Clamp(maxOffset Offset) Selection {
	return Selection{
		Anchor: clampOffset(s.Anchor, maxOffset),
		Head:   clampOffset(s.Head, maxOffset),
		XPos:   s.XPos,
	}
}

// Intersects reports whether two selections share any interior position,
// or are identical. Ranges that only touch at an endpoint do not intersect.
func (s Selection) Intersects(other Selection) bool {
	lb, le := s.Start(), s.End()
	rb, re := other.Start(), other.End()

	return (lb == rb && le == re) ||
		(rb > lb && rb < le) ||
		(re > lb && re < le) ||
		(lb > rb && lb < re) ||
		(le > rb && le < re)
}

// Less orders selections by start, then by end.
func (s Selection) Less(other Selection) bool {
	if s.Start() == other.Start() {
		return s.End() < other.End()
	}
	return s.Start() < other.Start()
}

// String returns a string representation of the selection.
func (s Selection) String() string {
	if s.IsEmpty() {
		return fmt.Sprintf("Cursor(%d)", s.Head)
	}
	dir := "→"
	if s.IsBackward() {
		dir = "←"
	}
	return fmt.Sprintf("Selection(%d%s%d)", s.Anchor, dir, s.Head)
}

// Equals returns true if two selections have the same anchor, head and column hint.
func (s Selection) Equals(other Selection) bool {
	return s.Anchor == other.Anchor && s.Head == other.Head && s.XPos == other.XPos
}

// SameRange returns true if two selections cover the same range,
// regardless of direction.
func (s Selection) SameRange(other Selection) bool {
	return s.Start() == other.Start() && s.End() == other.End()
}

func clampOffset(off, maxOffset Offset) Offset {
	if off < 0 {
		return 0
	}
	if off > maxOffset {
		return maxOffset
	}
	return off
}
