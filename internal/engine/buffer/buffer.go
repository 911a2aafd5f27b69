package buffer

import (
	"errors"
	"sync"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
)

// Buffer holds text as runes with a precomputed line index.
// All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	runes      []rune
	lineStarts []Offset
}

// New creates a buffer holding text.
func New(text string) *Buffer {
	b := &Buffer{}
	b.setText(text)
	return b
}

// SetText replaces the buffer contents.
func (b *Buffer) SetText(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.setText(text)
}

func (b *Buffer) setText(text string) {
	b.runes = []rune(text)
	b.lineStarts = b.lineStarts[:0]
	b.lineStarts = append(b.lineStarts, 0)
	for i, r := range b.runes {
		if r == '\n' {
			b.lineStarts = append(b.lineStarts, i+1)
		}
	}
}

// Text returns the full buffer contents.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return string(b.runes)
}

// Len returns the buffer length in runes.
func (b *Buffer) Len() Offset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.runes)
}

// TextRange returns the text in [start, end).
// Bounds are clamped to the buffer and swapped if reversed.
func (b *Buffer) TextRange(start, end Offset) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if start > end {
		start, end = end, start
	}
	start = b.clamp(start)
	end = b.clamp(end)
	return string(b.runes[start:end])
}

// RuneAt returns the rune at offset, or ErrOffsetOutOfRange.
func (b *Buffer) RuneAt(offset Offset) (rune, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if offset < 0 || offset >= len(b.runes) {
		return 0, ErrOffsetOutOfRange
	}
	return b.runes[offset], nil
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lineStarts)
}

// LineStartOffset returns the offset of the first rune of line.
func (b *Buffer) LineStartOffset(line int) Offset {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if line <= 0 {
		return 0
	}
	if line >= len(b.lineStarts) {
		return len(b.runes)
	}
	return b.lineStarts[line]
}

// LineEndOffset returns the offset just past the last rune of line,
// excluding the newline.
func (b *Buffer) LineEndOffset(line int) Offset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnd(line)
}

func (b *Buffer) lineEnd(line int) Offset {
	if line < 0 {
		return 0
	}
	if line+1 >= len(b.lineStarts) {
		return len(b.runes)
	}
	return b.lineStarts[line+1] - 1
}

// LineText returns the text of line without its newline.
func (b *Buffer) LineText(line int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if line < 0 || line >= len(b.lineStarts) {
		return ""
	}
	return string(b.runes[b.lineStarts[line]:b.lineEnd(line)])
}

// OffsetToPoint converts an offset to a line/column position.
func (b *Buffer) OffsetToPoint(offset Offset) Point {
	b.mu.RLock()
	defer b.mu.RUnlock()

	offset = b.clamp(offset)

	// Binary search for the last line start <= offset
	lo, hi := 0, len(b.lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if b.lineStarts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return Point{Line: lo, Column: offset - b.lineStarts[lo]}
}

// PointToOffset converts a line/column position to an offset.
// Columns past the end of the line clamp to the line end.
func (b *Buffer) PointToOffset(p Point) Offset {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if p.Line < 0 {
		return 0
	}
	if p.Line >= len(b.lineStarts) {
		return len(b.runes)
	}
	start := b.lineStarts[p.Line]
	end := b.lineEnd(p.Line)
	off := start + p.Column
	if p.Column < 0 {
		off = start
	}
	if off > end {
		off = end
	}
	return off
}

func (b *Buffer) clamp(offset Offset) Offset {
	if offset < 0 {
		return 0
	}
	if offset > len(b.runes) {
		return len(b.runes)
	}
	return offset
}
