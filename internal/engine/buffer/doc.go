// Package buffer provides a thread-safe, rune-indexed text buffer.
//
// All positions handed out by the buffer are character (rune) offsets, not
// byte offsets. Selections, separators and viewport ranges are measured in
// the same unit so that multi-byte text keeps its offsets aligned.
//
// Basic usage:
//
//	buf := buffer.New("héllo\nworld")
//	buf.Len()              // 11
//	buf.TextRange(0, 5)    // "héllo"
//	buf.OffsetToPoint(7)   // (1:1)
package buffer
