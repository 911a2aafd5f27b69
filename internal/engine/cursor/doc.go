// Package cursor provides selections and the transforms applied to them.
//
// Selection Model:
//
// Selections use an anchor/head model where:
//   - Anchor: The position where the selection started
//   - Head: The current cursor position (where typing would occur)
//
// When Anchor == Head, the selection represents just a cursor with no
// selected text. The selection can extend forward (head >= anchor) or
// backward (head < anchor). Offsets count characters, not bytes.
//
// Multi-Selection:
//
// SelectionSet holds the selections of a view in the order they were
// written. Unlike a merged cursor set it never sorts or deduplicates;
// SetAll swaps the whole list under one lock so readers never observe a
// half-written set.
//
// Transforms:
//
// Expand, Reverse, Normalize, NormalizeOrReverse, KeepLast, Split and
// NextVisible are pure functions over []Selection. They never fail:
// out-of-range offsets are clamped and empty input is a no-op.
//
//	sels := []cursor.Selection{cursor.NewSelection(4, 2)}
//	sels = cursor.Normalize(sels)  // [2→4]
//	sels = cursor.Expand(sels, cursor.ExpandOptions{Expand: true, Right: true}, 10)  // [2→5]
//
// Thread Safety:
//
// Selection is an immutable value type. SelectionSet is safe for
// concurrent use.
package cursor
