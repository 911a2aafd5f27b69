// Package history records selection changes so they can be undone and
// redone without touching the text.
//
// Each entry holds the selections before and after one command:
//
//	h := NewHistory(100)
//	before := sels.All()
//	// ... run a command ...
//	h.Record("selection.expand", before, sels.All())
//
//	h.Undo(sels) // restores before
//	h.Redo(sels) // restores after
//
// Recording a new change clears the redo stack. Changes that leave the
// selections as they were are not recorded.
package history
