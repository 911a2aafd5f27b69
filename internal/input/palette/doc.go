// Package palette implements the single-line input panel used by commands
// that need a value from the user before they can run.
//
// A command opens the panel with Show and returns immediately; the panel
// keeps the pending Request and its callbacks. The host feeds keystrokes
// through Type, Backspace and SetText (each fires OnChange), and finishes
// the request with Confirm or Cancel. At most one request is pending; a
// second Show cancels the first.
//
// Confirmed texts are recorded in History so hosts can offer recall.
//
//	id := panel.Show("Separator", "", palette.Callbacks{
//	    OnConfirm: func(text string) { run(text) },
//	})
//	panel.Type(',')
//	panel.Confirm()
package palette
