// Package term is a tcell terminal host for the selection commands.
//
// The Host owns the buffer, the selection set and an input panel, and
// plugs them into a dispatcher as engine, cursors, view and prompt. Key
// presses are looked up in a keymap and dispatched; while the input panel
// is open, keys edit the panel text instead (Enter confirms, Escape
// cancels).
//
// Every keyed command that changes the selections is recorded in a
// history, so edit.softUndo and edit.softRedo step back and forth without
// touching the text. app.palette opens the panel as a command palette
// that runs the bound action best matching the typed name.
//
// The screen's last row shows either the input panel or a status line
// with the result of the last command.
package term
