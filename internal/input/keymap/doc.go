// Package keymap maps key chords to dispatcher actions.
//
// Bindings are keyed by the canonical key specification (see key.Event.Spec),
// so "Alt+Shift+Right" and "shift+alt+right" name the same binding. Adding
// a binding for an existing chord replaces it; user bindings are layered
// over Default this way.
package keymap
