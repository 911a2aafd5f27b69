// Package key describes key presses and parses key specifications.
//
// A specification names zero or more modifiers and one key, joined by
// "+": "ctrl+l", "Alt+Shift+Right", "f3", "escape". Event.Spec returns
// the canonical lowercase form used as a keymap lookup key.
package key
