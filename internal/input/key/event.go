package key

import "unicode"

// Event represents a single key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true for a printable character without Ctrl, Alt or Meta.
func (e Event) IsChar() bool {
	return e.IsRune() && unicode.IsPrint(e.Rune) && !e.Modifiers.Has(ModCtrl|ModAlt|ModMeta)
}

// Spec returns the canonical specification, e.g. "ctrl+shift+right".
// For plain characters Shift is folded into the rune ("shift+a" is "A").
// With Ctrl, Alt or Meta an uppercase rune becomes shift plus the
// lowercase rune ("alt+L" is "alt+shift+l").
func (e Event) Spec() string {
	mods := e.Modifiers
	var name string

	switch e.Key {
	case KeyRune:
		r := e.Rune
		if mods.Has(ModCtrl | ModAlt | ModMeta) {
			if unicode.IsUpper(r) {
				mods = mods.With(ModShift)
				r = unicode.ToLower(r)
			}
		} else {
			if mods.Has(ModShift) {
				r = unicode.ToUpper(r)
			}
			mods = mods.Without(ModShift)
		}
		if r == ' ' {
			name = "space"
		} else {
			name = string(r)
		}
	default:
		name = e.Key.String()
	}

	if m := mods.String(); m != "" {
		return m + "+" + name
	}
	return name
}

// String returns the canonical specification.
func (e Event) String() string {
	return e.Spec()
}

// Equals reports whether two events describe the same chord.
func (e Event) Equals(other Event) bool {
	return e.Spec() == other.Spec()
}
