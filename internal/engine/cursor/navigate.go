package cursor

// NavigateOptions controls NextVisible.
type NavigateOptions struct {
	// Forward looks below the viewport; otherwise above it.
	Forward bool
	// Wrap falls back to the first (forward) or last (backward) selection
	// when nothing qualifies.
	Wrap bool
}

// DefaultNavigateOptions returns forward navigation with wrapping.
func DefaultNavigateOptions() NavigateOptions {
	return NavigateOptions{Forward: true, Wrap: true}
}

// NextVisible picks the selection to scroll to: the nearest selection in
// the requested direction that is neither on screen nor already behind the
// viewport. sels must be in ascending buffer order.
// The bool result is false when there is nothing to show.
func NextVisible(sels []Selection, visible Selection, opts NavigateOptions) (Selection, bool) {
	if len(sels) == 0 {
		return Selection{}, false
	}

	var next Selection
	found := false

	// Scan from the far end toward the viewport so the last candidate
	// remembered is the closest one.
	for i := range sels {
		s := sels[i]
		if opts.Forward {
			s = sels[len(sels)-1-i]
		}

		if visible.Intersects(s) {
			break
		}
		if (opts.Forward && s.Less(visible)) || (!opts.Forward && visible.Less(s)) {
			break
		}
		next = s
		found = true
	}

	if !found && opts.Wrap {
		if opts.Forward {
			next = sels[0]
		} else {
			next = sels[len(sels)-1]
		}
		found = true
	}

	return next, found
}
