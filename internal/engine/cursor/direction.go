package cursor

// Reverse swaps anchor and head of every selection, keeping order and
// column hints. Applying it twice is the identity.
func Reverse(sels []Selection) []Selection {
	result := make([]Selection, len(sels))
	for i, sel := range sels {
		result[i] = sel.Flip()
	}
	return result
}

// Normalize makes every selection forward. Backward selections are
// swapped in place; forward ones are kept unchanged, so the result has
// the same length and order as the input.
func Normalize(sels []Selection) []Selection {
	result := make([]Selection, len(sels))
	for i, sel := range sels {
		result[i] = sel.Normalize()
	}
	return result
}

// AllForward reports whether every selection has anchor <= head.
// It is true for an empty slice.
func AllForward(sels []Selection) bool {
	for _, sel := range sels {
		if sel.IsBackward() {
			return false
		}
	}
	return true
}

// NormalizeOrReverse normalizes the selections unless they are already
// all forward, in which case it reverses them. Calling it repeatedly
// toggles direction once everything points the same way.
func NormalizeOrReverse(sels []Selection) []Selection {
	if AllForward(sels) {
		return Reverse(sels)
	}
	return Normalize(sels)
}

// KeepLast returns only the last selection. An empty input is returned as-is.
func KeepLast(sels []Selection) []Selection {
	if len(sels) == 0 {
		return sels
	}
	return []Selection{sels[len(sels)-1]}
}
