package cursor

// ExpandOptions selects which ends of each selection move.
type ExpandOptions struct {
	// Expand grows selections when true and shrinks them when false.
	Expand bool
	// Right moves the endpoint that lies to the right in the buffer.
	Right bool
	// Left moves the endpoint that lies to the left in the buffer.
	Left bool
}

// Expand grows or shrinks every selection by one character on the
// requested sides and clamps the result to [0, size].
// Shrinking an empty selection leaves it unchanged.
func Expand(sels []Selection, opts ExpandOptions, size Offset) []Selection {
	inc := Offset(1)
	if !opts.Expand {
		inc = -1
	}

	result := make([]Selection, len(sels))
	for i, sel := range sels {
		a, b := sel.Anchor, sel.Head

		if !(sel.IsEmpty() && !opts.Expand) {
			forward := sel.IsForward()
			if opts.Right {
				if forward {
					b += inc
				} else {
					a += inc
				}
			}
			if opts.Left {
				if forward {
					a -= inc
				} else {
					b -= inc
				}
			}
		}

		result[i] = Selection{Anchor: a, Head: b, XPos: sel.XPos}.Clamp(size)
	}
	return result
}
