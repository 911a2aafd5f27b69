// Package lua runs selection scripts with gopher-lua.
//
// Scripts see a global "sel" module whose functions dispatch selection
// commands through the same dispatcher the terminal host uses:
//
//	sel.set({{anchor = 0, head = 11}})
//	sel.split(",")
//	for i, r in ipairs(sel.get()) do
//	    print(i, r.anchor, r.head, sel.text(r.anchor, r.head))
//	end
//
// Offsets are zero-based character offsets. Only the base, table, string
// and math libraries are opened; io, os, debug and package are not, and
// dofile/loadfile/load are removed.
package lua
