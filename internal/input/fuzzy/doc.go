// Package fuzzy ranks command names against a short typed query.
//
// A name matches when every query rune appears in it in order. Matches
// are scored so that runs of consecutive runes, runes at the start of a
// dotted or camelCase segment and matches near the front rank higher:
//
//	m := fuzzy.NewMatcher(fuzzy.DefaultWeights())
//	best, ok := m.Best("snl", []string{"selection.single", "selection.singleLast"})
//
// Matching is case-insensitive.
package fuzzy
