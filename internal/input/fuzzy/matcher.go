package fuzzy

import (
	"sort"
	"strings"
	"unicode"
)

// Result is one matched name.
type Result struct {
	Name  string
	Score int
	// Matches holds the rune indices of the matched characters.
	Matches []int
}

// Weights tune the scorer.
type Weights struct {
	Base        int
	Consecutive int
	Boundary    int
	Prefix      int
	GapPenalty  int
	// Shorter names gain one point per rune below ShortName.
	ShortName int
}

// DefaultWeights returns weights suited to dotted command names.
func DefaultWeights() Weights {
	return Weights{
		Base:        100,
		Consecutive: 20,
		Boundary:    15,
		Prefix:      25,
		GapPenalty:  2,
		ShortName:   32,
	}
}

// Matcher ranks names against a query. It holds no mutable state and is
// safe for concurrent use.
type Matcher struct {
	w Weights
}

// NewMatcher creates a matcher with the given weights.
func NewMatcher(w Weights) *Matcher {
	return &Matcher{w: w}
}

// Match returns the names matching query, best first. Ties sort by
// name. limit <= 0 returns every match. An empty query matches nothing.
func (m *Matcher) Match(query string, names []string, limit int) []Result {
	q := []rune(strings.ToLower(strings.TrimSpace(query)))
	if len(q) == 0 {
		return nil
	}

	var results []Result
	for _, name := range names {
		if matches := locate(q, []rune(strings.ToLower(name))); matches != nil {
			results = append(results, Result{
				Name:    name,
				Score:   m.score([]rune(name), matches),
				Matches: matches,
			})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Name < results[j].Name
	})
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// Best returns the top match.
func (m *Matcher) Best(query string, names []string) (Result, bool) {
	results := m.Match(query, names, 1)
	if len(results) == 0 {
		return Result{}, false
	}
	return results[0], true
}

// locate finds query runes in text, preferring a match on segment
// starts and falling back to the leftmost greedy scan.
func locate(query, text []rune) []int {
	if exact := strings.Index(string(text), string(query)); exact >= 0 {
		start := len([]rune(string(text)[:exact]))
		matches := make([]int, len(query))
		for i := range matches {
			matches[i] = start + i
		}
		return matches
	}

	matches := make([]int, 0, len(query))
	qi := 0
	for i := 0; i < len(text) && qi < len(query); i++ {
		if text[i] == query[qi] {
			matches = append(matches, i)
			qi++
		}
	}
	if qi != len(query) {
		return nil
	}
	return matches
}

func (m *Matcher) score(name []rune, matches []int) int {
	score := m.w.Base

	for i := 1; i < len(matches); i++ {
		if matches[i] == matches[i-1]+1 {
			score += m.w.Consecutive
		}
	}
	for _, idx := range matches {
		if isBoundary(name, idx) {
			score += m.w.Boundary
		}
	}
	if matches[0] == 0 {
		score += m.w.Prefix
	}

	gap := matches[len(matches)-1] - matches[0] - len(matches) + 1
	score -= gap * m.w.GapPenalty
	score -= matches[0]

	if n := len(name); n < m.w.ShortName {
		score += m.w.ShortName - n
	}
	return max(score, 1)
}

// isBoundary reports whether the rune at idx starts a word: the first
// rune, a rune after punctuation or space, or a camelCase hump.
func isBoundary(runes []rune, idx int) bool {
	if idx == 0 {
		return true
	}
	prev, cur := runes[idx-1], runes[idx]
	if unicode.IsSpace(prev) || unicode.IsPunct(prev) {
		return true
	}
	return unicode.IsLower(prev) && unicode.IsUpper(cur)
}
