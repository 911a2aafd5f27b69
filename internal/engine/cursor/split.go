package cursor

import (
	"strings"
	"unicode/utf8"
)

// TextReader reads text from the buffer a selection refers to.
type TextReader interface {
	TextRange(start, end Offset) string
}

// Split breaks every selection into sub-selections at each literal
// occurrence of separator, dropping the separator text. An empty
// separator splits into single characters. Sub-selections are forward
// and returned in processing order across all inputs.
func Split(sels []Selection, text TextReader, separator string) []Selection {
	sepLen := utf8.RuneCountInString(separator)

	var result []Selection
	for _, sel := range sels {
		pos := sel.Start()
		s := text.TextRange(sel.Start(), sel.End())

		var pieces []string
		if separator != "" {
			pieces = strings.Split(s, separator)
		} else {
			pieces = strings.Split(s, "")
		}

		for _, piece := range pieces {
			n := utf8.RuneCountInString(piece)
			result = append(result, NewSelection(pos, pos+n))
			pos += n + sepLen
		}
	}
	return result
}
