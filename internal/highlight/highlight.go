// Package highlight colors text for the terminal host using chroma
// lexers.
package highlight

import (
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/gdamore/tcell/v2"
)

// Language returns the lexer name for filename, or "" when no lexer
// matches.
func Language(filename string) string {
	lexer := lexers.Match(filename)
	if lexer == nil {
		return ""
	}
	config := lexer.Config()
	if config == nil {
		return ""
	}
	return config.Name
}

// Highlighter maps each rune of a text to a style. The styles of the
// last text seen are cached.
type Highlighter struct {
	lexer chroma.Lexer

	mu    sync.Mutex
	text  string
	lines [][]tcell.Style
	valid bool
}

// New returns a highlighter for lang, or nil when lang is unknown.
func New(lang string) *Highlighter {
	if lang == "" {
		return nil
	}
	lexer := lexers.Get(lang)
	if lexer == nil {
		return nil
	}
	return &Highlighter{lexer: chroma.Coalesce(lexer)}
}

// Line returns one style per rune of the given line of text. Lines past
// the end, or text the lexer rejects, yield nil.
func (h *Highlighter) Line(text string, line int) []tcell.Style {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.valid || h.text != text {
		h.lines = h.tokenise(text)
		h.text = text
		h.valid = true
	}
	if line < 0 || line >= len(h.lines) {
		return nil
	}
	return h.lines[line]
}

func (h *Highlighter) tokenise(text string) [][]tcell.Style {
	iter, err := h.lexer.Tokenise(nil, text)
	if err != nil {
		return nil
	}

	lines := [][]tcell.Style{nil}
	for _, tok := range iter.Tokens() {
		style := tokenStyle(tok.Type)
		for _, r := range tok.Value {
			if r == '\n' {
				lines = append(lines, nil)
				continue
			}
			last := len(lines) - 1
			lines[last] = append(lines[last], style)
		}
	}
	return lines
}

func tokenStyle(t chroma.TokenType) tcell.Style {
	base := tcell.StyleDefault

	switch {
	case t.InCategory(chroma.Keyword):
		return base.Foreground(tcell.ColorBlue).Bold(true)
	case t == chroma.NameBuiltin || t == chroma.NameBuiltinPseudo:
		return base.Foreground(tcell.ColorBlue)
	case t.InSubCategory(chroma.LiteralString):
		return base.Foreground(tcell.ColorGreen)
	case t.InCategory(chroma.Comment):
		return base.Foreground(tcell.ColorGray).Italic(true)
	case t.InSubCategory(chroma.LiteralNumber):
		return base.Foreground(tcell.ColorDarkCyan)
	case t == chroma.NameFunction || t == chroma.NameFunctionMagic:
		return base.Foreground(tcell.ColorYellow)
	case t == chroma.NameClass || t == chroma.NameException || t == chroma.NameDecorator:
		return base.Foreground(tcell.ColorFuchsia)
	default:
		return base
	}
}
