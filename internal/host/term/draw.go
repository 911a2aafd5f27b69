package term

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/selkit/internal/engine/cursor"
)

var (
	styleHead   = tcell.StyleDefault.Underline(true).Bold(true)
	styleStatus = tcell.StyleDefault.Reverse(true)
)

// Draw renders the visible lines and the status row.
func (h *Host) Draw() {
	h.screen.Clear()

	width, _ := h.screen.Size()
	rows := h.textRows()
	sels := h.sels.All()

	h.mu.Lock()
	top := h.top
	h.mu.Unlock()

	// Highlighters tokenize the whole buffer; fetch it once per frame.
	var text string
	if h.hl != nil {
		text = h.buf.Text()
	}

	for row := 0; row < rows; row++ {
		line := top + row
		if line >= h.buf.LineCount() {
			break
		}
		h.drawLine(row, line, width, text, sels)
	}

	h.drawStatus(rows, width)
	h.screen.Show()
}

// drawLine draws buffer line at screen row, highlighting selected cells.
// text is the full buffer, used only when a highlighter is set.
func (h *Host) drawLine(row, line, width int, text string, sels []cursor.Selection) {
	offset := h.buf.LineStartOffset(line)
	x := 0

	var colors []tcell.Style
	if h.hl != nil {
		colors = h.hl.Line(text, line)
	}

	for i, r := range []rune(h.buf.LineText(line)) {
		if x >= width {
			return
		}
		base := tcell.StyleDefault
		if i < len(colors) {
			base = colors[i]
		}
		style := cellStyle(offset, sels, base)

		if r == '\t' {
			n := h.tabWidth - x%h.tabWidth
			for i := 0; i < n && x < width; i++ {
				h.screen.SetContent(x, row, ' ', nil, style)
				x++
			}
			offset++
			continue
		}

		w := runewidth.RuneWidth(r)
		if w == 0 {
			w = 1
			r = ' '
		}
		if x+w > width {
			return
		}
		h.screen.SetContent(x, row, r, nil, style)
		x += w
		offset++
	}

	// A head at the end of the line gets a visible cell.
	if x < width && isHead(offset, sels) {
		h.screen.SetContent(x, row, ' ', nil, styleHead)
	}
}

// drawStatus draws the input panel or the status line on row y.
func (h *Host) drawStatus(y, width int) {
	var text string
	if req, ok := h.panel.Active(); ok {
		text = req.Title + ": " + req.Text
	} else {
		text = fmt.Sprintf(" %s  %d sel  %s", h.name, h.sels.Count(), h.Status())
	}

	x := 0
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > width {
			break
		}
		h.screen.SetContent(x, y, r, nil, styleStatus)
		x += w
	}
	for ; x < width; x++ {
		h.screen.SetContent(x, y, ' ', nil, styleStatus)
	}
}

// cellStyle decorates base for the character at offset: heads are
// underlined and bold, selected characters reversed.
func cellStyle(offset cursor.Offset, sels []cursor.Selection, base tcell.Style) tcell.Style {
	if isHead(offset, sels) {
		return base.Underline(true).Bold(true)
	}
	for _, s := range sels {
		if offset >= s.Start() && offset < s.End() {
			return base.Reverse(true)
		}
	}
	return base
}

func isHead(offset cursor.Offset, sels []cursor.Selection) bool {
	for _, s := range sels {
		if s.Head == offset {
			return true
		}
	}
	return false
}
