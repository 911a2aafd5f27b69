package term

import (
	"strconv"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/dshills/selkit/internal/dispatcher/execctx"
	"github.com/dshills/selkit/internal/dispatcher/handler"
	"github.com/dshills/selkit/internal/input"
)

// Clipboard stores copied text.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the desktop clipboard.
type SystemClipboard struct{}

// WriteAll implements Clipboard.
func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// cmdCopy copies the text of every non-empty selection, one per line, in
// selection order.
func (h *Host) cmdCopy(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
	var parts []string
	for _, s := range ctx.Cursors.All() {
		if !s.IsEmpty() {
			parts = append(parts, ctx.Engine.TextRange(s.Start(), s.End()))
		}
	}
	if len(parts) == 0 {
		return handler.NoOpWithMessage("nothing to copy")
	}
	if err := h.clip.WriteAll(strings.Join(parts, "\n")); err != nil {
		return handler.Errorf("copy: %w", err)
	}
	return handler.SuccessWithMessage(plural(len(parts), "region") + " copied")
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
