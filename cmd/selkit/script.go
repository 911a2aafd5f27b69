package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/dshills/selkit/internal/dispatcher"
	"github.com/dshills/selkit/internal/engine/buffer"
	"github.com/dshills/selkit/internal/engine/cursor"
	"github.com/dshills/selkit/internal/logging"
	"github.com/dshills/selkit/internal/plugin/lua"
)

// headlessView stands in for a terminal viewport in script mode. It
// shows a fixed number of lines and scrolls to whatever it is asked to
// show.
type headlessView struct {
	buf   *buffer.Buffer
	top   int
	lines int
}

func newHeadlessView(buf *buffer.Buffer, lines int) *headlessView {
	return &headlessView{buf: buf, lines: lines}
}

func (v *headlessView) VisibleRegion() cursor.Selection {
	last := min(v.top+v.lines, v.buf.LineCount()) - 1
	return cursor.NewSelection(v.buf.LineStartOffset(v.top), v.buf.LineEndOffset(last))
}

func (v *headlessView) Show(sel cursor.Selection, _ bool) {
	v.top = v.buf.OffsetToPoint(sel.Start()).Line
}

// runScript executes a Lua script against buf and writes the resulting
// selections to w, one per line.
func runScript(ctx context.Context, path string, buf *buffer.Buffer, d *dispatcher.Dispatcher,
	logger *logging.Logger, w io.Writer) error {
	sels := cursor.NewSelectionSet(cursor.NewCursorSelection(0))
	d.SetEngine(buf)
	d.SetCursors(sels)
	d.SetView(newHeadlessView(buf, 1))

	script := lua.NewScript(lua.Host{
		Dispatcher: d,
		Engine:     buf,
		Cursors:    sels,
		Logger:     logger,
	})
	defer func() { _ = script.Close() }()

	if err := script.RunFile(ctx, path); err != nil {
		return fmt.Errorf("script %s: %w", path, err)
	}

	for _, s := range sels.All() {
		text := buf.TextRange(s.Start(), s.End())
		fmt.Fprintf(w, "%d %d %s\n", s.Anchor, s.Head, strconv.Quote(text))
	}
	return nil
}
