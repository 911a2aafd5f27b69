package term

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"

	"github.com/dshills/selkit/internal/dispatcher"
	"github.com/dshills/selkit/internal/dispatcher/handlers/selection"
	"github.com/dshills/selkit/internal/engine/buffer"
	"github.com/dshills/selkit/internal/engine/cursor"
	"github.com/dshills/selkit/internal/input/key"
	"github.com/dshills/selkit/internal/input/keymap"
)

func newTestHost(t *testing.T, text string, width, height int) (*Host, tcell.SimulationScreen) {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	screen.SetSize(width, height)
	t.Cleanup(screen.Fini)

	d := dispatcher.NewWithDefaults()
	d.RegisterNamespace(selection.NewHandler())
	h := New(screen, buffer.New(text), d, Options{Name: "test.txt"})
	return h, screen
}

func press(h *Host, k tcell.Key, r rune, mod tcell.ModMask) {
	h.HandleEvent(tcell.NewEventKey(k, r, mod))
}

func typeRune(h *Host, r rune) {
	press(h, tcell.KeyRune, r, tcell.ModNone)
}

func cellAt(screen tcell.SimulationScreen, x, y int) (rune, tcell.Style) {
	r, _, style, _ := screen.GetContent(x, y) //nolint:staticcheck // GetContent is the correct API
	return r, style
}

func rowText(screen tcell.SimulationScreen, y, width int) string {
	var sb strings.Builder
	for x := 0; x < width; x++ {
		r, _ := cellAt(screen, x, y)
		sb.WriteRune(r)
	}
	return strings.TrimRight(sb.String(), " ")
}

func manyLines(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %02d", i)
	}
	return strings.Join(lines, "\n")
}

func TestConvertKey(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want string
	}{
		{tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModAlt), "alt+right"},
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModAlt|tcell.ModShift), "alt+shift+left"},
		{tcell.NewEventKey(tcell.KeyF3, 0, tcell.ModShift), "shift+f3"},
		{tcell.NewEventKey(tcell.KeyCtrlL, 0, tcell.ModCtrl), "ctrl+l"},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), "escape"},
		{tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), "x"},
	}
	for _, tt := range tests {
		got, ok := convertKey(tt.ev)
		if !ok {
			t.Errorf("convertKey(%v) not converted", tt.want)
			continue
		}
		if got.Spec() != tt.want {
			t.Errorf("convertKey = %q, want %q", got.Spec(), tt.want)
		}
	}
}

func TestExpandByKey(t *testing.T) {
	h, _ := newTestHost(t, "hello world", 40, 5)
	h.Selections().SetAll([]cursor.Selection{cursor.NewSelection(2, 4)})

	press(h, tcell.KeyRight, 0, tcell.ModAlt)
	press(h, tcell.KeyLeft, 0, tcell.ModAlt)

	want := []cursor.Selection{cursor.NewSelection(1, 5)}
	if diff := cmp.Diff(want, h.Selections().All()); diff != "" {
		t.Errorf("selections mismatch (-want +got):\n%s", diff)
	}
	if h.Status() != selection.ActionExpand {
		t.Errorf("status = %q", h.Status())
	}
}

func TestSplitThroughPanel(t *testing.T) {
	h, screen := newTestHost(t, "a,b,c", 40, 5)
	press(h, tcell.KeyCtrlA, 0, tcell.ModCtrl)
	press(h, tcell.KeyCtrlS, 0, tcell.ModCtrl)

	req, ok := h.Panel().Active()
	if !ok {
		t.Fatal("expected input panel after ctrl+s")
	}

	typeRune(h, ',')
	h.Draw()
	if got := rowText(screen, 4, 40); got != req.Title+": ," {
		t.Errorf("status row = %q", got)
	}

	press(h, tcell.KeyEnter, 0, tcell.ModNone)
	if _, ok := h.Panel().Active(); ok {
		t.Error("panel should close on enter")
	}
	want := []cursor.Selection{cursor.NewSelection(0, 1), cursor.NewSelection(2, 3), cursor.NewSelection(4, 5)}
	if diff := cmp.Diff(want, h.Selections().All()); diff != "" {
		t.Errorf("selections mismatch (-want +got):\n%s", diff)
	}
}

func TestPanelCancel(t *testing.T) {
	h, _ := newTestHost(t, "a,b", 40, 5)
	press(h, tcell.KeyCtrlA, 0, tcell.ModCtrl)
	press(h, tcell.KeyCtrlS, 0, tcell.ModCtrl)
	typeRune(h, ',')
	press(h, tcell.KeyBackspace2, 0, tcell.ModNone)
	if req, _ := h.Panel().Active(); req.Text != "" {
		t.Errorf("backspace left %q", req.Text)
	}
	press(h, tcell.KeyEscape, 0, tcell.ModNone)

	want := []cursor.Selection{cursor.NewSelection(0, 3)}
	if diff := cmp.Diff(want, h.Selections().All()); diff != "" {
		t.Errorf("cancel changed selections:\n%s", diff)
	}
	if h.Status() != "cancelled" {
		t.Errorf("status = %q", h.Status())
	}
}

func TestNavigateScrolls(t *testing.T) {
	// 5 rows: 4 text rows and the status row.
	h, screen := newTestHost(t, manyLines(30), 20, 5)
	b := h.buf
	h.Selections().SetAll([]cursor.Selection{
		cursor.NewSelection(b.LineStartOffset(1), b.LineStartOffset(1)+4),
		cursor.NewSelection(b.LineStartOffset(20), b.LineStartOffset(20)+4),
	})

	press(h, tcell.KeyF3, 0, tcell.ModNone)

	vis := h.VisibleRegion()
	if line := b.OffsetToPoint(vis.Start()).Line; line != 19 {
		t.Errorf("top line = %d, want 19", line)
	}

	h.Draw()
	if got := rowText(screen, 1, 20); got != "line 20" {
		t.Errorf("row 1 = %q, want %q", got, "line 20")
	}

	// Backward finds the selection above the viewport.
	press(h, tcell.KeyF3, 0, tcell.ModShift)
	if line := b.OffsetToPoint(h.VisibleRegion().Start()).Line; line != 0 {
		t.Errorf("top line = %d, want 0", line)
	}
}

func TestDrawHighlightsSelection(t *testing.T) {
	h, screen := newTestHost(t, "abcdef", 20, 3)
	h.Selections().SetAll([]cursor.Selection{cursor.NewSelection(1, 3)})
	h.Draw()

	if got := rowText(screen, 0, 20); got != "abcdef" {
		t.Fatalf("row 0 = %q", got)
	}

	_, plain := cellAt(screen, 0, 0)
	_, selected := cellAt(screen, 1, 0)
	_, head := cellAt(screen, 3, 0)

	if _, _, attrs := plain.Decompose(); attrs&tcell.AttrReverse != 0 {
		t.Error("unselected cell should not be reversed")
	}
	if _, _, attrs := selected.Decompose(); attrs&tcell.AttrReverse == 0 {
		t.Error("selected cell should be reversed")
	}
	if _, _, attrs := head.Decompose(); attrs&tcell.AttrUnderline == 0 {
		t.Error("head cell should be underlined")
	}

	status := rowText(screen, 2, 20)
	if !strings.Contains(status, "test.txt") || !strings.Contains(status, "1 sel") {
		t.Errorf("status row = %q", status)
	}
}

func TestDrawWideRunes(t *testing.T) {
	h, screen := newTestHost(t, "日本\tx", 20, 3)
	h.Draw()

	if r, _ := cellAt(screen, 2, 0); r != '本' {
		t.Errorf("cell 2 = %q, want 本", r)
	}
	// The tab at column 4 advances to the next stop at 8.
	if r, _ := cellAt(screen, 8, 0); r != 'x' {
		t.Errorf("cell 8 = %q, want x", r)
	}
}

func TestMoveLineKeepsColumn(t *testing.T) {
	h, _ := newTestHost(t, "abcdef\nab\nabcdef", 20, 5)
	h.Selections().SetAll([]cursor.Selection{cursor.NewCursorSelection(5)})

	press(h, tcell.KeyDown, 0, tcell.ModNone)
	press(h, tcell.KeyDown, 0, tcell.ModNone)

	got := h.Selections().All()
	if len(got) != 1 || got[0].Head != h.buf.PointToOffset(buffer.Point{Line: 2, Column: 5}) {
		t.Errorf("selections = %v", got)
	}
}

func TestAddCursorBelowAndSelectAll(t *testing.T) {
	h, _ := newTestHost(t, "one\ntwo\nthree", 20, 5)

	press(h, tcell.KeyDown, 0, tcell.ModCtrl)
	press(h, tcell.KeyDown, 0, tcell.ModCtrl)
	press(h, tcell.KeyDown, 0, tcell.ModCtrl)
	if n := h.Selections().Count(); n != 3 {
		t.Errorf("count = %d, want 3", n)
	}
	if h.Status() != "no line below" {
		t.Errorf("status = %q", h.Status())
	}

	press(h, tcell.KeyCtrlA, 0, tcell.ModCtrl)
	want := []cursor.Selection{cursor.NewSelection(0, 13)}
	if diff := cmp.Diff(want, h.Selections().All()); diff != "" {
		t.Errorf("select all mismatch (-want +got):\n%s", diff)
	}
}

func TestUnboundKey(t *testing.T) {
	h, _ := newTestHost(t, "abc", 20, 3)
	press(h, tcell.KeyF12, 0, tcell.ModNone)
	if h.Status() != "unbound: f12" {
		t.Errorf("status = %q", h.Status())
	}
}

func TestQuit(t *testing.T) {
	h, _ := newTestHost(t, "abc", 20, 3)
	if !h.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)) {
		t.Fatal("host stopped early")
	}
	if h.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl)) {
		t.Error("ctrl+q should stop the host")
	}
}

func TestRunStopsOnContext(t *testing.T) {
	h, _ := newTestHost(t, "abc", 20, 3)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- h.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Run = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestKeymapOverride(t *testing.T) {
	h, _ := newTestHost(t, "abc", 20, 3)
	if err := h.keys.Add("f12", "selection.reverse", nil); err != nil {
		t.Fatal(err)
	}
	h.Selections().SetAll([]cursor.Selection{cursor.NewSelection(0, 2)})
	press(h, tcell.KeyF12, 0, tcell.ModNone)
	if got := h.Selections().All()[0]; got != cursor.NewSelection(2, 0) {
		t.Errorf("selection = %v", got)
	}
	if _, ok := h.keys.Lookup(key.MustParse("f12")); !ok {
		t.Error("binding missing")
	}
}

func TestSetKeymapAndNotify(t *testing.T) {
	h, _ := newTestHost(t, "abc", 20, 3)

	km := keymap.New()
	if err := km.Add("f5", "selection.reverse", nil); err != nil {
		t.Fatal(err)
	}
	h.SetKeymap(km)
	h.Selections().SetAll([]cursor.Selection{cursor.NewSelection(0, 2)})

	press(h, tcell.KeyF5, 0, tcell.ModNone)
	if got := h.Selections().All()[0]; got != cursor.NewSelection(2, 0) {
		t.Errorf("selection = %v", got)
	}
	press(h, tcell.KeyCtrlA, 0, tcell.ModCtrl)
	if got := h.Status(); got != "unbound: ctrl+a" {
		t.Errorf("status = %q", got)
	}

	h.Notify("config reloaded")
	if got := h.Status(); got != "config reloaded" {
		t.Errorf("status = %q", got)
	}
}

func TestSoftUndoRedo(t *testing.T) {
	h, _ := newTestHost(t, "a,b,c", 20, 3)

	press(h, tcell.KeyCtrlA, 0, tcell.ModCtrl)
	press(h, tcell.KeyCtrlS, 0, tcell.ModCtrl)
	typeRune(h, ',')
	press(h, tcell.KeyEnter, 0, tcell.ModNone)
	if got := h.Selections().Count(); got != 3 {
		t.Fatalf("split count = %d", got)
	}

	press(h, tcell.KeyCtrlZ, 0, tcell.ModCtrl)
	want := []cursor.Selection{cursor.NewSelection(0, 5)}
	if diff := cmp.Diff(want, h.Selections().All()); diff != "" {
		t.Errorf("after undo (-want +got):\n%s", diff)
	}
	if got := h.Status(); got != "undo prompt: Separator" {
		t.Errorf("status = %q", got)
	}

	press(h, tcell.KeyCtrlZ, 0, tcell.ModCtrl)
	want = []cursor.Selection{cursor.NewCursorSelection(0)}
	if diff := cmp.Diff(want, h.Selections().All()); diff != "" {
		t.Errorf("after second undo (-want +got):\n%s", diff)
	}

	press(h, tcell.KeyCtrlY, 0, tcell.ModCtrl)
	press(h, tcell.KeyCtrlY, 0, tcell.ModCtrl)
	if got := h.Selections().Count(); got != 3 {
		t.Errorf("after redo count = %d", got)
	}
	press(h, tcell.KeyCtrlY, 0, tcell.ModCtrl)
	if got := h.Status(); got != "nothing to redo" {
		t.Errorf("status = %q", got)
	}
}

func TestCommandPalette(t *testing.T) {
	h, _ := newTestHost(t, "abc", 20, 3)
	h.Selections().SetAll([]cursor.Selection{cursor.NewSelection(0, 2)})

	press(h, tcell.KeyCtrlP, 0, tcell.ModCtrl)
	if req, ok := h.Panel().Active(); !ok || req.Title != "Command" {
		t.Fatalf("palette not open: %+v, %v", req, ok)
	}
	for _, r := range "rev" {
		typeRune(h, r)
	}
	press(h, tcell.KeyEnter, 0, tcell.ModNone)

	if got := h.Selections().All()[0]; got != cursor.NewSelection(2, 0) {
		t.Errorf("selection = %v", got)
	}
	if got := h.Status(); got != "selection.reverse" {
		t.Errorf("status = %q", got)
	}

	press(h, tcell.KeyCtrlZ, 0, tcell.ModCtrl)
	if got := h.Status(); got != "undo selection.reverse" {
		t.Errorf("status = %q", got)
	}

	press(h, tcell.KeyCtrlP, 0, tcell.ModCtrl)
	for _, r := range "zzz" {
		typeRune(h, r)
	}
	press(h, tcell.KeyEnter, 0, tcell.ModNone)
	if got := h.Status(); got != `no command matches "zzz"` {
		t.Errorf("status = %q", got)
	}
}

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) WriteAll(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

func newHostWithOptions(t *testing.T, text string, opts Options) *Host {
	t.Helper()

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	screen.SetSize(30, 4)
	t.Cleanup(screen.Fini)

	d := dispatcher.NewWithDefaults()
	d.RegisterNamespace(selection.NewHandler())
	return New(screen, buffer.New(text), d, opts)
}

func TestCopy(t *testing.T) {
	clip := &fakeClipboard{}
	h := newHostWithOptions(t, "alpha beta gamma", Options{Clipboard: clip})

	h.Selections().SetAll([]cursor.Selection{
		cursor.NewSelection(0, 5),
		cursor.NewCursorSelection(6),
		cursor.NewSelection(16, 11),
	})
	press(h, tcell.KeyCtrlC, 0, tcell.ModCtrl)
	if clip.text != "alpha\ngamma" {
		t.Errorf("clipboard = %q", clip.text)
	}
	if got := h.Status(); got != "2 regions copied" {
		t.Errorf("status = %q", got)
	}

	h.Selections().SetAll([]cursor.Selection{cursor.NewCursorSelection(0)})
	press(h, tcell.KeyCtrlC, 0, tcell.ModCtrl)
	if got := h.Status(); got != "nothing to copy" {
		t.Errorf("status = %q", got)
	}
}

func TestCopyError(t *testing.T) {
	clip := &fakeClipboard{err: fmt.Errorf("no display")}
	h := newHostWithOptions(t, "abc", Options{Clipboard: clip})
	h.Selections().SetAll([]cursor.Selection{cursor.NewSelection(0, 3)})

	press(h, tcell.KeyCtrlC, 0, tcell.ModCtrl)
	if got := h.Status(); got != "copy: no display" {
		t.Errorf("status = %q", got)
	}
}

func TestDrawSyntaxColors(t *testing.T) {
	h := newHostWithOptions(t, "package main", Options{Language: "Go"})
	screen := h.screen.(tcell.SimulationScreen)
	h.Selections().SetAll([]cursor.Selection{cursor.NewSelection(1, 3)})
	h.Draw()

	_, style := cellAt(screen, 2, 0)
	fg, _, attrs := style.Decompose()
	if fg != tcell.ColorBlue {
		t.Errorf("keyword fg = %v", fg)
	}
	if attrs&tcell.AttrReverse == 0 {
		t.Error("selected keyword should stay reversed")
	}
}

func TestDrawSyntaxColorsEveryLine(t *testing.T) {
	h := newHostWithOptions(t, "package main\n\nfunc f() {}\n", Options{Language: "Go"})
	screen := h.screen.(tcell.SimulationScreen)
	h.Draw()

	for _, row := range []int{0, 2} {
		_, style := cellAt(screen, 0, row)
		if fg, _, _ := style.Decompose(); fg != tcell.ColorBlue {
			t.Errorf("row %d keyword fg = %v", row, fg)
		}
	}
}
