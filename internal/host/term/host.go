package term

import (
	"context"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/selkit/internal/dispatcher"
	"github.com/dshills/selkit/internal/dispatcher/handler"
	"github.com/dshills/selkit/internal/engine/buffer"
	"github.com/dshills/selkit/internal/engine/cursor"
	"github.com/dshills/selkit/internal/engine/history"
	"github.com/dshills/selkit/internal/highlight"
	"github.com/dshills/selkit/internal/input/fuzzy"
	"github.com/dshills/selkit/internal/input/key"
	"github.com/dshills/selkit/internal/input/keymap"
	"github.com/dshills/selkit/internal/input/palette"
	"github.com/dshills/selkit/internal/logging"
)

// DefaultTabWidth is the number of columns per tab stop.
const DefaultTabWidth = 4

// Options configures a Host.
type Options struct {
	// Name is shown in the status line, usually the file name.
	Name string
	// Keymap defaults to keymap.Default().
	Keymap *keymap.Keymap
	// Logger defaults to logging.NullLogger.
	Logger *logging.Logger
	// TabWidth defaults to DefaultTabWidth.
	TabWidth int
	// HistorySize limits the selection undo stack.
	HistorySize int
	// Language enables syntax coloring with the named lexer.
	Language string
	// Clipboard receives edit.copy text. Defaults to the system clipboard.
	Clipboard Clipboard
}

// Host is an interactive terminal front end.
type Host struct {
	screen tcell.Screen
	buf    *buffer.Buffer
	sels   *cursor.SelectionSet
	panel  *palette.Panel
	hist   *history.History
	fuzzy  *fuzzy.Matcher
	hl     *highlight.Highlighter
	clip   Clipboard
	disp   *dispatcher.Dispatcher
	keys   *keymap.Keymap
	logger *logging.Logger

	name     string
	tabWidth int

	mu     sync.Mutex
	top    int // first visible line
	status string
	quit   bool
}

// New creates a host drawing on screen and registers it with d as
// engine, cursors, view and prompt. The screen must already be
// initialized.
func New(screen tcell.Screen, buf *buffer.Buffer, d *dispatcher.Dispatcher, opts Options) *Host {
	if opts.Keymap == nil {
		opts.Keymap = keymap.Default()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NullLogger
	}
	if opts.TabWidth <= 0 {
		opts.TabWidth = DefaultTabWidth
	}
	if opts.Clipboard == nil {
		opts.Clipboard = SystemClipboard{}
	}

	h := &Host{
		screen:   screen,
		buf:      buf,
		sels:     cursor.NewSelectionSet(cursor.NewCursorSelection(0)),
		panel:    palette.NewPanel(),
		hist:     history.NewHistory(opts.HistorySize),
		fuzzy:    fuzzy.NewMatcher(fuzzy.DefaultWeights()),
		hl:       highlight.New(opts.Language),
		clip:     opts.Clipboard,
		disp:     d,
		keys:     opts.Keymap,
		logger:   opts.Logger.WithComponent("term"),
		name:     opts.Name,
		tabWidth: opts.TabWidth,
	}

	d.SetEngine(buf)
	d.SetCursors(h.sels)
	d.SetView(h)
	d.SetPrompt(h)
	h.registerCommands()
	return h
}

// Selections returns the host's selection set.
func (h *Host) Selections() *cursor.SelectionSet {
	return h.sels
}

// Panel returns the host's input panel.
func (h *Host) Panel() *palette.Panel {
	return h.panel
}

// Status returns the current status message.
func (h *Host) Status() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.status
}

// Quit reports whether the user asked to quit.
func (h *Host) Quit() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.quit
}

// textRows is the number of rows available for buffer text.
func (h *Host) textRows() int {
	_, height := h.screen.Size()
	if height <= 1 {
		return 1
	}
	return height - 1
}

// VisibleRegion returns the range of the lines currently on screen.
func (h *Host) VisibleRegion() cursor.Selection {
	h.mu.Lock()
	top := h.top
	h.mu.Unlock()

	last := top + h.textRows() - 1
	if n := h.buf.LineCount(); last >= n {
		last = n - 1
	}
	return cursor.NewSelection(h.buf.LineStartOffset(top), h.buf.LineEndOffset(last))
}

// Show scrolls so that the start of sel is on screen. A target outside
// the viewport is placed a third of the way down. The terminal has no
// scroll animation, so animate is ignored.
func (h *Host) Show(sel cursor.Selection, animate bool) {
	line := h.buf.OffsetToPoint(sel.Start()).Line
	rows := h.textRows()

	h.mu.Lock()
	defer h.mu.Unlock()

	if line >= h.top && line < h.top+rows {
		return
	}
	h.top = line - rows/3
	h.clampTop(rows)
}

// scroll moves the viewport by delta lines.
func (h *Host) scroll(delta int) {
	rows := h.textRows()

	h.mu.Lock()
	defer h.mu.Unlock()
	h.top += delta
	h.clampTop(rows)
}

// clampTop keeps the viewport inside the buffer. Caller holds mu.
func (h *Host) clampTop(rows int) {
	maxTop := h.buf.LineCount() - rows
	if h.top > maxTop {
		h.top = maxTop
	}
	if h.top < 0 {
		h.top = 0
	}
}

// ShowInputPanel opens the input panel on the status row.
func (h *Host) ShowInputPanel(title, initial string, cb palette.Callbacks) string {
	return h.panel.Show(title, initial, cb)
}

// Run draws and handles events until the user quits, the screen is
// finalized or ctx is done.
func (h *Host) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		_ = h.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	defer stop()

	for {
		h.Draw()
		ev := h.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if _, ok := ev.(*tcell.EventInterrupt); ok && ctx.Err() != nil {
			return ctx.Err()
		}
		if !h.HandleEvent(ev) {
			return nil
		}
	}
}

// HandleEvent processes one terminal event. It returns false once the
// host should stop.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventKey:
		h.handleKey(e)
	case *tcell.EventResize:
		h.screen.Sync()
		h.scroll(0)
	}
	return !h.Quit()
}

func (h *Host) handleKey(e *tcell.EventKey) {
	if _, active := h.panel.Active(); active {
		h.handlePanelKey(e)
		return
	}

	k, ok := convertKey(e)
	if !ok {
		return
	}
	h.mu.Lock()
	keys := h.keys
	h.mu.Unlock()
	b, ok := keys.Lookup(k)
	if !ok {
		h.setStatus("unbound: " + k.Spec())
		return
	}

	var result handler.Result
	h.recordChange(b.Action, func() {
		result = h.disp.Dispatch(b.ToAction())
	})
	h.reportResult(b.Action, result)
}

// recordChange runs fn and records the selection change it made, unless
// action is itself an undo or redo.
func (h *Host) recordChange(action string, fn func()) {
	if action == ActionSoftUndo || action == ActionSoftRedo {
		fn()
		return
	}
	before := h.sels.All()
	fn()
	h.hist.Record(action, before, h.sels.All())
}

func (h *Host) handlePanelKey(e *tcell.EventKey) {
	switch e.Key() {
	case tcell.KeyEnter:
		req, _ := h.panel.Active()
		if req.Title == paletteTitle {
			h.panel.Confirm()
			return
		}
		h.recordChange("prompt: "+req.Title, func() { h.panel.Confirm() })
	case tcell.KeyEscape:
		h.panel.Cancel()
		h.setStatus("cancelled")
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		h.panel.Backspace()
	case tcell.KeyTab:
		h.panel.Type('\t')
	case tcell.KeyRune:
		h.panel.Type(e.Rune())
	}
}

func (h *Host) reportResult(action string, result handler.Result) {
	switch {
	case result.IsError():
		h.logger.WithField("action", action).Warn("%v", result.Error)
		h.setStatus(result.Error.Error())
	case result.Message != "":
		h.setStatus(result.Message)
	default:
		h.setStatus(action)
	}
}

// SetKeymap replaces the key bindings. It is safe to call from any
// goroutine.
func (h *Host) SetKeymap(km *keymap.Keymap) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.keys = km
}

// Notify sets the status line from another goroutine and wakes the
// event loop so it is redrawn.
func (h *Host) Notify(msg string) {
	h.setStatus(msg)
	_ = h.screen.PostEvent(tcell.NewEventInterrupt(nil))
}

func (h *Host) setStatus(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.status = msg
}

// convertKey converts a tcell key event to a key.Event.
func convertKey(e *tcell.EventKey) (key.Event, bool) {
	mods := convertMod(e.Modifiers())

	switch k := e.Key(); {
	case k == tcell.KeyRune:
		return key.NewRuneEvent(e.Rune(), mods), true
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ &&
		k != tcell.KeyTab && k != tcell.KeyEnter && k != tcell.KeyBackspace:
		return key.NewRuneEvent(rune('a'+(k-tcell.KeyCtrlA)), mods.With(key.ModCtrl)), true
	default:
		special, ok := specialKeys[k]
		if !ok {
			return key.Event{}, false
		}
		return key.NewSpecialEvent(special, mods), true
	}
}

var specialKeys = map[tcell.Key]key.Key{
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
	tcell.KeyF1:         key.KeyF1,
	tcell.KeyF2:         key.KeyF2,
	tcell.KeyF3:         key.KeyF3,
	tcell.KeyF4:         key.KeyF4,
	tcell.KeyF5:         key.KeyF5,
	tcell.KeyF6:         key.KeyF6,
	tcell.KeyF7:         key.KeyF7,
	tcell.KeyF8:         key.KeyF8,
	tcell.KeyF9:         key.KeyF9,
	tcell.KeyF10:        key.KeyF10,
	tcell.KeyF11:        key.KeyF11,
	tcell.KeyF12:        key.KeyF12,
}

func convertMod(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModShift != 0 {
		mods = mods.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mods = mods.With(key.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		mods = mods.With(key.ModMeta)
	}
	return mods
}
