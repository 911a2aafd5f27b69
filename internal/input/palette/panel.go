package palette

import (
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Callbacks receive the outcome of a panel request. Any of them may be nil.
type Callbacks struct {
	OnConfirm func(text string)
	OnChange  func(text string)
	OnCancel  func()
}

// Request describes the pending panel input.
type Request struct {
	ID    string
	Title string
	Text  string
}

// Panel is a single-line input panel with at most one pending request.
// Callbacks run synchronously on the goroutine that finished the request,
// after the panel lock is released.
type Panel struct {
	mu      sync.Mutex
	pending *Request
	cb      Callbacks
	history *History
}

// NewPanel creates an idle panel.
func NewPanel() *Panel {
	return &Panel{history: NewHistory(50)}
}

// Show opens the panel and returns the request id.
// Any request still pending is cancelled first.
func (p *Panel) Show(title, initial string, cb Callbacks) string {
	p.mu.Lock()
	prev := p.cb
	hadPending := p.pending != nil

	req := &Request{ID: uuid.NewString(), Title: title, Text: initial}
	p.pending = req
	p.cb = cb
	p.mu.Unlock()

	if hadPending && prev.OnCancel != nil {
		prev.OnCancel()
	}
	return req.ID
}

// Active returns a copy of the pending request, if any.
func (p *Panel) Active() (Request, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pending == nil {
		return Request{}, false
	}
	return *p.pending, true
}

// SetText replaces the pending text.
func (p *Panel) SetText(text string) {
	p.edit(func(string) string { return text })
}

// Type appends r to the pending text.
func (p *Panel) Type(r rune) {
	p.edit(func(s string) string { return s + string(r) })
}

// Backspace removes the last character of the pending text.
func (p *Panel) Backspace() {
	p.edit(func(s string) string {
		if s == "" {
			return s
		}
		_, size := utf8.DecodeLastRuneInString(s)
		return s[:len(s)-size]
	})
}

func (p *Panel) edit(f func(string) string) {
	p.mu.Lock()
	if p.pending == nil {
		p.mu.Unlock()
		return
	}
	p.pending.Text = f(p.pending.Text)
	text := p.pending.Text
	onChange := p.cb.OnChange
	p.mu.Unlock()

	if onChange != nil {
		onChange(text)
	}
}

// Confirm closes the panel and hands the text to OnConfirm.
// It returns false when nothing was pending.
func (p *Panel) Confirm() bool {
	p.mu.Lock()
	if p.pending == nil {
		p.mu.Unlock()
		return false
	}
	text := p.pending.Text
	onConfirm := p.cb.OnConfirm
	p.pending = nil
	p.cb = Callbacks{}
	p.mu.Unlock()

	p.history.Add(text)
	if onConfirm != nil {
		onConfirm(text)
	}
	return true
}

// Cancel closes the panel and fires OnCancel.
// It returns false when nothing was pending.
func (p *Panel) Cancel() bool {
	p.mu.Lock()
	if p.pending == nil {
		p.mu.Unlock()
		return false
	}
	onCancel := p.cb.OnCancel
	p.pending = nil
	p.cb = Callbacks{}
	p.mu.Unlock()

	if onCancel != nil {
		onCancel()
	}
	return true
}

// History returns the confirmed-input history.
func (p *Panel) History() *History {
	return p.history
}
