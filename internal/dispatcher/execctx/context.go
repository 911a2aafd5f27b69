// Package execctx provides the execution context for action handlers.
package execctx

import (
	"github.com/dshills/selkit/internal/engine/cursor"
	"github.com/dshills/selkit/internal/input"
	"github.com/dshills/selkit/internal/input/palette"
	"github.com/dshills/selkit/internal/logging"
)

// EngineInterface abstracts the text buffer for handlers.
// Offsets are character offsets.
type EngineInterface interface {
	Text() string
	TextRange(start, end cursor.Offset) string
	Len() cursor.Offset
}

// CursorManagerInterface abstracts the selection set of the active view.
type CursorManagerInterface interface {
	All() []cursor.Selection
	Count() int

	// SetAll replaces every selection (clear then add) as one update.
	SetAll(sels []cursor.Selection)
}

// ViewInterface abstracts the viewport of the active view.
type ViewInterface interface {
	// VisibleRegion returns the range currently on screen.
	VisibleRegion() cursor.Selection

	// Show scrolls so that sel is visible.
	Show(sel cursor.Selection, animate bool)
}

// PromptInterface abstracts the host input panel.
// ShowInputPanel returns immediately; exactly one of the callbacks fires later.
type PromptInterface interface {
	ShowInputPanel(title, initial string, cb palette.Callbacks) string
}

// CommandRunner re-enters the dispatcher to run another command.
type CommandRunner interface {
	RunCommand(name string, args map[string]interface{}) error
}

// ExecutionContext provides context for action execution.
// It contains references to all host capabilities needed by handlers.
type ExecutionContext struct {
	// Engine provides access to the text buffer.
	Engine EngineInterface

	// Cursors provides access to selection state.
	Cursors CursorManagerInterface

	// View provides viewport operations. Nil when no view is active.
	View ViewInterface

	// Prompt opens input panels.
	Prompt PromptInterface

	// Runner dispatches follow-up commands.
	Runner CommandRunner

	// Logger is scoped to the dispatching component.
	Logger *logging.Logger

	// Source is where the action came from.
	Source input.ActionSource

	// Count is the repeat count (1 if not specified).
	Count int

	// Data holds handler-specific context data.
	Data map[string]interface{}
}

// New creates a new execution context.
func New() *ExecutionContext {
	return &ExecutionContext{
		Count:  1,
		Logger: logging.NullLogger,
		Data:   make(map[string]interface{}),
	}
}

// WithEngine returns the context with the engine set.
func (ctx *ExecutionContext) WithEngine(engine EngineInterface) *ExecutionContext {
	ctx.Engine = engine
	return ctx
}

// WithCursors returns the context with cursors set.
func (ctx *ExecutionContext) WithCursors(cursors CursorManagerInterface) *ExecutionContext {
	ctx.Cursors = cursors
	return ctx
}

// WithView returns the context with the view set.
func (ctx *ExecutionContext) WithView(view ViewInterface) *ExecutionContext {
	ctx.View = view
	return ctx
}

// WithPrompt returns the context with the prompt set.
func (ctx *ExecutionContext) WithPrompt(prompt PromptInterface) *ExecutionContext {
	ctx.Prompt = prompt
	return ctx
}

// WithRunner returns the context with the command runner set.
func (ctx *ExecutionContext) WithRunner(runner CommandRunner) *ExecutionContext {
	ctx.Runner = runner
	return ctx
}

// WithLogger returns the context with the logger set.
func (ctx *ExecutionContext) WithLogger(logger *logging.Logger) *ExecutionContext {
	if logger != nil {
		ctx.Logger = logger
	}
	return ctx
}

// WithCount returns the context with repeat count set.
func (ctx *ExecutionContext) WithCount(count int) *ExecutionContext {
	if count > 0 {
		ctx.Count = count
	}
	return ctx
}

// GetCount returns the repeat count, defaulting to 1.
func (ctx *ExecutionContext) GetCount() int {
	if ctx.Count <= 0 {
		return 1
	}
	return ctx.Count
}

// Selections returns the current selections, or nil without a cursor manager.
func (ctx *ExecutionContext) Selections() []cursor.Selection {
	if ctx.Cursors == nil {
		return nil
	}
	return ctx.Cursors.All()
}

// SetData sets a context data value.
func (ctx *ExecutionContext) SetData(key string, value interface{}) {
	if ctx.Data == nil {
		ctx.Data = make(map[string]interface{})
	}
	ctx.Data[key] = value
}

// GetData retrieves a context data value.
func (ctx *ExecutionContext) GetData(key string) (interface{}, bool) {
	if ctx.Data == nil {
		return nil, false
	}
	v, ok := ctx.Data[key]
	return v, ok
}

// Validate checks that the context can read and write selections.
func (ctx *ExecutionContext) Validate() error {
	if ctx.Engine == nil {
		return ErrMissingEngine
	}
	if ctx.Cursors == nil {
		return ErrMissingCursors
	}
	return nil
}
