// Package handler provides the handler interface and result types for action dispatch.
package handler

import (
	"strings"

	"github.com/dshills/selkit/internal/dispatcher/execctx"
	"github.com/dshills/selkit/internal/input"
)

// Handler processes a specific action or set of actions.
type Handler interface {
	// Handle executes the action and returns a result.
	Handle(action input.Action, ctx *execctx.ExecutionContext) Result

	// CanHandle returns true if this handler can process the action.
	CanHandle(actionName string) bool
}

// Func adapts a plain function to Handler for a single action name.
type Func struct {
	Name string
	Fn   func(action input.Action, ctx *execctx.ExecutionContext) Result
}

// NewFunc creates a handler for name backed by fn.
func NewFunc(name string, fn func(action input.Action, ctx *execctx.ExecutionContext) Result) *Func {
	return &Func{Name: name, Fn: fn}
}

// Handle implements Handler.Handle.
func (f *Func) Handle(action input.Action, ctx *execctx.ExecutionContext) Result {
	if f.Fn == nil {
		return Errorf("handler function is nil")
	}
	return f.Fn(action, ctx)
}

// CanHandle implements Handler.CanHandle.
func (f *Func) CanHandle(actionName string) bool {
	return actionName == f.Name
}

// NamespaceHandler handles all actions within a namespace.
// A namespace is the prefix before the first dot (e.g., "selection" in "selection.expand").
type NamespaceHandler interface {
	// HandleAction handles an action within this namespace.
	HandleAction(action input.Action, ctx *execctx.ExecutionContext) Result

	// CanHandle returns true if this handler can process the action.
	CanHandle(actionName string) bool

	// Namespace returns the namespace prefix.
	Namespace() string
}

// namespaceAdapter adapts NamespaceHandler to Handler.
type namespaceAdapter struct {
	h NamespaceHandler
}

// NewNamespaceAdapter creates a Handler from a NamespaceHandler.
func NewNamespaceAdapter(h NamespaceHandler) Handler {
	return &namespaceAdapter{h: h}
}

func (a *namespaceAdapter) Handle(action input.Action, ctx *execctx.ExecutionContext) Result {
	return a.h.HandleAction(action, ctx)
}

func (a *namespaceAdapter) CanHandle(actionName string) bool {
	return strings.HasPrefix(actionName, a.h.Namespace()+".") && a.h.CanHandle(actionName)
}
