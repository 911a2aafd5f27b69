package dispatcher

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/selkit/internal/dispatcher/execctx"
	"github.com/dshills/selkit/internal/dispatcher/handler"
	"github.com/dshills/selkit/internal/input"
	"github.com/dshills/selkit/internal/logging"
)

// Dispatcher routes actions to handlers and coordinates execution.
type Dispatcher struct {
	mu sync.RWMutex

	registry *Registry
	router   *Router

	// Host capabilities
	engine  execctx.EngineInterface
	cursors execctx.CursorManagerInterface
	view    execctx.ViewInterface
	prompt  execctx.PromptInterface

	config  Config
	logger  *logging.Logger
	metrics *Metrics

	// depth counts nested dispatches started through RunCommand.
	depth atomic.Int32
}

// New creates a new dispatcher with the given configuration.
func New(config Config) *Dispatcher {
	logger := config.Logger
	if logger == nil {
		logger = logging.NullLogger
	}
	d := &Dispatcher{
		registry: NewRegistry(),
		router:   NewRouter(),
		config:   config,
		logger:   logger.WithComponent("dispatcher"),
	}
	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}
	return d
}

// NewWithDefaults creates a new dispatcher with default configuration.
func NewWithDefaults() *Dispatcher {
	return New(DefaultConfig())
}

// SetEngine sets the text engine.
func (d *Dispatcher) SetEngine(engine execctx.EngineInterface) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.engine = engine
}

// SetCursors sets the selection set.
func (d *Dispatcher) SetCursors(cursors execctx.CursorManagerInterface) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cursors = cursors
}

// SetView sets the active view. Nil means no view is active.
func (d *Dispatcher) SetView(view execctx.ViewInterface) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.view = view
}

// SetPrompt sets the input panel.
func (d *Dispatcher) SetPrompt(prompt execctx.PromptInterface) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.prompt = prompt
}

// Metrics returns the metrics collector, or nil when disabled.
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// RegisterHandler registers a handler for an exact action name.
func (d *Dispatcher) RegisterHandler(actionName string, h handler.Handler) {
	d.registry.Register(actionName, h)
}

// RegisterHandlerFunc registers a handler function for an action name.
func (d *Dispatcher) RegisterHandlerFunc(actionName string, fn func(input.Action, *execctx.ExecutionContext) handler.Result) {
	d.registry.Register(actionName, handler.NewFunc(actionName, fn))
}

// RegisterNamespace registers a namespace handler.
func (d *Dispatcher) RegisterNamespace(h handler.NamespaceHandler) {
	d.router.RegisterNamespace(h)
}

// HasAction reports whether an action name would be routed to a handler.
func (d *Dispatcher) HasAction(actionName string) bool {
	return d.registry.Has(actionName) || d.router.Route(actionName) != nil
}

// Dispatch executes an action synchronously.
func (d *Dispatcher) Dispatch(action input.Action) handler.Result {
	startTime := time.Now()

	if action.Name == "" {
		return handler.Error(ErrInvalidAction)
	}

	ctx := d.buildContext(action)

	// Exact registrations take precedence over namespaces so hosts can
	// override a single command.
	h := d.registry.Get(action.Name)
	if h == nil {
		h = d.router.Route(action.Name)
	}
	if h == nil {
		return handler.Error(fmt.Errorf("%w: %s", ErrNoHandler, action.Name))
	}

	var result handler.Result
	if d.config.RecoverFromPanic {
		result = d.executeWithRecovery(h, action, ctx)
	} else {
		result = h.Handle(action, ctx)
	}

	d.processResult(result, ctx)

	elapsed := time.Since(startTime)
	if d.metrics != nil {
		d.metrics.RecordDispatch(action.Name, elapsed, result.Status)
	}

	log := d.logger.WithField("action", action.Name).WithField("source", action.Source.String())
	if result.IsError() {
		log.Warn("dispatch failed: %v", result.Error)
	} else {
		log.Debug("dispatched in %s: %s", elapsed, result.Status)
	}

	return result
}

// RunCommand dispatches name with args on behalf of a handler.
// It implements execctx.CommandRunner.
func (d *Dispatcher) RunCommand(name string, args map[string]interface{}) error {
	if d.config.MaxDepth > 0 && int(d.depth.Load()) >= d.config.MaxDepth {
		return fmt.Errorf("%w: %s", ErrTooDeep, name)
	}
	d.depth.Add(1)
	defer d.depth.Add(-1)

	result := d.Dispatch(input.NewAction(name).WithArgs(args).WithSource(input.SourceAPI))
	if result.IsError() {
		return result.Error
	}
	return nil
}

// executeWithRecovery executes a handler with panic recovery.
func (d *Dispatcher) executeWithRecovery(h handler.Handler, action input.Action, ctx *execctx.ExecutionContext) (result handler.Result) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)

			result = handler.Error(fmt.Errorf("%w for %s: %v\n%s", ErrPanic, action.Name, r, string(stack[:n])))

			if d.metrics != nil {
				d.metrics.RecordPanic(action.Name)
			}
		}
	}()

	return h.Handle(action, ctx)
}

// buildContext builds an execution context from current state.
func (d *Dispatcher) buildContext(action input.Action) *execctx.ExecutionContext {
	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx := execctx.New().
		WithEngine(d.engine).
		WithCursors(d.cursors).
		WithView(d.view).
		WithPrompt(d.prompt).
		WithRunner(d).
		WithLogger(d.logger.WithComponent("handler").WithField("action", action.Name)).
		WithCount(action.Count)
	ctx.Source = action.Source

	return ctx
}

// processResult applies the view updates requested by a handler.
func (d *Dispatcher) processResult(result handler.Result, ctx *execctx.ExecutionContext) {
	if ctx.View == nil || result.ViewUpdate.Show == nil {
		return
	}
	show := result.ViewUpdate.Show
	ctx.View.Show(show.Selection, show.Animate)
}
