package execctx

import "errors"

// Context validation errors.
var (
	// ErrMissingEngine indicates the engine is required but not set.
	ErrMissingEngine = errors.New("execution context: engine is required")

	// ErrMissingCursors indicates cursors are required but not set.
	ErrMissingCursors = errors.New("execution context: cursors are required")

	// ErrMissingView indicates a view is required but not set.
	ErrMissingView = errors.New("execution context: view is required")

	// ErrMissingPrompt indicates an input panel is required but not set.
	ErrMissingPrompt = errors.New("execution context: prompt is required")

	// ErrMissingRunner indicates a command runner is required but not set.
	ErrMissingRunner = errors.New("execution context: command runner is required")
)
