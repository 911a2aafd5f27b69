package selection

import (
	"sort"

	"github.com/dshills/selkit/internal/dispatcher/execctx"
	"github.com/dshills/selkit/internal/dispatcher/handler"
	"github.com/dshills/selkit/internal/engine/cursor"
	"github.com/dshills/selkit/internal/input"
	"github.com/dshills/selkit/internal/input/palette"
)

// Action names for selection commands.
const (
	ActionExpand             = "selection.expand"
	ActionSingleLast         = "selection.singleLast"
	ActionSingle             = "selection.single"
	ActionReverse            = "selection.reverse"
	ActionNormalize          = "selection.normalize"
	ActionNormalizeOrReverse = "selection.normalizeOrReverse"
	ActionSplit              = "selection.split"
	ActionNavigate           = "selection.navigate"
)

// Argument keys.
const (
	ArgExpand    = "expand"
	ArgRight     = "right"
	ArgLeft      = "left"
	ArgSeparator = "separator"
	ArgForward   = "forward"
	ArgWrap      = "wrap"
)

// DataRequestID holds the input panel request id on async split results.
const DataRequestID = "requestID"

// Options configures handler defaults.
type Options struct {
	// PromptTitle is the input panel title used by split.
	PromptTitle string
	// Wrap is the navigate default when the wrap argument is absent.
	Wrap bool
}

// DefaultOptions returns the default handler options.
func DefaultOptions() Options {
	return Options{
		PromptTitle: "Separator",
		Wrap:        true,
	}
}

// Handler implements namespace-based selection handling.
type Handler struct {
	opts Options
}

// NewHandler creates a new selection handler with default options.
func NewHandler() *Handler {
	return NewHandlerWithOptions(DefaultOptions())
}

// NewHandlerWithOptions creates a selection handler with the given options.
func NewHandlerWithOptions(opts Options) *Handler {
	if opts.PromptTitle == "" {
		opts.PromptTitle = DefaultOptions().PromptTitle
	}
	return &Handler{opts: opts}
}

// Namespace returns the selection namespace.
func (h *Handler) Namespace() string {
	return "selection"
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionExpand, ActionSingleLast, ActionSingle, ActionReverse,
		ActionNormalize, ActionNormalizeOrReverse, ActionSplit, ActionNavigate:
		return true
	}
	return false
}

// HandleAction processes a selection action.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}

	switch action.Name {
	case ActionExpand:
		return h.expand(action, ctx)
	case ActionSingleLast:
		return h.singleLast(ctx)
	case ActionSingle:
		return h.single(ctx)
	case ActionReverse:
		return h.apply(ctx, cursor.Reverse)
	case ActionNormalize:
		return h.apply(ctx, cursor.Normalize)
	case ActionNormalizeOrReverse:
		return h.normalizeOrReverse(ctx)
	case ActionSplit:
		return h.split(action, ctx)
	case ActionNavigate:
		return h.navigate(action, ctx)
	default:
		return handler.Errorf("unknown selection action: %s", action.Name)
	}
}

// apply replaces the selections with f(selections).
func (h *Handler) apply(ctx *execctx.ExecutionContext, f func([]cursor.Selection) []cursor.Selection) handler.Result {
	sels := ctx.Cursors.All()
	if len(sels) == 0 {
		return handler.NoOpWithMessage("no selections")
	}
	ctx.Cursors.SetAll(f(sels))
	return handler.Success().WithRedraw()
}

// expand grows or shrinks every selection by one character per repeat.
func (h *Handler) expand(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	opts := cursor.ExpandOptions{
		Expand: action.Args.GetBoolDefault(ArgExpand, true),
		Right:  action.Args.GetBool(ArgRight),
		Left:   action.Args.GetBool(ArgLeft),
	}
	size := ctx.Engine.Len()
	count := ctx.GetCount()

	return h.apply(ctx, func(sels []cursor.Selection) []cursor.Selection {
		for i := 0; i < count; i++ {
			sels = cursor.Expand(sels, opts, size)
		}
		return sels
	})
}

// singleLast keeps the last selection, then hands over to the standard
// single-selection command so the view follows.
func (h *Handler) singleLast(ctx *execctx.ExecutionContext) handler.Result {
	result := h.apply(ctx, cursor.KeepLast)
	if !result.IsOK() {
		return result
	}

	if ctx.Runner == nil {
		return h.single(ctx)
	}
	if err := ctx.Runner.RunCommand(ActionSingle, nil); err != nil {
		return handler.Error(err)
	}
	return result
}

// single collapses the set to its first selection and shows it.
func (h *Handler) single(ctx *execctx.ExecutionContext) handler.Result {
	sels := ctx.Cursors.All()
	if len(sels) == 0 {
		return handler.NoOpWithMessage("no selections")
	}
	first := sels[0]
	ctx.Cursors.SetAll([]cursor.Selection{first})
	return handler.Success().WithShow(first, false).WithRedraw()
}

// normalizeOrReverse reverses when everything is already forward and
// normalizes otherwise, through the dispatcher when one is available.
func (h *Handler) normalizeOrReverse(ctx *execctx.ExecutionContext) handler.Result {
	sels := ctx.Cursors.All()
	if len(sels) == 0 {
		return handler.NoOpWithMessage("no selections")
	}

	next := ActionNormalize
	if cursor.AllForward(sels) {
		next = ActionReverse
	}

	if ctx.Runner == nil {
		return h.apply(ctx, cursor.NormalizeOrReverse)
	}
	if err := ctx.Runner.RunCommand(next, nil); err != nil {
		return handler.Error(err)
	}
	return handler.Success().WithRedraw().WithData("delegate", next)
}

// split divides each selection at the separator, prompting for one when
// the argument is absent.
func (h *Handler) split(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if separator, ok := action.Args.GetStringOK(ArgSeparator); ok {
		return h.apply(ctx, func(sels []cursor.Selection) []cursor.Selection {
			return cursor.Split(sels, ctx.Engine, separator)
		})
	}

	if ctx.Prompt == nil {
		return handler.Error(execctx.ErrMissingPrompt)
	}

	logger := ctx.Logger
	runner := ctx.Runner
	id := ctx.Prompt.ShowInputPanel(h.opts.PromptTitle, "", palette.Callbacks{
		OnConfirm: func(text string) {
			if runner == nil {
				h.apply(ctx, func(sels []cursor.Selection) []cursor.Selection {
					return cursor.Split(sels, ctx.Engine, text)
				})
				return
			}
			if err := runner.RunCommand(ActionSplit, map[string]interface{}{ArgSeparator: text}); err != nil {
				logger.Error("split after prompt: %v", err)
			}
		},
		OnCancel: func() {
			logger.Debug("split prompt cancelled")
		},
	})

	return handler.AsyncWithMessage("waiting for separator").WithData(DataRequestID, id)
}

// navigate scrolls to the nearest selection outside the viewport.
func (h *Handler) navigate(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if ctx.View == nil {
		return handler.NoOpWithMessage("no active view")
	}
	sels := ctx.Cursors.All()
	if len(sels) == 0 {
		return handler.NoOpWithMessage("no selections")
	}

	opts := cursor.NavigateOptions{
		Forward: action.Args.GetBoolDefault(ArgForward, true),
		Wrap:    action.Args.GetBoolDefault(ArgWrap, h.opts.Wrap),
	}

	// Navigation walks the selections in buffer order.
	sort.SliceStable(sels, func(i, j int) bool { return sels[i].Less(sels[j]) })

	target, ok := cursor.NextVisible(sels, ctx.View.VisibleRegion(), opts)
	if !ok {
		return handler.NoOpWithMessage("no selection to show")
	}
	return handler.Success().WithShow(target, true)
}
