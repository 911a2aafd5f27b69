package term

import (
	"fmt"
	"slices"

	"github.com/dshills/selkit/internal/dispatcher/execctx"
	"github.com/dshills/selkit/internal/dispatcher/handler"
	"github.com/dshills/selkit/internal/engine/buffer"
	"github.com/dshills/selkit/internal/engine/cursor"
	"github.com/dshills/selkit/internal/input"
	"github.com/dshills/selkit/internal/input/palette"
)

// Host command names.
const (
	ActionQuit           = "app.quit"
	ActionSelectAll      = "edit.selectAll"
	ActionMove           = "edit.move"
	ActionMoveLine       = "edit.moveLine"
	ActionAddCursorBelow = "edit.addCursorBelow"
	ActionPageUp         = "view.pageUp"
	ActionPageDown       = "view.pageDown"
	ActionSoftUndo       = "edit.softUndo"
	ActionSoftRedo       = "edit.softRedo"
	ActionPalette        = "app.palette"
	ActionCopy           = "edit.copy"
)

const paletteTitle = "Command"

func (h *Host) registerCommands() {
	h.disp.RegisterHandlerFunc(ActionQuit, h.cmdQuit)
	h.disp.RegisterHandlerFunc(ActionSelectAll, h.cmdSelectAll)
	h.disp.RegisterHandlerFunc(ActionMove, h.cmdMove)
	h.disp.RegisterHandlerFunc(ActionMoveLine, h.cmdMoveLine)
	h.disp.RegisterHandlerFunc(ActionAddCursorBelow, h.cmdAddCursorBelow)
	h.disp.RegisterHandlerFunc(ActionPageUp, h.cmdPage(-1))
	h.disp.RegisterHandlerFunc(ActionPageDown, h.cmdPage(1))
	h.disp.RegisterHandlerFunc(ActionSoftUndo, h.cmdSoftUndo)
	h.disp.RegisterHandlerFunc(ActionSoftRedo, h.cmdSoftRedo)
	h.disp.RegisterHandlerFunc(ActionPalette, h.cmdPalette)
	h.disp.RegisterHandlerFunc(ActionCopy, h.cmdCopy)
}

func (h *Host) cmdQuit(input.Action, *execctx.ExecutionContext) handler.Result {
	h.mu.Lock()
	h.quit = true
	h.mu.Unlock()
	return handler.Success()
}

func (h *Host) cmdSelectAll(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
	ctx.Cursors.SetAll([]cursor.Selection{cursor.NewSelection(0, ctx.Engine.Len())})
	return handler.Success().WithRedraw()
}

// cmdMove moves every head by "by" characters, collapsing the selection
// unless "extend" is set.
func (h *Host) cmdMove(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	by := action.Args.GetInt("by") * ctx.GetCount()
	extend := action.Args.GetBool("extend")
	size := ctx.Engine.Len()

	sels := ctx.Cursors.All()
	for i, s := range sels {
		head := s.Head + by
		anchor := head
		if extend {
			anchor = s.Anchor
		}
		sels[i] = cursor.NewSelection(anchor, head).Clamp(size)
	}
	ctx.Cursors.SetAll(sels)
	return handler.Success().WithRedraw()
}

// cmdMoveLine moves every head up or down by lines, keeping the column
// in the selection's XPos hint.
func (h *Host) cmdMoveLine(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	by := action.Args.GetInt("by") * ctx.GetCount()
	extend := action.Args.GetBool("extend")

	sels := ctx.Cursors.All()
	for i, s := range sels {
		head, xpos := h.lineMove(s, by)
		anchor := head
		if extend {
			anchor = s.Anchor
		}
		sels[i] = cursor.NewSelectionWithXPos(anchor, head, xpos)
	}
	ctx.Cursors.SetAll(sels)
	if len(sels) > 0 {
		h.Show(sels[len(sels)-1], false)
	}
	return handler.Success().WithRedraw()
}

func (h *Host) lineMove(s cursor.Selection, by int) (cursor.Offset, float64) {
	pt := h.buf.OffsetToPoint(s.Head)
	xpos := float64(pt.Column)
	if s.HasXPos() {
		xpos = s.XPos
	}
	target := buffer.Point{Line: pt.Line + by, Column: int(xpos)}
	if target.Line < 0 {
		return 0, xpos
	}
	return h.buf.PointToOffset(target), xpos
}

// cmdAddCursorBelow adds an empty selection one line below the last one.
func (h *Host) cmdAddCursorBelow(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
	sels := ctx.Cursors.All()
	if len(sels) == 0 {
		return handler.NoOp()
	}
	last := sels[len(sels)-1]
	if h.buf.OffsetToPoint(last.Head).Line+1 >= h.buf.LineCount() {
		return handler.NoOpWithMessage("no line below")
	}
	head, xpos := h.lineMove(last, 1)
	ctx.Cursors.SetAll(append(sels, cursor.NewSelectionWithXPos(head, head, xpos)))
	return handler.Success().WithRedraw()
}

func (h *Host) cmdPage(dir int) func(input.Action, *execctx.ExecutionContext) handler.Result {
	return func(input.Action, *execctx.ExecutionContext) handler.Result {
		h.scroll(dir * h.textRows())
		return handler.Success().WithRedraw()
	}
}

// cmdSoftUndo restores the selections from before the last command.
func (h *Host) cmdSoftUndo(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
	info, err := h.hist.Undo(ctx.Cursors)
	if err != nil {
		return handler.NoOpWithMessage(err.Error())
	}
	return h.showRestored(ctx, "undo "+info.Action)
}

// cmdSoftRedo reapplies the last undone selection change.
func (h *Host) cmdSoftRedo(_ input.Action, ctx *execctx.ExecutionContext) handler.Result {
	info, err := h.hist.Redo(ctx.Cursors)
	if err != nil {
		return handler.NoOpWithMessage(err.Error())
	}
	return h.showRestored(ctx, "redo "+info.Action)
}

func (h *Host) showRestored(ctx *execctx.ExecutionContext, msg string) handler.Result {
	result := handler.SuccessWithMessage(msg).WithRedraw()
	if sels := ctx.Cursors.All(); len(sels) > 0 {
		result = result.WithShow(sels[len(sels)-1], false)
	}
	return result
}

// cmdPalette asks for a command name and runs the best fuzzy match
// among the bound actions.
func (h *Host) cmdPalette(input.Action, *execctx.ExecutionContext) handler.Result {
	id := h.ShowInputPanel(paletteTitle, "", palette.Callbacks{
		OnConfirm: h.runPaletteCommand,
	})
	return handler.AsyncWithMessage("command").WithData("requestID", id)
}

func (h *Host) runPaletteCommand(query string) {
	best, ok := h.fuzzy.Best(query, h.commandNames())
	if !ok {
		h.setStatus(fmt.Sprintf("no command matches %q", query))
		return
	}

	var result handler.Result
	h.recordChange(best.Name, func() {
		result = h.disp.Dispatch(input.NewAction(best.Name).WithSource(input.SourcePalette))
	})
	h.reportResult(best.Name, result)
}

// commandNames lists the distinct bound actions, excluding the palette.
func (h *Host) commandNames() []string {
	h.mu.Lock()
	bindings := h.keys.Bindings()
	h.mu.Unlock()

	var names []string
	for _, b := range bindings {
		if b.Action != ActionPalette && !slices.Contains(names, b.Action) {
			names = append(names, b.Action)
		}
	}
	slices.Sort(names)
	return names
}
