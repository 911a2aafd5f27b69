package execctx_test

import (
	"errors"
	"testing"

	"github.com/dshills/selkit/internal/dispatcher/execctx"
	"github.com/dshills/selkit/internal/engine/buffer"
	"github.com/dshills/selkit/internal/engine/cursor"
)

func TestNew(t *testing.T) {
	ctx := execctx.New()

	if ctx.Count != 1 {
		t.Errorf("expected default Count 1, got %d", ctx.Count)
	}
	if ctx.Data == nil {
		t.Error("expected Data to be initialized")
	}
	if ctx.Logger == nil {
		t.Error("expected a discard logger by default")
	}
}

func TestValidate(t *testing.T) {
	ctx := execctx.New()
	if err := ctx.Validate(); !errors.Is(err, execctx.ErrMissingEngine) {
		t.Errorf("Validate() = %v, want ErrMissingEngine", err)
	}

	ctx.WithEngine(buffer.New("abc"))
	if err := ctx.Validate(); !errors.Is(err, execctx.ErrMissingCursors) {
		t.Errorf("Validate() = %v, want ErrMissingCursors", err)
	}

	ctx.WithCursors(cursor.NewSelectionSet(cursor.NewSelection(0, 1)))
	if err := ctx.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
	if len(ctx.Selections()) != 1 {
		t.Error("Selections should read through the cursor manager")
	}
}

func TestCountAndData(t *testing.T) {
	ctx := execctx.New().WithCount(0)
	if ctx.GetCount() != 1 {
		t.Error("zero count should be ignored")
	}
	ctx.Count = -2
	if ctx.GetCount() != 1 {
		t.Error("GetCount should default to 1")
	}

	ctx.Data = nil
	ctx.SetData("k", 1)
	if v, ok := ctx.GetData("k"); !ok || v != 1 {
		t.Errorf("GetData = %v, %v", v, ok)
	}
	if ctx.WithLogger(nil).Logger == nil {
		t.Error("nil logger must not replace the default")
	}
}
