package handler_test

import (
	"errors"
	"testing"

	"github.com/dshills/selkit/internal/dispatcher/handler"
	"github.com/dshills/selkit/internal/engine/cursor"
)

func TestResultStatus(t *testing.T) {
	tests := []struct {
		status   handler.ResultStatus
		expected string
	}{
		{handler.StatusOK, "ok"},
		{handler.StatusNoOp, "no-op"},
		{handler.StatusError, "error"},
		{handler.StatusAsync, "async"},
		{handler.StatusCancelled, "cancelled"},
		{handler.ResultStatus(99), "unknown"},
	}

	for _, tc := range tests {
		if tc.status.String() != tc.expected {
			t.Errorf("ResultStatus(%d).String() = %q, want %q", tc.status, tc.status.String(), tc.expected)
		}
	}
}

func TestConstructors(t *testing.T) {
	if !handler.Success().IsOK() {
		t.Error("Success should be OK")
	}
	if r := handler.NoOpWithMessage("nothing"); r.Status != handler.StatusNoOp || r.Message != "nothing" {
		t.Errorf("NoOpWithMessage = %+v", r)
	}
	if r := handler.AsyncWithMessage("waiting"); r.Status != handler.StatusAsync {
		t.Errorf("AsyncWithMessage = %+v", r)
	}
	if r := handler.Cancelled(); r.Status != handler.StatusCancelled {
		t.Errorf("Cancelled = %+v", r)
	}
}

func TestErrorResults(t *testing.T) {
	base := errors.New("boom")
	if r := handler.Error(base); !r.IsError() || !errors.Is(r.Error, base) {
		t.Errorf("Error() = %+v", r)
	}
	r := handler.Errorf("wrap: %w", base)
	if !errors.Is(r.Error, base) {
		t.Error("Errorf should wrap with %w")
	}
}

func TestWithShow(t *testing.T) {
	sel := cursor.NewSelection(4, 9)
	r := handler.Success().WithShow(sel, true)

	if r.ViewUpdate.Show == nil {
		t.Fatal("expected a show target")
	}
	if !r.ViewUpdate.Show.Selection.Equals(sel) || !r.ViewUpdate.Show.Animate {
		t.Errorf("show target = %+v", r.ViewUpdate.Show)
	}
}

func TestWithData(t *testing.T) {
	base := handler.Success().WithData("count", 3)
	derived := base.WithData("other", "x")

	if base.GetDataInt("count") != 3 {
		t.Error("GetDataInt should read back the value")
	}
	if _, ok := base.GetData("other"); ok {
		t.Error("WithData must not mutate the receiver")
	}
	if derived.GetDataInt("count") != 3 {
		t.Error("derived result should keep earlier data")
	}
	if handler.Success().WithRedraw().ViewUpdate.Redraw != true {
		t.Error("WithRedraw should set Redraw")
	}
}
