package handler_test

import (
	"testing"

	"github.com/dshills/selkit/internal/dispatcher/execctx"
	"github.com/dshills/selkit/internal/dispatcher/handler"
	"github.com/dshills/selkit/internal/input"
)

func TestFunc(t *testing.T) {
	called := false
	fn := handler.NewFunc("test.run", func(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
		called = true
		return handler.Success()
	})

	result := fn.Handle(input.NewAction("test.run"), execctx.New())

	if !called {
		t.Error("expected handler func to be called")
	}
	if result.Status != handler.StatusOK {
		t.Errorf("expected StatusOK, got %v", result.Status)
	}
	if !fn.CanHandle("test.run") || fn.CanHandle("test.other") {
		t.Error("Func should only handle its own name")
	}
}

func TestFuncNil(t *testing.T) {
	fn := &handler.Func{Name: "test"}
	result := fn.Handle(input.NewAction("test"), execctx.New())

	if result.Status != handler.StatusError {
		t.Errorf("expected StatusError for nil func, got %v", result.Status)
	}
}

type fakeNamespace struct {
	handled []string
}

func (f *fakeNamespace) Namespace() string { return "fake" }

func (f *fakeNamespace) CanHandle(name string) bool { return name != "fake.unknown" }

func (f *fakeNamespace) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	f.handled = append(f.handled, action.Name)
	return handler.Success()
}

func TestNamespaceAdapter(t *testing.T) {
	ns := &fakeNamespace{}
	h := handler.NewNamespaceAdapter(ns)

	if !h.CanHandle("fake.run") {
		t.Error("adapter should accept actions in its namespace")
	}
	if h.CanHandle("other.run") || h.CanHandle("fake.unknown") {
		t.Error("adapter should reject foreign or unknown actions")
	}

	h.Handle(input.NewAction("fake.run"), execctx.New())
	if len(ns.handled) != 1 || ns.handled[0] != "fake.run" {
		t.Errorf("handled = %v", ns.handled)
	}
}
