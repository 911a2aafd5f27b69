package lua

import (
	"context"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/selkit/internal/dispatcher/execctx"
	"github.com/dshills/selkit/internal/dispatcher/handler"
	"github.com/dshills/selkit/internal/dispatcher/handlers/selection"
	"github.com/dshills/selkit/internal/engine/cursor"
	"github.com/dshills/selkit/internal/input"
	"github.com/dshills/selkit/internal/logging"
)

// ModuleName is the global name scripts use.
const ModuleName = "sel"

// Dispatcher executes actions on behalf of scripts.
type Dispatcher interface {
	Dispatch(action input.Action) handler.Result
}

// Host is what the sel module operates on.
type Host struct {
	Dispatcher Dispatcher
	Engine     execctx.EngineInterface
	Cursors    execctx.CursorManagerInterface
	Logger     *logging.Logger
}

// Script is a Lua state with the sel module installed.
type Script struct {
	state  *State
	host   Host
	logger *logging.Logger
}

// NewScript creates a script runtime bound to host.
func NewScript(host Host, opts ...StateOption) *Script {
	logger := host.Logger
	if logger == nil {
		logger = logging.NullLogger
	}
	s := &Script{
		state:  NewState(opts...),
		host:   host,
		logger: logger.WithComponent("lua"),
	}
	s.state.RegisterModule(ModuleName, s.funcs())
	return s
}

// RunString executes Lua source.
func (s *Script) RunString(ctx context.Context, code string) error {
	return s.state.DoString(ctx, code)
}

// RunFile executes a Lua file.
func (s *Script) RunFile(ctx context.Context, path string) error {
	s.logger.Debug("running %s", path)
	return s.state.DoFile(ctx, path)
}

// Close releases the Lua state.
func (s *Script) Close() error {
	return s.state.Close()
}

func (s *Script) funcs() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"get":                  s.get,
		"set":                  s.set,
		"count":                s.count,
		"text":                 s.text,
		"len":                  s.length,
		"expand":               s.expand,
		"reverse":              s.simple(selection.ActionReverse),
		"normalize":            s.simple(selection.ActionNormalize),
		"normalize_or_reverse": s.simple(selection.ActionNormalizeOrReverse),
		"single_last":          s.simple(selection.ActionSingleLast),
		"split":                s.split,
		"navigate":             s.navigate,
		"run":                  s.run,
	}
}

// get() -> {{anchor=, head=}, ...}
func (s *Script) get(L *lua.LState) int {
	tbl := L.NewTable()
	for i, sel := range s.host.Cursors.All() {
		tbl.RawSetInt(i+1, selectionToTable(L, sel))
	}
	L.Push(tbl)
	return 1
}

// set({{anchor=, head=}, ...}) -> nil
// Replaces every selection. Offsets are clamped to the buffer.
func (s *Script) set(L *lua.LState) int {
	list := L.CheckTable(1)
	size := s.host.Engine.Len()

	var sels []cursor.Selection
	var argErr string
	list.ForEach(func(_, v lua.LValue) {
		if argErr != "" {
			return
		}
		t, ok := v.(*lua.LTable)
		if !ok {
			argErr = "selections must be tables"
			return
		}
		sel, err := tableToSelection(t)
		if err != nil {
			argErr = err.Error()
			return
		}
		sels = append(sels, sel.Clamp(size))
	})
	if argErr != "" {
		L.ArgError(1, argErr)
		return 0
	}

	s.host.Cursors.SetAll(sels)
	return 0
}

// count() -> n
func (s *Script) count(L *lua.LState) int {
	L.Push(lua.LNumber(s.host.Cursors.Count()))
	return 1
}

// text(start, end) -> string
func (s *Script) text(L *lua.LState) int {
	start := L.CheckInt(1)
	end := L.CheckInt(2)
	L.Push(lua.LString(s.host.Engine.TextRange(start, end)))
	return 1
}

// len() -> buffer length in characters
func (s *Script) length(L *lua.LState) int {
	L.Push(lua.LNumber(s.host.Engine.Len()))
	return 1
}

// expand(expand, right, left) -> status
func (s *Script) expand(L *lua.LState) int {
	args := map[string]interface{}{
		selection.ArgExpand: L.OptBool(1, true),
		selection.ArgRight:  L.OptBool(2, false),
		selection.ArgLeft:   L.OptBool(3, false),
	}
	return s.dispatch(L, selection.ActionExpand, args)
}

// split([separator]) -> status
// Without a separator the host is asked to prompt for one.
func (s *Script) split(L *lua.LState) int {
	var args map[string]interface{}
	if L.GetTop() >= 1 && L.Get(1) != lua.LNil {
		args = map[string]interface{}{selection.ArgSeparator: L.CheckString(1)}
	}
	return s.dispatch(L, selection.ActionSplit, args)
}

// navigate([forward[, wrap]]) -> status, {anchor=, head=} or nil
func (s *Script) navigate(L *lua.LState) int {
	args := map[string]interface{}{
		selection.ArgForward: L.OptBool(1, true),
	}
	if L.GetTop() >= 2 && L.Get(2) != lua.LNil {
		args[selection.ArgWrap] = L.CheckBool(2)
	}

	result := s.do(L, selection.ActionNavigate, args)
	L.Push(lua.LString(result.Status.String()))
	if show := result.ViewUpdate.Show; show != nil {
		L.Push(selectionToTable(L, show.Selection))
	} else {
		L.Push(lua.LNil)
	}
	return 2
}

// run(name[, args]) -> status
func (s *Script) run(L *lua.LState) int {
	name := L.CheckString(1)
	args := argsFromTable(L.OptTable(2, nil))
	return s.dispatch(L, name, args)
}

func (s *Script) simple(name string) lua.LGFunction {
	return func(L *lua.LState) int {
		return s.dispatch(L, name, nil)
	}
}

func (s *Script) dispatch(L *lua.LState, name string, args map[string]interface{}) int {
	result := s.do(L, name, args)
	L.Push(lua.LString(result.Status.String()))
	return 1
}

// do dispatches an action and raises a Lua error when it fails.
func (s *Script) do(L *lua.LState, name string, args map[string]interface{}) handler.Result {
	action := input.NewAction(name).WithArgs(args).WithSource(input.SourcePlugin)
	result := s.host.Dispatcher.Dispatch(action)
	if result.IsError() {
		L.RaiseError("%s: %v", name, result.Error)
	}
	return result
}
