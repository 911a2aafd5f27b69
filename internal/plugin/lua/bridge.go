package lua

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/selkit/internal/engine/cursor"
)

// toGoValue converts a Lua value to a Go value. Integral numbers become
// int64; tables become []interface{} or map[string]interface{}.
func toGoValue(lv lua.LValue, visited map[*lua.LTable]bool) interface{} {
	switch v := lv.(type) {
	case lua.LBool:
		return bool(v)
	case lua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
			return int64(f)
		}
		return f
	case lua.LString:
		return string(v)
	case *lua.LTable:
		if visited[v] {
			return nil
		}
		visited[v] = true
		return tableToGo(v, visited)
	default:
		return nil
	}
}

// tableToGo converts a Lua table to a slice when its keys are 1..n and to
// a map otherwise.
func tableToGo(t *lua.LTable, visited map[*lua.LTable]bool) interface{} {
	n := t.Len()
	count := 0
	t.ForEach(func(_, _ lua.LValue) { count++ })

	if n > 0 && n == count {
		arr := make([]interface{}, n)
		for i := 1; i <= n; i++ {
			arr[i-1] = toGoValue(t.RawGetInt(i), visited)
		}
		return arr
	}

	m := make(map[string]interface{}, count)
	t.ForEach(func(k, v lua.LValue) {
		m[keyString(k)] = toGoValue(v, visited)
	})
	return m
}

func keyString(k lua.LValue) string {
	if n, ok := k.(lua.LNumber); ok {
		return fmt.Sprintf("%v", float64(n))
	}
	return k.String()
}

// argsFromTable converts an action argument table to a map.
func argsFromTable(t *lua.LTable) map[string]interface{} {
	if t == nil {
		return nil
	}
	args := make(map[string]interface{})
	visited := map[*lua.LTable]bool{t: true}
	t.ForEach(func(k, v lua.LValue) {
		args[keyString(k)] = toGoValue(v, visited)
	})
	return args
}

// selectionToTable converts a selection to {anchor=, head=}.
func selectionToTable(L *lua.LState, sel cursor.Selection) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("anchor", lua.LNumber(sel.Anchor))
	t.RawSetString("head", lua.LNumber(sel.Head))
	if sel.HasXPos() {
		t.RawSetString("xpos", lua.LNumber(sel.XPos))
	}
	return t
}

// tableToSelection reads {anchor=, head=, xpos=} or {a, b}. A missing head
// makes an empty selection at anchor; a missing xpos leaves no column hint.
func tableToSelection(t *lua.LTable) (cursor.Selection, error) {
	anchor, ok := offsetField(t, "anchor", 1)
	if !ok {
		return cursor.Selection{}, fmt.Errorf("selection needs an anchor")
	}
	head, ok := offsetField(t, "head", 2)
	if !ok {
		head = anchor
	}
	if anchor < 0 || head < 0 {
		return cursor.Selection{}, fmt.Errorf("offsets must be non-negative")
	}

	xpos := cursor.NoXPos
	switch v := t.RawGetString("xpos").(type) {
	case *lua.LNilType:
	case lua.LNumber:
		if v < 0 {
			return cursor.Selection{}, fmt.Errorf("xpos must be non-negative")
		}
		xpos = float64(v)
	default:
		return cursor.Selection{}, fmt.Errorf("xpos must be a number")
	}
	return cursor.NewSelectionWithXPos(anchor, head, xpos), nil
}

func offsetField(t *lua.LTable, name string, index int) (cursor.Offset, bool) {
	v := t.RawGetString(name)
	if v == lua.LNil {
		v = t.RawGetInt(index)
	}
	n, ok := v.(lua.LNumber)
	if !ok {
		return 0, false
	}
	return cursor.Offset(n), true
}
