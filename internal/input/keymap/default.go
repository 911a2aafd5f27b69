package keymap

// Default returns the built-in terminal bindings.
func Default() *Keymap {
	k := New()
	for _, b := range defaultBindings {
		if err := k.Add(b.Key, b.Action, b.Args); err != nil {
			panic(err)
		}
	}
	return k
}

var defaultBindings = []Binding{
	{Key: "ctrl+q", Action: "app.quit"},
	{Key: "ctrl+p", Action: "app.palette"},

	{Key: "ctrl+a", Action: "edit.selectAll"},
	{Key: "ctrl+c", Action: "edit.copy"},
	{Key: "left", Action: "edit.move", Args: map[string]any{"by": -1}},
	{Key: "right", Action: "edit.move", Args: map[string]any{"by": 1}},
	{Key: "up", Action: "edit.moveLine", Args: map[string]any{"by": -1}},
	{Key: "down", Action: "edit.moveLine", Args: map[string]any{"by": 1}},
	{Key: "shift+left", Action: "edit.move", Args: map[string]any{"by": -1, "extend": true}},
	{Key: "shift+right", Action: "edit.move", Args: map[string]any{"by": 1, "extend": true}},
	{Key: "shift+up", Action: "edit.moveLine", Args: map[string]any{"by": -1, "extend": true}},
	{Key: "shift+down", Action: "edit.moveLine", Args: map[string]any{"by": 1, "extend": true}},
	{Key: "ctrl+down", Action: "edit.addCursorBelow"},
	{Key: "ctrl+z", Action: "edit.softUndo"},
	{Key: "ctrl+y", Action: "edit.softRedo"},

	{Key: "pageup", Action: "view.pageUp"},
	{Key: "pagedown", Action: "view.pageDown"},

	{Key: "alt+right", Action: "selection.expand", Args: map[string]any{"expand": true, "right": true}},
	{Key: "alt+left", Action: "selection.expand", Args: map[string]any{"expand": true, "left": true}},
	{Key: "alt+shift+right", Action: "selection.expand", Args: map[string]any{"expand": false, "right": true}},
	{Key: "alt+shift+left", Action: "selection.expand", Args: map[string]any{"expand": false, "left": true}},
	{Key: "ctrl+r", Action: "selection.reverse"},
	{Key: "ctrl+n", Action: "selection.normalize"},
	{Key: "ctrl+t", Action: "selection.normalizeOrReverse"},
	{Key: "ctrl+l", Action: "selection.singleLast"},
	{Key: "escape", Action: "selection.single"},
	{Key: "ctrl+s", Action: "selection.split"},
	{Key: "f3", Action: "selection.navigate", Args: map[string]any{"forward": true}},
	{Key: "shift+f3", Action: "selection.navigate", Args: map[string]any{"forward": false}},
}
