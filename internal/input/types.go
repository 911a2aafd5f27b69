package input

// ActionSource indicates the origin of an action.
type ActionSource uint8

const (
	// SourceKeyboard indicates the action originated from keyboard input.
	SourceKeyboard ActionSource = iota
	// SourcePalette indicates the action originated from an input panel.
	SourcePalette
	// SourcePlugin indicates the action originated from a script.
	SourcePlugin
	// SourceAPI indicates the action originated from an API call.
	SourceAPI
)

// String returns a string representation of the action source.
func (s ActionSource) String() string {
	switch s {
	case SourceKeyboard:
		return "keyboard"
	case SourcePalette:
		return "palette"
	case SourcePlugin:
		return "plugin"
	case SourceAPI:
		return "api"
	default:
		return "unknown"
	}
}

// ActionArgs holds arguments for an action.
type ActionArgs struct {
	// Text for commands taking a single text argument.
	Text string

	// Extra holds named arguments.
	Extra map[string]interface{}
}

// Get retrieves a value from Extra.
func (a ActionArgs) Get(key string) (interface{}, bool) {
	if a.Extra == nil {
		return nil, false
	}
	v, ok := a.Extra[key]
	return v, ok
}

// Has reports whether key was supplied.
func (a ActionArgs) Has(key string) bool {
	_, ok := a.Get(key)
	return ok
}

// GetString retrieves a string value from Extra.
func (a ActionArgs) GetString(key string) string {
	s, _ := a.GetStringOK(key)
	return s
}

// GetStringOK retrieves a string value and whether it was present as a string.
func (a ActionArgs) GetStringOK(key string) (string, bool) {
	if v, ok := a.Get(key); ok {
		if s, ok := v.(string); ok {
			return s, true
		}
	}
	return "", false
}

// GetInt retrieves an int value from Extra.
func (a ActionArgs) GetInt(key string) int {
	if v, ok := a.Get(key); ok {
		switch n := v.(type) {
		case int:
			return n
		case int64:
			return int(n)
		case float64:
			return int(n)
		}
	}
	return 0
}

// GetBool retrieves a bool value from Extra.
func (a ActionArgs) GetBool(key string) bool {
	return a.GetBoolDefault(key, false)
}

// GetBoolDefault retrieves a bool value, or def when absent or not a bool.
func (a ActionArgs) GetBoolDefault(key string, def bool) bool {
	if v, ok := a.Get(key); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// Action represents a command to be executed by the dispatcher.
type Action struct {
	// Name is the command identifier (e.g., "selection.expand").
	Name string

	// Args contains command-specific arguments.
	Args ActionArgs

	// Source indicates where this action originated.
	Source ActionSource

	// Count is the repeat count.
	Count int
}

// NewAction creates an action with no arguments.
func NewAction(name string) Action {
	return Action{Name: name}
}

// WithArg returns a copy of the action with a named argument set.
func (a Action) WithArg(key string, value interface{}) Action {
	extra := make(map[string]interface{}, len(a.Args.Extra)+1)
	for k, v := range a.Args.Extra {
		extra[k] = v
	}
	extra[key] = value
	a.Args.Extra = extra
	return a
}

// WithArgs returns a copy of the action with all args merged in.
func (a Action) WithArgs(args map[string]interface{}) Action {
	for k, v := range args {
		a = a.WithArg(k, v)
	}
	return a
}

// WithSource returns a copy of the action with the specified source.
func (a Action) WithSource(source ActionSource) Action {
	a.Source = source
	return a
}

// WithCount returns a copy of the action with the specified count.
func (a Action) WithCount(count int) Action {
	a.Count = count
	return a
}

// Namespace returns the prefix before the first dot, or "" if there is none.
func (a Action) Namespace() string {
	for i := 0; i < len(a.Name); i++ {
		if a.Name[i] == '.' {
			return a.Name[:i]
		}
	}
	return ""
}
