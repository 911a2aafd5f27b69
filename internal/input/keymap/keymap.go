package keymap

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/selkit/internal/input"
	"github.com/dshills/selkit/internal/input/key"
)

// Binding represents a single key-to-action mapping.
type Binding struct {
	// Key is the canonical key specification.
	Key string

	// Action is the command to execute, e.g. "selection.expand".
	Action string

	// Args are fixed arguments for the action.
	Args map[string]any
}

// ToAction builds the dispatcher action for this binding.
func (b Binding) ToAction() input.Action {
	return input.NewAction(b.Action).WithArgs(b.Args).WithSource(input.SourceKeyboard)
}

// Keymap is a set of bindings. It is safe for concurrent use.
type Keymap struct {
	mu       sync.RWMutex
	bindings map[string]Binding
}

// New creates an empty keymap.
func New() *Keymap {
	return &Keymap{bindings: make(map[string]Binding)}
}

// Add binds spec to action. An empty action removes the binding.
func (k *Keymap) Add(spec, action string, args map[string]any) error {
	canon, err := key.NormalizeSpec(spec)
	if err != nil {
		return fmt.Errorf("binding %q: %w", spec, err)
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	if action == "" {
		delete(k.bindings, canon)
		return nil
	}
	k.bindings[canon] = Binding{Key: canon, Action: action, Args: args}
	return nil
}

// Lookup returns the binding for a key event.
func (k *Keymap) Lookup(ev key.Event) (Binding, bool) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	b, ok := k.bindings[ev.Spec()]
	return b, ok
}

// Len returns the number of bindings.
func (k *Keymap) Len() int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.bindings)
}

// Bindings returns all bindings sorted by action, then key.
func (k *Keymap) Bindings() []Binding {
	k.mu.RLock()
	defer k.mu.RUnlock()

	result := make([]Binding, 0, len(k.bindings))
	for _, b := range k.bindings {
		result = append(result, b)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Action != result[j].Action {
			return result[i].Action < result[j].Action
		}
		return result[i].Key < result[j].Key
	})
	return result
}
