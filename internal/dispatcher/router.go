package dispatcher

import (
	"sort"
	"strings"
	"sync"

	"github.com/dshills/selkit/internal/dispatcher/handler"
)

// Router routes actions to handlers using namespace prefixes.
// It provides O(1) lookup for namespaced actions like "selection.expand".
type Router struct {
	mu         sync.RWMutex
	namespaces map[string]handler.NamespaceHandler
}

// NewRouter creates a new action router.
func NewRouter() *Router {
	return &Router{
		namespaces: make(map[string]handler.NamespaceHandler),
	}
}

// RegisterNamespace registers a handler for all actions in its namespace.
func (r *Router) RegisterNamespace(h handler.NamespaceHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.namespaces[h.Namespace()] = h
}

// Route finds the handler for an action, or nil.
func (r *Router) Route(actionName string) handler.Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	namespace := extractNamespace(actionName)
	if namespace == "" {
		return nil
	}
	if h, ok := r.namespaces[namespace]; ok && h.CanHandle(actionName) {
		return handler.NewNamespaceAdapter(h)
	}
	return nil
}

// Namespaces returns the registered namespaces, sorted.
func (r *Router) Namespaces() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.namespaces))
	for ns := range r.namespaces {
		names = append(names, ns)
	}
	sort.Strings(names)
	return names
}

// extractNamespace returns the part of name before the first dot.
func extractNamespace(name string) string {
	idx := strings.IndexByte(name, '.')
	if idx <= 0 {
		return ""
	}
	return name[:idx]
}
