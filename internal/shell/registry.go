package shell

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry maps command names and aliases to handlers. Lookups are
// case-insensitive.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	primary  map[string]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
		primary:  make(map[string]Handler),
	}
}

// Register adds a handler under its name and aliases. Registering a name
// twice is a programming error and panics.
func (r *Registry) Register(h Handler) {
	spec := h.Spec()
	names := append([]string{spec.Name}, spec.Aliases...)

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, n := range names {
		key := strings.ToUpper(n)
		if _, exists := r.handlers[key]; exists {
			panic(fmt.Sprintf("shell: command %s registered twice", key))
		}
		r.handlers[key] = h
	}
	r.primary[strings.ToUpper(spec.Name)] = h
}

// Lookup finds the handler for a verb.
func (r *Registry) Lookup(verb string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[strings.ToUpper(verb)]
	return h, ok
}

// Names returns every registered name and alias, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.handlers))
	for n := range r.handlers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Specs returns the spec of every handler once, sorted by name.
func (r *Registry) Specs() []Spec {
	r.mu.RLock()
	defer r.mu.RUnlock()
	specs := make([]Spec, 0, len(r.primary))
	for _, h := range r.primary {
		specs = append(specs, h.Spec())
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].Name < specs[j].Name })
	return specs
}
