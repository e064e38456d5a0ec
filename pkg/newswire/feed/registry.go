package feed

import (
	"fmt"
	"sync"
)

// Registry maps parser names to parsers. Registration replaces any
// previous entry under the same name, so re-registering the same
// parser is harmless.
type Registry struct {
	mu      sync.RWMutex
	parsers map[string]Parser
	order   []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds or replaces a parser under its own name.
func (r *Registry) Register(p Parser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := p.Name()
	if _, exists := r.parsers[name]; !exists {
		r.order = append(r.order, name)
	}
	r.parsers[name] = p
}

// Get returns the parser registered under name.
func (r *Registry) Get(name string) (Parser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.parsers[name]
	if !ok {
		return nil, fmt.Errorf("no parser registered as %q", name)
	}
	return p, nil
}

// Names returns the registered parser names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Find returns the first registered parser, in registration order,
// whose CanParse accepts the payload.
func (r *Registry) Find(p Payload) (Parser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, name := range r.order {
		if parser := r.parsers[name]; parser.CanParse(p) {
			return parser, nil
		}
	}
	return nil, fmt.Errorf("no registered parser accepts this payload")
}
