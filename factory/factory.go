// Package factory is the instantiation collaborator's contract: it turns the
// opaque target identifiers stored in a composed configuration into component
// instances. The configuration core never invokes targets itself; it only
// validates that the identifier is present and hands it here.
package factory

import (
	"fmt"
	"sync"

	"github.com/mfoss/runconf/schema"
)

// Constructor builds a component instance from its resolved configuration
// section.
type Constructor func(cfg schema.Document) (any, error)

// Registry maps target identifiers to constructors. Like the schema
// registry, it is populated once at startup; duplicate registration is an
// error.
type Registry struct {
	mu           sync.RWMutex
	constructors map[string]Constructor
}

// NewRegistry returns an empty constructor registry.
func NewRegistry() *Registry {
	return &Registry{constructors: make(map[string]Constructor)}
}

// Register adds a constructor for a target identifier.
func (r *Registry) Register(target string, fn Constructor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.constructors == nil {
		r.constructors = make(map[string]Constructor)
	}
	if _, ok := r.constructors[target]; ok {
		return fmt.Errorf("factory: target %q already registered", target)
	}
	r.constructors[target] = fn
	return nil
}

// Construct builds an instance for the target identifier using the given
// configuration section.
func (r *Registry) Construct(target string, cfg schema.Document) (any, error) {
	r.mu.RLock()
	fn, ok := r.constructors[target]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("factory: target %q not registered", target)
	}
	return fn(cfg)
}

// MustConstruct is Construct but panics on error. Use in startup wiring
// where a missing target is a programming defect.
func (r *Registry) MustConstruct(target string, cfg schema.Document) any {
	out, err := r.Construct(target, cfg)
	if err != nil {
		panic(err.Error())
	}
	return out
}

// Names returns all registered target identifiers (unordered).
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.constructors))
	for n := range r.constructors {
		names = append(names, n)
	}
	return names
}
