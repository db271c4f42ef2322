package schema

import (
	"fmt"
	"sync"
)

// RootGroup is the reserved group for top-level schemas. Every composition
// starts from a schema registered under it.
const RootGroup = "_root_"

// Registry maps (group, variant name) to schema definitions. It is populated
// once at startup and read-only thereafter; registering the same key twice is
// an error. Safe for concurrent reads after registration finishes.
type Registry struct {
	mu      sync.RWMutex
	schemas map[registryKey]*Schema
}

type registryKey struct {
	group, name string
}

// NewRegistry returns an empty schema registry.
func NewRegistry() *Registry {
	return &Registry{schemas: make(map[registryKey]*Schema)}
}

// Register adds a schema variant under (group, name). Returns
// DuplicateVariantError if the key is already taken.
func (r *Registry) Register(group, name string, s *Schema) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.schemas == nil {
		r.schemas = make(map[registryKey]*Schema)
	}
	key := registryKey{group, name}
	if _, ok := r.schemas[key]; ok {
		return &DuplicateVariantError{Group: group, Name: name}
	}
	r.schemas[key] = s
	return nil
}

// RegisterRoot adds a top-level schema under the reserved root group.
func (r *Registry) RegisterRoot(name string, s *Schema) error {
	return r.Register(RootGroup, name, s)
}

// MustRegister is Register but panics on error. Use during startup wiring
// where a duplicate registration is a programming defect.
func (r *Registry) MustRegister(group, name string, s *Schema) {
	if err := r.Register(group, name, s); err != nil {
		panic(fmt.Sprintf("schema: %v", err))
	}
}

// Lookup returns the schema registered under (group, name), or
// UnknownVariantError if absent.
func (r *Registry) Lookup(group, name string) (*Schema, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.schemas[registryKey{group, name}]
	if !ok {
		return nil, &UnknownVariantError{Group: group, Name: name}
	}
	return s, nil
}

// Names returns all variant names registered in group (unordered).
func (r *Registry) Names(group string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var names []string
	for k := range r.schemas {
		if k.group == group {
			names = append(names, k.name)
		}
	}
	return names
}
