package core

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownPlugin is returned when a plugin name has no registered
// constructor. Callers must treat it as fatal before launching workers.
var ErrUnknownPlugin = errors.New("unknown plugin")

// Registry maps plugin names to zero-argument constructors. Registration
// happens from package init functions; lookups are concurrency-safe.
type Registry[T any] struct {
	mu    sync.RWMutex
	ctors map[string]func() T
}

// NewRegistry creates an empty registry
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{ctors: make(map[string]func() T)}
}

// Register adds a named constructor. Registering the same name twice panics:
// it is a programming error, not a runtime condition.
func (r *Registry[T]) Register(name string, ctor func() T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ctors[name]; ok {
		panic(fmt.Sprintf("plugin %q registered twice", name))
	}
	r.ctors[name] = ctor
}

// Create constructs the plugin registered under name, or returns an error
// wrapping ErrUnknownPlugin.
func (r *Registry[T]) Create(name string) (T, error) {
	r.mu.RLock()
	ctor, ok := r.ctors[name]
	r.mu.RUnlock()
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %q", ErrUnknownPlugin, name)
	}
	return ctor(), nil
}

// Constructor returns the registered constructor itself, for callers that
// need to build many instances (one sampler per render task).
func (r *Registry[T]) Constructor(name string) (func() T, error) {
	r.mu.RLock()
	ctor, ok := r.ctors[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPlugin, name)
	}
	return ctor, nil
}

// Names returns all registered plugin names, sorted
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.ctors))
	for name := range r.ctors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Package-level registries for the two by-name pluggable collaborators.
var (
	integrators = NewRegistry[Integrator]()
	samplers    = NewRegistry[Sampler]()
)

// RegisterIntegrator registers an integrator constructor under name
func RegisterIntegrator(name string, ctor func() Integrator) {
	integrators.Register(name, ctor)
}

// NewIntegrator constructs the integrator registered under name
func NewIntegrator(name string) (Integrator, error) {
	return integrators.Create(name)
}

// RegisterSampler registers a sampler constructor under name
func RegisterSampler(name string, ctor func() Sampler) {
	samplers.Register(name, ctor)
}

// SamplerConstructor returns the constructor for the sampler registered
// under name; workers use it to build one sampler per task.
func SamplerConstructor(name string) (func() Sampler, error) {
	return samplers.Constructor(name)
}

// IntegratorNames returns the names of all registered integrators
func IntegratorNames() []string { return integrators.Names() }

// SamplerNames returns the names of all registered samplers
func SamplerNames() []string { return samplers.Names() }
