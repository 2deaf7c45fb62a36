package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/vk/expconf/internal/ctxlog"
)

// Module is the interface plugin packages implement to register their
// constructors with an application's registry at startup.
type Module interface {
	Register(r *Registry)
}

// Registry holds the constructible entities available to the object builder,
// keyed by alias. Registration is guarded so several plugin packages can
// register during bootstrap; entries live for the registry's lifetime and
// cannot be removed or replaced.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Constructor
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		entries: make(map[string]Constructor),
	}
}

// Register adds entity under alias and returns the entity unchanged so a
// registration can be chained into a variable assignment. The alias must be
// non-empty; registering an alias twice fails with DuplicateAliasError and
// leaves the existing entry untouched.
func (r *Registry) Register(alias string, entity Constructor) (Constructor, error) {
	if alias == "" {
		return nil, fmt.Errorf("registry: alias must not be empty")
	}
	if entity == nil {
		return nil, fmt.Errorf("registry: entity for alias %q must not be nil", alias)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[alias]; exists {
		return nil, &DuplicateAliasError{Alias: alias}
	}
	r.entries[alias] = entity
	return entity, nil
}

// MustRegister is Register for bootstrap paths where a collision is a
// programmer error. It panics instead of returning an error.
func (r *Registry) MustRegister(alias string, entity Constructor) Constructor {
	c, err := r.Register(alias, entity)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup returns the entity registered under alias, or UnknownPluginError
// if the alias has no entry.
func (r *Registry) Lookup(alias string) (Constructor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entity, ok := r.entries[alias]
	if !ok {
		return nil, &UnknownPluginError{Alias: alias}
	}
	return entity, nil
}

// Contains reports whether alias has a registry entry.
func (r *Registry) Contains(alias string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.entries[alias]
	return ok
}

// Aliases returns a sorted snapshot of all registered aliases, for
// diagnostics and CLI listings.
func (r *Registry) Aliases() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	aliases := make([]string, 0, len(r.entries))
	for alias := range r.entries {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// Len returns the number of registered entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}

// Bootstrap registers every module into r, logging each one.
func (r *Registry) Bootstrap(ctx context.Context, modules ...Module) {
	logger := ctxlog.FromContext(ctx)
	for _, mod := range modules {
		mod.Register(r)
	}
	logger.Debug("Registry bootstrap complete.", "modules", len(modules), "entries", r.Len())
}
