// Package experiment drives the construction of a live object graph from a
// declarative configuration document. Each top-level key is built on demand
// through the instantiator chain and memoized, and the experiment's own
// store doubles as the lowest-priority reference namespace so one key's
// value can be reused by name elsewhere in the document.
package experiment

import (
	"context"
	"iter"
	"slices"
	"sort"

	"github.com/vk/expconf/internal/builder"
	"github.com/vk/expconf/internal/ctxlog"
	"github.com/vk/expconf/internal/loader"
	"github.com/vk/expconf/internal/registry"
)

// VarsNamespaceName identifies the substitution-variable namespace in logs.
const VarsNamespaceName = "environment"

// Experiment owns a loaded configuration document and the lazily populated
// store of values built from it.
//
// An Experiment is single-owner: reads mutate the store and the in-progress
// bookkeeping, so an instance must not be shared across goroutines.
type Experiment struct {
	document map[string]any
	builder  *builder.Builder

	store      map[string]any
	built      []string // completion order, drives Keys/Values/All
	inProgress map[string]struct{}
	stack      []string // in-progress keys in entry order, for cycle reports
}

// New loads the document from source (an in-memory map or a file path, see
// the loader package) and wires an object builder against the three
// reference namespaces, in priority order: the substitution variables, the
// registry, and the experiment's own store. Nothing is built yet; use
// Build or BuildAll.
func New(ctx context.Context, reg *registry.Registry, source any, vars map[string]any) (*Experiment, error) {
	document, err := loader.Load(ctx, source)
	if err != nil {
		return nil, err
	}

	e := &Experiment{
		document:   document,
		store:      make(map[string]any),
		inProgress: make(map[string]struct{}),
	}
	e.builder = builder.New(reg,
		builder.NewMapNamespace(VarsNamespaceName, vars),
		builder.NewRegistryNamespace(reg),
		e,
	)
	return e, nil
}

// Build returns the value for key, building it on first access and caching
// the result. It fails with UnknownKeyError if the document has no such
// key, and with CyclicBuildError if the key is already being built, i.e.
// it transitively requires its own value. A failed build releases its
// in-progress mark so a later call can retry instead of reporting a false
// cycle.
func (e *Experiment) Build(ctx context.Context, key string) (any, error) {
	if value, ok := e.store[key]; ok {
		return value, nil
	}
	node, ok := e.document[key]
	if !ok {
		return nil, &UnknownKeyError{Key: key}
	}
	if _, building := e.inProgress[key]; building {
		chain := append(slices.Clone(e.stack), key)
		return nil, &CyclicBuildError{Key: key, Chain: chain}
	}

	e.inProgress[key] = struct{}{}
	e.stack = append(e.stack, key)
	defer func() {
		delete(e.inProgress, key)
		e.stack = e.stack[:len(e.stack)-1]
	}()

	ctxlog.FromContext(ctx).Debug("Building experiment key.", "key", key)

	value, err := e.builder.Instantiate(ctx, node, key)
	if err != nil {
		return nil, err
	}

	e.store[key] = value
	e.built = append(e.built, key)
	return value, nil
}

// BuildAll builds every top-level key the document declares, skipping keys
// an earlier build already populated transitively through a self reference.
// Keys are visited in sorted order.
func (e *Experiment) BuildAll(ctx context.Context) error {
	keys := make([]string, 0, len(e.document))
	for key := range e.document {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if _, ok := e.store[key]; ok {
			continue
		}
		if _, err := e.Build(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the already built value for key. It never triggers a build:
// a key that is declared but not yet built reports ok == false.
func (e *Experiment) Get(key string) (any, bool) {
	value, ok := e.store[key]
	return value, ok
}

// Set always fails with ErrReadOnly: the store only grows through builds.
func (e *Experiment) Set(string, any) error {
	return ErrReadOnly
}

// Keys returns the built keys in build-completion order. Keys the document
// declares but nothing has built yet are absent.
func (e *Experiment) Keys() []string {
	return slices.Clone(e.built)
}

// Values returns the built values in build-completion order.
func (e *Experiment) Values() []any {
	values := make([]any, len(e.built))
	for i, key := range e.built {
		values[i] = e.store[key]
	}
	return values
}

// Len returns the number of built keys, not the number of declared ones.
func (e *Experiment) Len() int {
	return len(e.built)
}

// All iterates over the built key/value pairs in build-completion order.
func (e *Experiment) All() iter.Seq2[string, any] {
	return func(yield func(string, any) bool) {
		for _, key := range e.built {
			if !yield(key, e.store[key]) {
				return
			}
		}
	}
}

// DocumentKeys returns the sorted top-level keys the document declares,
// built or not, for diagnostics.
func (e *Experiment) DocumentKeys() []string {
	keys := make([]string, 0, len(e.document))
	for key := range e.document {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Name implements builder.Namespace.
func (e *Experiment) Name() string { return "experiment" }

// Resolve implements builder.Namespace: a reference into the experiment
// namespace resolves to an already built sibling value, building it on
// demand when the document declares it. Keys the document does not declare
// decline, letting the reference fall through to scalar passthrough.
func (e *Experiment) Resolve(ctx context.Context, key string) (any, bool, error) {
	if value, ok := e.store[key]; ok {
		return value, true, nil
	}
	if _, ok := e.document[key]; !ok {
		return nil, false, nil
	}
	value, err := e.Build(ctx, key)
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}
