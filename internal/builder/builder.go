package builder

import (
	"context"

	"github.com/vk/expconf/internal/ctxlog"
	"github.com/vk/expconf/internal/registry"
)

const (
	// TypeKey is the reserved mapping key naming the registry alias to
	// invoke when a mapping node is built as a constructor call.
	TypeKey = "_name"

	// RefPrefix is the sentinel marking a string scalar as a reference to
	// be resolved against a namespace instead of used literally. There is
	// no escaping mechanism for literal strings starting with it; that is
	// a documented limitation of the document format.
	RefPrefix = "$"
)

// Instantiator is one strategy in the builder's chain. Instantiate returns
// ok == false to decline a node it cannot handle, which is a control signal
// for chain fallthrough, never an error. A non-nil error aborts the whole
// build immediately.
type Instantiator interface {
	Instantiate(ctx context.Context, b *Builder, node any, path string) (value any, ok bool, err error)
}

// Builder dispatches a document node to the first instantiator in its chain
// that accepts it.
type Builder struct {
	chain []Instantiator
}

// New wires the instantiator chain in its fixed order: constructor calls,
// plain mappings, sequences, then one reference instantiator per namespace
// in the priority order given.
func New(reg *registry.Registry, namespaces ...Namespace) *Builder {
	chain := []Instantiator{
		&callableInstantiator{registry: reg},
		&dictInstantiator{},
		&listInstantiator{},
	}
	for _, ns := range namespaces {
		chain = append(chain, &referenceInstantiator{namespace: ns})
	}
	return &Builder{chain: chain}
}

// Instantiate builds node into a value. The path is a dotted/indexed
// location inside the document (`config.list.2` style) used only for
// diagnostics and error attribution.
func (b *Builder) Instantiate(ctx context.Context, node any, path string) (any, error) {
	for _, ins := range b.chain {
		value, ok, err := ins.Instantiate(ctx, b, node, path)
		if err != nil {
			return nil, err
		}
		if ok {
			return value, nil
		}
	}

	ctxlog.FromContext(ctx).Debug("Instantiating as a plain scalar.", "path", path, "value", node)
	return node, nil
}
