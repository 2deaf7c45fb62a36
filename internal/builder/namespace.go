package builder

import (
	"context"
	"strings"

	"github.com/vk/expconf/internal/ctxlog"
	"github.com/vk/expconf/internal/registry"
)

// Namespace is one resolution source for reference scalars. Resolve returns
// found == false when the key has no entry, which lets the chain fall
// through to the next namespace or, ultimately, to scalar passthrough. A
// non-nil error aborts the build (a namespace may have to run a nested
// build to answer, and that build can fail).
type Namespace interface {
	Name() string
	Resolve(ctx context.Context, key string) (value any, found bool, err error)
}

// MapNamespace is a Namespace over a fixed map, used for the externally
// supplied substitution variables.
type MapNamespace struct {
	name   string
	values map[string]any
}

// NewMapNamespace creates a MapNamespace. A nil values map is a valid,
// always-empty namespace.
func NewMapNamespace(name string, values map[string]any) *MapNamespace {
	return &MapNamespace{name: name, values: values}
}

func (m *MapNamespace) Name() string { return m.name }

func (m *MapNamespace) Resolve(_ context.Context, key string) (any, bool, error) {
	value, ok := m.values[key]
	return value, ok, nil
}

// RegistryNamespace exposes a registry as a reference namespace, so a
// `$Alias` scalar hands the registered entity itself to the enclosing
// node, e.g. to pass a constructor as an argument.
type RegistryNamespace struct {
	registry *registry.Registry
}

// NewRegistryNamespace creates a RegistryNamespace over reg.
func NewRegistryNamespace(reg *registry.Registry) *RegistryNamespace {
	return &RegistryNamespace{registry: reg}
}

func (rn *RegistryNamespace) Name() string { return "registry" }

func (rn *RegistryNamespace) Resolve(_ context.Context, key string) (any, bool, error) {
	entity, err := rn.registry.Lookup(key)
	if err != nil {
		return nil, false, nil
	}
	return entity, true, nil
}

// referenceInstantiator accepts string scalars starting with the reference
// sentinel and resolves the remainder in its bound namespace. One instance
// per namespace sits in the chain, so namespace priority is simply chain
// order.
type referenceInstantiator struct {
	namespace Namespace
}

func (ri *referenceInstantiator) Instantiate(ctx context.Context, _ *Builder, node any, path string) (any, bool, error) {
	scalar, ok := node.(string)
	if !ok || !strings.HasPrefix(scalar, RefPrefix) {
		return nil, false, nil
	}
	key := strings.TrimPrefix(scalar, RefPrefix)

	value, found, err := ri.namespace.Resolve(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}

	ctxlog.FromContext(ctx).Debug("Instantiating as a reference.",
		"path", path, "key", key, "namespace", ri.namespace.Name())
	return value, true, nil
}
