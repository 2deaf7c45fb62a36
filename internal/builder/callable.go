package builder

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/vk/expconf/internal/ctxlog"
	"github.com/vk/expconf/internal/registry"
)

// callableInstantiator builds mapping nodes carrying the type key as
// constructor calls: the alias is resolved in the registry, every sibling
// key is built depth-first into a keyword argument, and the resolved entity
// is invoked with the result.
type callableInstantiator struct {
	registry *registry.Registry
}

func (ci *callableInstantiator) Instantiate(ctx context.Context, b *Builder, node any, path string) (any, bool, error) {
	mapping, ok := node.(map[string]any)
	if !ok {
		return nil, false, nil
	}
	rawAlias, ok := mapping[TypeKey]
	if !ok {
		return nil, false, nil
	}
	alias, ok := rawAlias.(string)
	if !ok {
		return nil, false, fmt.Errorf("%s: %s must be a string alias, got %T", path, TypeKey, rawAlias)
	}

	entity, err := ci.registry.Lookup(alias)
	if err != nil {
		return nil, false, err
	}

	ctxlog.FromContext(ctx).Debug("Instantiating as a constructor call.", "path", path, "alias", alias)

	args := make(map[string]any, len(mapping)-1)
	for _, key := range argumentKeys(mapping) {
		value, err := b.Instantiate(ctx, mapping[key], path+"."+key)
		if err != nil {
			return nil, false, err
		}
		args[key] = value
	}

	value, err := construct(ctx, entity, args)
	if err != nil {
		// An already attributed failure from a nested build keeps its
		// original path; everything else the entity raised gets wrapped.
		var instErr *InstantiationError
		var unknownErr *registry.UnknownPluginError
		if errors.As(err, &instErr) || errors.As(err, &unknownErr) {
			return nil, false, err
		}
		return nil, false, &InstantiationError{Path: path, Alias: alias, Err: err}
	}
	return value, true, nil
}

// construct invokes the entity, converting a panic inside it into an error
// so the failure carries the document path instead of unwinding the build.
func construct(ctx context.Context, entity registry.Constructor, args map[string]any) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return entity.Construct(ctx, args)
}

// argumentKeys returns the mapping's keys minus the type key, sorted so
// recursion order and error attribution stay deterministic.
func argumentKeys(mapping map[string]any) []string {
	keys := make([]string, 0, len(mapping))
	for key := range mapping {
		if key == TypeKey {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
