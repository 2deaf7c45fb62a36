package builder

import (
	"context"
	"sort"
	"strconv"

	"github.com/vk/expconf/internal/ctxlog"
)

// dictInstantiator builds plain mapping nodes (no type key) by building
// every value and returning a fresh mapping with identical keys.
type dictInstantiator struct{}

func (di *dictInstantiator) Instantiate(ctx context.Context, b *Builder, node any, path string) (any, bool, error) {
	mapping, ok := node.(map[string]any)
	if !ok {
		return nil, false, nil
	}
	if _, hasTypeKey := mapping[TypeKey]; hasTypeKey {
		return nil, false, nil
	}

	ctxlog.FromContext(ctx).Debug("Instantiating as a mapping.", "path", path)

	keys := make([]string, 0, len(mapping))
	for key := range mapping {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	built := make(map[string]any, len(mapping))
	for _, key := range keys {
		value, err := b.Instantiate(ctx, mapping[key], path+"."+key)
		if err != nil {
			return nil, false, err
		}
		built[key] = value
	}
	return built, true, nil
}

// listInstantiator builds sequence nodes by building every element in
// order and returning a fresh slice.
type listInstantiator struct{}

func (li *listInstantiator) Instantiate(ctx context.Context, b *Builder, node any, path string) (any, bool, error) {
	sequence, ok := node.([]any)
	if !ok {
		return nil, false, nil
	}

	ctxlog.FromContext(ctx).Debug("Instantiating as a sequence.", "path", path)

	built := make([]any, len(sequence))
	for i, element := range sequence {
		value, err := b.Instantiate(ctx, element, path+"."+strconv.Itoa(i))
		if err != nil {
			return nil, false, err
		}
		built[i] = value
	}
	return built, true, nil
}
