// Package printer registers a constructible that renders its value into
// the log and yields the rendered string, useful for inspecting what a
// document subtree built to.
package printer

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/vk/expconf/internal/ctxlog"
	"github.com/vk/expconf/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for the print constructor.
type Input struct {
	Value any `mapstructure:"value"`
}

// RenderValue is the handler behind the "Print" alias.
func RenderValue(ctx context.Context, input *Input) (string, error) {
	rendered := render(input.Value)
	ctxlog.FromContext(ctx).Info("Print.", "value", rendered)
	return rendered, nil
}

func render(value any) string {
	mapping, ok := value.(map[string]any)
	if !ok {
		return fmt.Sprintf("%v", value)
	}

	// Sort keys for consistent output.
	keys := make([]string, 0, len(mapping))
	for k := range mapping {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, mapping[k]))
	}
	return strings.Join(parts, " ")
}

// Register registers the constructor with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.MustRegister("Print", &registry.Factory{
		NewInput: func() any { return new(Input) },
		Fn:       RenderValue,
	})
}
