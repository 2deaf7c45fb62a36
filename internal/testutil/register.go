// Package testutil provides shared registry fixtures for tests.
package testutil

import (
	"context"
	"fmt"

	"github.com/vk/expconf/internal/registry"
)

// SimpleModule is a test helper for creating a module that registers a
// single constructor under one alias.
type SimpleModule struct {
	Alias  string
	Entity registry.Constructor
}

// Register implements the registry.Module interface.
func (m *SimpleModule) Register(r *registry.Registry) {
	r.MustRegister(m.Alias, m.Entity)
}

// PairInput is the arguments struct for the "Pair" test constructor.
type PairInput struct {
	A int `mapstructure:"a"`
	B int `mapstructure:"b"`
}

// NewRegistry returns a registry pre-loaded with the fixtures most tests
// need:
//   - "Pair": a typed factory over PairInput with B defaulting to 2,
//     returning [a, b].
//   - "Echo": a plain func returning its raw argument map.
//   - "Boom": a plain func that always fails.
func NewRegistry() *registry.Registry {
	r := registry.New()

	r.MustRegister("Pair", &registry.Factory{
		NewInput: func() any { return &PairInput{B: 2} },
		Fn: func(_ context.Context, input *PairInput) ([]int, error) {
			return []int{input.A, input.B}, nil
		},
	})

	r.MustRegister("Echo", registry.Func(func(_ context.Context, args map[string]any) (any, error) {
		return args, nil
	}))

	r.MustRegister("Boom", registry.Func(func(_ context.Context, args map[string]any) (any, error) {
		return nil, fmt.Errorf("boom")
	}))

	return r
}
