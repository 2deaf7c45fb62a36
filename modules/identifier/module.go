// Package identifier registers a constructible unique-identifier source,
// so a document can stamp the objects it builds with fresh run IDs.
package identifier

import (
	"context"

	"github.com/google/uuid"

	"github.com/vk/expconf/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for the identifier constructor.
type Input struct {
	Prefix string `mapstructure:"prefix"`
}

// NewID is the handler behind the "NewID" alias. It returns a random
// UUID string, prefixed when a prefix is given.
func NewID(_ context.Context, input *Input) (string, error) {
	id := uuid.NewString()
	if input.Prefix != "" {
		return input.Prefix + "-" + id, nil
	}
	return id, nil
}

// Register registers the constructor with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.MustRegister("NewID", &registry.Factory{
		NewInput: func() any { return new(Input) },
		Fn:       NewID,
	})
}
