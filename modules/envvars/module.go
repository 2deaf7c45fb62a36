// Package envvars registers a constructible view of the process
// environment, optionally filtered by a variable-name prefix.
package envvars

import (
	"context"
	"os"
	"strings"

	"github.com/vk/expconf/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for the env vars constructor.
type Input struct {
	Prefix string `mapstructure:"prefix"`
}

// CollectEnvVars is the handler behind the "EnvVars" alias.
func CollectEnvVars(_ context.Context, input *Input) (map[string]string, error) {
	envMap := make(map[string]string)
	for _, e := range os.Environ() {
		pair := strings.SplitN(e, "=", 2)
		if len(pair) != 2 {
			continue
		}
		if input.Prefix != "" && !strings.HasPrefix(pair[0], input.Prefix) {
			continue
		}
		envMap[pair[0]] = pair[1]
	}
	return envMap, nil
}

// Register registers the constructor with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.MustRegister("EnvVars", &registry.Factory{
		NewInput: func() any { return new(Input) },
		Fn:       CollectEnvVars,
	})
}
