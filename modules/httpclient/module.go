// Package httpclient registers a constructible HTTP client, so an
// experiment document can declare a shared, configured *http.Client and
// hand it to other entities by reference.
package httpclient

import (
	"context"
	"net/http"
	"time"

	"github.com/vk/expconf/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Input defines the arguments for constructing an HTTP client.
type Input struct {
	Timeout string `mapstructure:"timeout"`
}

// NewHTTPClient is the handler behind the "HttpClient" alias. It returns a
// live *http.Client with a pooled transport.
func NewHTTPClient(_ context.Context, input *Input) (*http.Client, error) {
	timeout := 30 * time.Second
	if input.Timeout != "" {
		parsed, err := time.ParseDuration(input.Timeout)
		if err != nil {
			return nil, err
		}
		timeout = parsed
	}

	client := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
	return client, nil
}

// Register registers the constructor with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.MustRegister("HttpClient", &registry.Factory{
		NewInput: func() any { return new(Input) },
		Fn:       NewHTTPClient,
	})
}
