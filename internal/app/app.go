// Package app wires the application together: logger, registry, document
// loading and the experiment build, leaving the CLI package to deal with
// flags and the builder packages to deal with semantics.
package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/vk/expconf/internal/ctxlog"
	"github.com/vk/expconf/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	config   *Config
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
// Registration collisions between modules are programmer errors and panic;
// main recovers them into a clean exit.
func NewApp(outW io.Writer, appConfig *Config, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	reg.Bootstrap(ctxlog.WithLogger(context.Background(), logger), modules...)

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		config:   appConfig,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
