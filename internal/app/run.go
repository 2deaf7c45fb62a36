package app

import (
	"context"
	"fmt"

	"github.com/vk/expconf/internal/ctxlog"
	"github.com/vk/expconf/internal/experiment"
)

// Run loads the experiment document, builds every top-level key and prints
// a summary of the built store.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	exp, err := experiment.New(ctx, a.registry, a.config.ExperimentPath, a.config.Vars)
	if err != nil {
		return fmt.Errorf("loading experiment: %w", err)
	}
	a.logger.Debug("Experiment document loaded.", "keys", len(exp.DocumentKeys()))

	if err := exp.BuildAll(ctx); err != nil {
		return fmt.Errorf("building experiment: %w", err)
	}
	a.logger.Info("Experiment built.", "keys", exp.Len())

	for _, key := range exp.DocumentKeys() {
		value, _ := exp.Get(key)
		fmt.Fprintf(a.outW, "%s = %T\n", key, value)
	}
	return nil
}
