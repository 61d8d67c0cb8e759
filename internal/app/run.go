package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/lazyflow/internal/ctxlog"
	"github.com/specialistvlad/lazyflow/internal/graph"
	"github.com/specialistvlad/lazyflow/internal/metrics"
)

// Run compiles the loaded pipeline and executes it once.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	storage, err := graph.Build(ctx, a.model, a.registry, graph.WithSeed(a.config.Seed))
	if err != nil {
		return fmt.Errorf("failed to build graph: %w", err)
	}
	a.logger.Debug("Graph built.", "node_count", storage.Len())

	if storage.Len() > 0 {
		a.logger.Info("Starting execution.", "nodes", storage.Len(), "seed", a.config.Seed)
		if err := storage.Execute(ctx); err != nil {
			return fmt.Errorf("execution failed: %w", err)
		}
		a.logger.Info("Execution finished.", "values", len(storage.Nets()))
	} else {
		a.logger.Warn("No nodes found in pipeline, execution not required.")
	}

	if a.config.Metrics {
		if err := metrics.WriteText(a.outW); err != nil {
			return err
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
