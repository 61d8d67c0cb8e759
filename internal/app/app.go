package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/lazyflow/internal/config"
	"github.com/specialistvlad/lazyflow/internal/ctxlog"
	"github.com/specialistvlad/lazyflow/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	registry *registry.Registry
	model    *config.Model
}

// NewApp is the constructor for the main application. It loads the pipeline
// and the node libraries; with no libraries given, the built-in ones are
// used. Invalid configuration is fatal and panics.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, libs ...registry.Library) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, err := loader.Load(ctx, appConfig.PipelinePath)
	if err != nil {
		// A failure to load config is a fatal startup error.
		panic(fmt.Errorf("failed to load configuration: %w", err))
	}
	logger.Debug("Pipeline loaded and translated into unified model.", "nodes", len(model.Nodes))

	if len(libs) == 0 {
		libs = coreLibraries(outW, appConfig.Workers)
	}
	reg := registry.New()
	reg.Load(ctx, appConfig.LibraryRoot, libs...)
	logger.Debug("All node libraries registered.", "libraries", len(libs), "nodes", reg.Len())

	// Validate the integrity of the registry.
	if err := reg.Validate(ctx); err != nil {
		// This is a programmer error in a node library, so we panic.
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	return &App{
		outW:     outW,
		logger:   logger,
		config:   appConfig,
		registry: reg,
		model:    model,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Model returns the loaded pipeline. This is primarily for testing.
func (a *App) Model() *config.Model {
	return a.model
}
