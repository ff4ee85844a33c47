package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/staticpipe/internal/builder"
	"github.com/specialistvlad/staticpipe/internal/config"
	"github.com/specialistvlad/staticpipe/internal/ctxlog"
	"github.com/specialistvlad/staticpipe/internal/recon"
	"github.com/specialistvlad/staticpipe/internal/registry"
	"github.com/specialistvlad/staticpipe/internal/render"
)

// App encapsulates the application's dependencies and configuration.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	loader   config.Loader
	config   *Config
}

// NewApp is the constructor for the main application. Results go to outW and
// logs to logW. Without modules the core modules are registered. A registry
// that fails validation is a programming error and panics.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All step modules registered.", "count", len(modules))

	if err := reg.Validate(ctx); err != nil {
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		loader:   loader,
		config:   cfg,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Resolve loads the configured descriptions and resolves them into a pipeline.
func (a *App) Resolve(ctx context.Context) (*recon.Pipeline, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	model, err := a.loader.Load(ctx, a.config.Paths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load description: %w", err)
	}
	a.logger.Debug("Description loaded.", "inputs", len(model.Inputs), "steps", len(model.Steps), "outputs", len(model.Outputs))

	p, err := builder.Plan(ctx, model, a.registry, recon.Options{Reserved: a.config.Reserved})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve pipeline: %w", err)
	}
	return p, nil
}

// Plan resolves the configured descriptions and writes the plan.
func (a *App) Plan(ctx context.Context) error {
	p, err := a.Resolve(ctx)
	if err != nil {
		return err
	}
	return render.Plan(a.outW, p.Plan(), a.config.Format)
}

// Kinds writes the registered step kinds.
func (a *App) Kinds() error {
	return render.Kinds(a.outW, a.registry.Kinds(), a.config.Format)
}
