package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vk/buildgrid/internal/config"
	"github.com/vk/buildgrid/internal/ctxlog"
	"github.com/vk/buildgrid/internal/metrics"
	"github.com/vk/buildgrid/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	runID    string
	registry *registry.Registry
	model    *config.Model
	promReg  *prometheus.Registry
	metrics  *metrics.Metrics

	statusServer *http.Server
	statusAddr   string
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger, registry and
// metrics. Configuration loading or validation failures are critical
// startup errors and panic; the caller recovers them into a clean exit.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, modules ...registry.Module) *App {
	runID := uuid.NewString()
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW).With("run_id", runID)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	// Load all build files into the format-agnostic model first.
	model, err := loader.Load(ctx, appConfig.RootPath)
	if err != nil {
		panic(fmt.Errorf("failed to load build configuration: %w", err))
	}
	logger.Debug("Build configuration loaded into unified model.", "target_count", len(model.Targets))

	// Create and populate the registry with Go runners.
	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All kind modules registered.", "count", len(modules))

	// Every kind used by a loaded target must have a runner. A mismatch is
	// a config/code parity error, so we panic.
	if err := reg.Validate(ctx, model); err != nil {
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	promReg := prometheus.NewRegistry()

	return &App{
		outW:     outW,
		logger:   logger,
		runID:    runID,
		registry: reg,
		model:    model,
		promReg:  promReg,
		metrics:  metrics.New(promReg),
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Model returns the loaded configuration model. This is primarily for testing.
func (a *App) Model() *config.Model {
	return a.model
}
