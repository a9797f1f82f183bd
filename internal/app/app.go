package app

import (
	"io"
	"log/slog"

	"github.com/vk/blueprint/internal/loader"
	"github.com/vk/blueprint/internal/namespace"
	"github.com/vk/blueprint/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	loader   *loader.Loader
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
// Handlers may be nil when no foreign namespaces are in play.
func NewApp(outW io.Writer, cfg *Config, handlers *namespace.Registry) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		loader:   loader.New(reg, handlers),
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
