// Package app wires the launcher's services together and drives one launch
// attempt end to end.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/yanquisalexander/launchcore/internal/accounts"
	"github.com/yanquisalexander/launchcore/internal/config"
	"github.com/yanquisalexander/launchcore/internal/ctxlog"
	"github.com/yanquisalexander/launchcore/internal/events"
	"github.com/yanquisalexander/launchcore/internal/instance"
	"github.com/yanquisalexander/launchcore/internal/launch"
	"github.com/yanquisalexander/launchcore/internal/tasks"
)

// Brand and Version identify this launcher to the game process.
const (
	Brand   = "launchcore"
	Version = "1.0.0"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle. Every service is constructed here and passed by reference;
// there are no package-level singletons.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	settings  *config.Store
	accounts  *accounts.StaticProvider
	instances *instance.Store
	tasks     *tasks.Registry
	emitter   events.Emitter
	launcher  *launch.Launcher
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger. Failures to load
// startup configuration panic; main recovers them into a clean exit
// message.
func NewApp(outW io.Writer, appConfig *Config) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	settings, err := config.Load(ctx, appConfig.SettingsPath)
	if err != nil {
		panic(fmt.Errorf("failed to load launcher settings: %w", err))
	}
	settingsStore := config.NewStore(settings)
	logger.Debug("Launcher settings loaded.", "javaDir", settings.JavaDir, "memoryMB", settings.MemoryMB)

	instances, err := instance.LoadStore(ctx, appConfig.ProfilesDir)
	if err != nil {
		panic(fmt.Errorf("failed to load instance profiles: %w", err))
	}
	logger.Debug("Instance profiles loaded.", "count", len(instances.All()))

	accountProvider := accounts.NewStaticProvider()

	var emitter events.Emitter = events.LogEmitter{}
	if settings.BridgeURL != "" {
		bridge, err := events.NewSocketIOEmitter(ctx, settings.BridgeURL)
		if err != nil {
			// The UI bridge being down must not block launching; events
			// still reach the log.
			logger.Warn("UI event bridge unavailable, logging events only.", "error", err)
		} else {
			emitter = events.MultiEmitter{events.LogEmitter{}, bridge}
		}
	}

	registry := tasks.NewRegistry()
	launcher := &launch.Launcher{
		Settings: settingsStore,
		Accounts: accountProvider,
		Tasks:    registry,
		Events:   emitter,
		Brand:    Brand,
		Version:  Version,
	}

	return &App{
		outW:      outW,
		logger:    logger,
		settings:  settingsStore,
		accounts:  accountProvider,
		instances: instances,
		tasks:     registry,
		emitter:   emitter,
		launcher:  launcher,
	}
}

// Instances returns the loaded instance store. This is primarily for testing.
func (a *App) Instances() *instance.Store {
	return a.instances
}
