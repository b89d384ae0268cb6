// Package config loads launcher settings from a settings.toml file with
// environment-variable overrides, and guards the live settings snapshot
// behind a short-held lock.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/yanquisalexander/launchcore/internal/ctxlog"
	"github.com/yanquisalexander/launchcore/internal/platform"
)

// Settings is the launcher configuration consumed by the launch pipeline.
type Settings struct {
	// JavaDir is the root of the Java runtime to launch with; the
	// executable lives under its bin directory.
	JavaDir string `toml:"java_dir" env:"LAUNCHCORE_JAVA_DIR"`
	// MemoryMB is the allocated heap size in MiB.
	MemoryMB int `toml:"memory_mb" env:"LAUNCHCORE_MEMORY_MB"`
	// CloseOnLaunch makes the CLI return right after the process spawns
	// instead of waiting for the terminal lifecycle event.
	CloseOnLaunch bool `toml:"close_on_launch" env:"LAUNCHCORE_CLOSE_ON_LAUNCH"`
	// BridgeURL, when set, is the socket.io endpoint lifecycle events are
	// forwarded to in addition to the log.
	BridgeURL string `toml:"bridge_url" env:"LAUNCHCORE_BRIDGE_URL"`
	// InstancesDir overrides where instance profiles are discovered.
	InstancesDir string `toml:"instances_dir" env:"LAUNCHCORE_INSTANCES_DIR"`
}

// defaults returns the settings used when no file and no environment
// overrides are present.
func defaults() Settings {
	return Settings{MemoryMB: 2048}
}

// Load reads settings from the given TOML file, then applies environment
// overrides on top. A missing file is not an error; defaults plus the
// environment apply.
func Load(ctx context.Context, path string) (Settings, error) {
	logger := ctxlog.FromContext(ctx)

	settings := defaults()
	if path != "" {
		if _, err := toml.DecodeFile(path, &settings); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return Settings{}, fmt.Errorf("failed to decode settings file %q: %w", path, err)
			}
			logger.Debug("No settings file found, using defaults.", "path", path)
		} else {
			logger.Debug("Settings file loaded.", "path", path)
		}
	}

	if err := env.Parse(&settings); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings from environment: %w", err)
	}
	return settings, nil
}

// JavaExecutable resolves the Java binary path for the configured runtime.
// On Windows the console-less javaw.exe is preferred when it exists.
func (s Settings) JavaExecutable() string {
	bin := filepath.Join(s.JavaDir, "bin")
	if platform.IsWindows() {
		javaw := filepath.Join(bin, "javaw.exe")
		if _, err := os.Stat(javaw); err == nil {
			return javaw
		}
		return filepath.Join(bin, "java.exe")
	}
	return filepath.Join(bin, "java")
}

// Store guards the live settings value. The lock is held only for the copy,
// never across anything that blocks.
type Store struct {
	mu       sync.Mutex
	settings Settings
}

// NewStore creates a store holding the given settings.
func NewStore(settings Settings) *Store {
	return &Store{settings: settings}
}

// Current returns a copy of the live settings.
func (s *Store) Current() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Replace swaps in new settings, e.g. after the user edits them mid-session.
func (s *Store) Replace(settings Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
}
