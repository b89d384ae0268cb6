package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// InstanceID selects which configured instance to launch.
	InstanceID string
	// SettingsPath is the launcher settings TOML file.
	SettingsPath string
	// ProfilesDir is scanned for instance profile .hcl files.
	ProfilesDir string
	// OfflineUsername, when set, launches with an ad hoc offline account
	// instead of the instance's configured account.
	OfflineUsername string

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.InstanceID == "" {
		return nil, errors.New("InstanceID is a required configuration field and cannot be empty")
	}
	if cfg.ProfilesDir == "" {
		return nil, errors.New("ProfilesDir is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
