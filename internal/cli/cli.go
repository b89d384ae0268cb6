// Package cli parses the launcher's command-line arguments into an
// app.Config.
package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/yanquisalexander/launchcore/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("launchcore", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
launchcore - launches and supervises configured game instances.

Usage:
  launchcore [options] [INSTANCE_ID]

Arguments:
  INSTANCE_ID
    Id of an instance declared in the profiles directory.

Options:
`)
		flagSet.PrintDefaults()
	}

	instanceFlag := flagSet.String("instance", "", "Id of the instance to launch.")
	iFlag := flagSet.String("i", "", "Id of the instance to launch (shorthand).")
	settingsFlag := flagSet.String("settings", "settings.toml", "Path to the launcher settings file.")
	profilesFlag := flagSet.String("profiles", "instances", "Path to the instance profiles directory.")
	usernameFlag := flagSet.String("username", "", "Launch with an ad hoc offline account under this name.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	instanceID := ""
	if *instanceFlag != "" {
		instanceID = *instanceFlag
	} else if *iFlag != "" {
		instanceID = *iFlag
	} else if flagSet.NArg() > 0 {
		instanceID = flagSet.Arg(0)
	}
	slog.Debug("Instance id determined.", "id", instanceID)

	if instanceID == "" {
		slog.Debug("No instance id provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		InstanceID:      instanceID,
		SettingsPath:    *settingsFlag,
		ProfilesDir:     *profilesFlag,
		OfflineUsername: *usernameFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
