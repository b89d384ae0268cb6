package app

import (
	"context"
	"fmt"

	"github.com/yanquisalexander/launchcore/internal/accounts"
	"github.com/yanquisalexander/launchcore/internal/ctxlog"
	"github.com/yanquisalexander/launchcore/internal/launch"
)

// Run executes one launch attempt based on the provided configuration and,
// unless close-on-launch is set, waits for the terminal lifecycle event.
func (a *App) Run(ctx context.Context, appConfig *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	inst, ok := a.instances.Get(appConfig.InstanceID)
	if !ok {
		return fmt.Errorf("instance %q is not configured in %s", appConfig.InstanceID, appConfig.ProfilesDir)
	}

	if appConfig.OfflineUsername != "" {
		account := accounts.NewOffline(appConfig.OfflineUsername)
		a.accounts.Add(account)
		// Launch a copy so the stored profile keeps its configured account.
		override := *inst
		override.AccountUUID = account.UUID
		inst = &override
		a.logger.Info("Using ad hoc offline account.", "username", account.Username, "uuid", account.UUID)
	}

	a.logger.Info("🚀 Launching instance...", "id", inst.ID, "name", inst.Name)
	handle := a.launcher.Launch(ctx, inst)

	if a.settings.Current().CloseOnLaunch {
		a.logger.Info("Close-on-launch is set, not waiting for the game to exit.")
		return nil
	}

	result, err := handle.Wait(ctx)
	if err != nil {
		return fmt.Errorf("launch failed: %w", err)
	}
	a.logger.Info("🏁 Game exited.",
		"exitCode", result.ExitCode,
		"outcome", result.Outcome,
		"cause", result.Cause)

	if result.Outcome != launch.OutcomeSuccess && result.Outcome != launch.OutcomeTerminatedBySignal {
		return fmt.Errorf("game exited abnormally: %s (code %d)", result.Outcome, result.ExitCode)
	}
	a.logger.Debug("App.Run method finished.")
	return nil
}
