package launch

import (
	"context"
	"fmt"

	"github.com/yanquisalexander/launchcore/internal/accounts"
	"github.com/yanquisalexander/launchcore/internal/classpath"
	"github.com/yanquisalexander/launchcore/internal/config"
	"github.com/yanquisalexander/launchcore/internal/ctxlog"
	"github.com/yanquisalexander/launchcore/internal/events"
	"github.com/yanquisalexander/launchcore/internal/instance"
	"github.com/yanquisalexander/launchcore/internal/launchargs"
	"github.com/yanquisalexander/launchcore/internal/manifest"
	"github.com/yanquisalexander/launchcore/internal/platform"
	"github.com/yanquisalexander/launchcore/internal/tasks"
)

// Preparer is the asset and library acquisition collaborator. It runs
// before argument resolution; this core never downloads anything itself.
type Preparer interface {
	Prepare(ctx context.Context, inst *instance.Instance) error
}

// Launcher orchestrates launch attempts. All collaborators are injected;
// there is no hidden global state.
type Launcher struct {
	Settings *config.Store
	Accounts accounts.Provider
	Tasks    *tasks.Registry
	Events   events.Emitter
	// Preparer is optional; when nil, asset revalidation is skipped.
	Preparer Preparer
	// Brand and Version identify the launcher to the game.
	Brand   string
	Version string
}

// Handle joins a launch attempt running in the background. Cancel aborts
// the pre-spawn sequence or kills the spawned process.
type Handle struct {
	done   chan struct{}
	cancel context.CancelFunc
	result *Result
	err    error
}

// Done is closed once the terminal lifecycle event has been emitted.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Cancel aborts the launch or kills the running process.
func (h *Handle) Cancel() {
	h.cancel()
}

// Wait blocks until the attempt reaches its terminal state or the given
// context is cancelled. The Result is nil when the attempt failed before
// spawn or the wait on the process itself failed.
func (h *Handle) Wait(ctx context.Context) (*Result, error) {
	select {
	case <-h.done:
		return h.result, h.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// finish records the terminal state and releases waiters. Called exactly
// once per handle.
func (h *Handle) finish(result *Result, err error) {
	h.result = result
	h.err = err
	close(h.done)
}

// Launch starts a launch attempt for the instance on its own goroutine and
// returns immediately. Descriptors are parsed fresh on every attempt; at
// most one outstanding launch per instance id is the caller's discipline.
func (l *Launcher) Launch(ctx context.Context, inst *instance.Instance) *Handle {
	runCtx, cancel := context.WithCancel(ctx)
	handle := &Handle{done: make(chan struct{}), cancel: cancel}
	go l.run(runCtx, inst, handle)
	return handle
}

// run is the launch sequence: prepare, load and merge descriptors, resolve
// classpath and arguments, spawn, then hand off to the supervisor.
func (l *Launcher) run(ctx context.Context, inst *instance.Instance, handle *Handle) {
	logger := ctxlog.FromContext(ctx).With("instanceId", inst.ID)
	ctx = ctxlog.WithLogger(ctx, logger)

	taskID := l.Tasks.Create("Launching " + inst.Name)
	fail := func(stage string, err error) {
		logger.Error("Launch attempt failed.", "stage", stage, "error", err)
		l.Tasks.Update(taskID, tasks.StatusFailed, err.Error())
		l.Tasks.Remove(taskID)
		l.Events.Emit(ctx, events.Event{
			Name:         events.NameError,
			InstanceID:   inst.ID,
			InstanceName: inst.Name,
			Message:      fmt.Sprintf("Launch failed while %s: %v", stage, err),
		})
		handle.finish(nil, err)
	}

	l.Events.Emit(ctx, events.Event{
		Name:         events.NameLaunchStart,
		InstanceID:   inst.ID,
		InstanceName: inst.Name,
		Message:      "Preparing to launch " + inst.Name,
	})

	account, err := l.resolveAccount(inst)
	if err != nil {
		fail("resolving account", err)
		return
	}

	if l.Preparer != nil {
		l.Events.Emit(ctx, events.Event{
			Name:         events.NameDownloadingAssets,
			InstanceID:   inst.ID,
			InstanceName: inst.Name,
			Message:      "Revalidating assets and libraries",
		})
		if err := l.Preparer.Prepare(ctx, inst); err != nil {
			fail("revalidating assets", err)
			return
		}
	}

	plan, err := l.buildPlan(ctx, inst, account)
	if err != nil {
		fail("building launch plan", err)
		return
	}

	proc, err := Spawn(ctx, plan)
	if err != nil {
		fail("spawning process", err)
		return
	}
	l.Tasks.Update(taskID, tasks.StatusCompleted, "Game running")
	l.Tasks.Remove(taskID)
	l.Events.Emit(ctx, events.Event{
		Name:         events.NameLaunched,
		InstanceID:   inst.ID,
		InstanceName: inst.Name,
		Message:      inst.Name + " is running",
		Data:         map[string]any{"pid": proc.PID()},
	})

	// Supervision runs on its own goroutine per process; the launch
	// sequence goroutine ends here.
	go l.supervise(ctx, inst, proc, handle)
}

// supervise waits out the process and emits the terminal lifecycle event.
func (l *Launcher) supervise(ctx context.Context, inst *instance.Instance, proc *Process, handle *Handle) {
	result, err := Supervise(ctx, proc)
	if err != nil {
		// Supervisor malfunction, not a game crash. Reported distinctly so
		// the UI can render it differently.
		l.Events.Emit(ctx, events.Event{
			Name:         events.NameError,
			InstanceID:   inst.ID,
			InstanceName: inst.Name,
			Message:      fmt.Sprintf("Lost track of the game process: %v", err),
		})
		handle.finish(nil, err)
		return
	}

	l.Events.Emit(ctx, events.Event{
		Name:         events.NameExited,
		InstanceID:   inst.ID,
		InstanceName: inst.Name,
		Message:      fmt.Sprintf("%s exited with code %d", inst.Name, result.ExitCode),
		Data: map[string]any{
			"exitCode": result.ExitCode,
			"outcome":  string(result.Outcome),
			"cause":    string(result.Cause),
			"stdout":   result.Stdout,
			"stderr":   result.Stderr,
		},
	})
	handle.finish(&result, nil)
}

// resolveAccount looks the instance's account up, falling back to a default
// offline identity when the instance references none.
func (l *Launcher) resolveAccount(inst *instance.Instance) (accounts.Account, error) {
	if inst.AccountUUID == "" {
		return accounts.NewOffline("Player"), nil
	}
	return l.Accounts.Lookup(inst.AccountUUID)
}

// buildPlan loads and merges the descriptor chain, resolves the classpath
// and both argument vectors, and assembles the invocation.
func (l *Launcher) buildPlan(ctx context.Context, inst *instance.Instance, account accounts.Account) (*Plan, error) {
	logger := ctxlog.FromContext(ctx)
	settings := l.Settings.Current()
	paths := inst.Paths()
	parser := manifest.NewParser(paths.VersionsDir())

	merged, gameJars, err := l.loadMerged(ctx, parser, inst, paths)
	if err != nil {
		return nil, err
	}
	if merged.MainClass == "" {
		return nil, ErrMissingMainClass
	}

	versionID := inst.MinecraftVersion
	if inst.OverlayVersion != "" {
		versionID = inst.OverlayVersion
	}

	cpResolver := classpath.NewResolver(paths.LibrariesDir())
	cp := cpResolver.Build(ctx, merged, gameJars)

	assetIndex := merged.AssetIndexID()
	if assetIndex == "" {
		assetIndex = "legacy"
	}
	versionType := merged.Type
	if versionType == "" {
		versionType = "release"
	}

	placeholders := launchargs.Placeholders{
		launchargs.KeyPlayerName:         account.Username,
		launchargs.KeyVersionName:        inst.MinecraftVersion,
		launchargs.KeyGameDirectory:      paths.MinecraftDir(),
		launchargs.KeyAssetsRoot:         paths.AssetsDir(),
		launchargs.KeyAssetsIndexName:    assetIndex,
		launchargs.KeyAuthUUID:           account.UUID,
		launchargs.KeyAuthAccessToken:    account.AccessToken,
		launchargs.KeyUserType:           account.UserType(),
		launchargs.KeyVersionType:        versionType,
		launchargs.KeyNativesDirectory:   paths.NativesDir(versionID),
		launchargs.KeyLibraryDirectory:   paths.LibrariesDir(),
		launchargs.KeyLauncherName:       l.Brand,
		launchargs.KeyLauncherVersion:    l.Version,
		launchargs.KeyClasspath:          cp,
		launchargs.KeyClasspathSeparator: platform.ListSeparator(),
	}

	argResolver := &launchargs.Resolver{
		Platform:     platform.Current(),
		Placeholders: placeholders,
		MemoryMB:     settings.MemoryMB,
	}

	plan := &Plan{
		JavaExec:   settings.JavaExecutable(),
		JVMArgs:    argResolver.JVMArguments(ctx, merged),
		MainClass:  merged.MainClass,
		GameArgs:   argResolver.GameArguments(ctx, merged, inst.MinecraftVersion),
		WorkingDir: paths.MinecraftDir(),
	}
	logger.Debug("Launch plan assembled.",
		"mainClass", plan.MainClass,
		"jvmArgs", len(plan.JVMArgs),
		"gameArgs", len(plan.GameArgs))
	return plan, nil
}

// loadMerged resolves the descriptor for the instance: the base version's
// own inheritance chain when no overlay is configured, or the base merged
// with the overlay (and the overlay's declared parent taking precedence as
// the base when it names one). The returned jar candidates are ordered
// overlay first, since an overlay's own jar supersedes the base-game jar.
func (l *Launcher) loadMerged(ctx context.Context, parser *manifest.Parser, inst *instance.Instance, paths instance.Paths) (*manifest.Descriptor, []string, error) {
	if inst.OverlayVersion == "" {
		merged, err := parser.Resolve(ctx, inst.MinecraftVersion)
		if err != nil {
			return nil, nil, err
		}
		return merged, []string{paths.VersionJar(inst.MinecraftVersion)}, nil
	}

	parent, overlay, err := parser.LoadChain(ctx, inst.OverlayVersion)
	if err != nil {
		return nil, nil, err
	}
	if parent == nil {
		parent, err = parser.Load(ctx, inst.MinecraftVersion)
		if err != nil {
			return nil, nil, err
		}
	}
	merged := manifest.Merge(ctx, parent, overlay)
	gameJars := []string{
		paths.VersionJar(inst.OverlayVersion),
		paths.VersionJar(parent.ID),
	}
	return merged, gameJars, nil
}
