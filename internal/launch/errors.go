package launch

import "errors"

// Sentinel errors for the launch pipeline. Everything before spawn aborts
// the attempt with one terminal error event; post-spawn failures surface
// through the supervisor instead.
var (
	ErrMissingMainClass      = errors.New("merged descriptor has no main class")
	ErrMissingJavaExecutable = errors.New("java executable not found")
	ErrSpawn                 = errors.New("failed to spawn game process")
	ErrProcessWait           = errors.New("failed waiting on game process")
)
