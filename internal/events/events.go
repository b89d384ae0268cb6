// Package events defines the lifecycle notifications the launch pipeline
// emits and the transports that carry them to the embedding UI.
package events

import (
	"context"

	"github.com/yanquisalexander/launchcore/internal/ctxlog"
)

// Lifecycle event names.
const (
	NameLaunchStart       = "launch-start"
	NameDownloadingAssets = "downloading-assets"
	NameLaunched          = "launched"
	NameExited            = "exited"
	NameError             = "error"
)

// Event is one lifecycle notification. Data carries event-specific
// structured fields: the exited event includes the exit code, the mapped
// outcome, the heuristic cause, and the captured output.
type Event struct {
	Name         string         `json:"name"`
	InstanceID   string         `json:"instanceId"`
	InstanceName string         `json:"instanceName"`
	Message      string         `json:"message"`
	Data         map[string]any `json:"data,omitempty"`
}

// Emitter delivers lifecycle events. Emit must not block on slow consumers;
// the launch pipeline calls it inline.
type Emitter interface {
	Emit(ctx context.Context, ev Event)
}

// LogEmitter writes events to the context logger. It is the default
// transport when no UI bridge is configured.
type LogEmitter struct{}

// Emit implements Emitter.
func (LogEmitter) Emit(ctx context.Context, ev Event) {
	ctxlog.FromContext(ctx).Info("Lifecycle event.",
		"event", ev.Name,
		"instanceId", ev.InstanceID,
		"instanceName", ev.InstanceName,
		"message", ev.Message,
		"data", ev.Data)
}

// MultiEmitter fans one event out to several transports in order.
type MultiEmitter []Emitter

// Emit implements Emitter.
func (m MultiEmitter) Emit(ctx context.Context, ev Event) {
	for _, emitter := range m {
		emitter.Emit(ctx, ev)
	}
}
