package events

import (
	"context"
	"fmt"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/yanquisalexander/launchcore/internal/ctxlog"
)

// connectTimeout bounds how long the constructor waits for the bridge to
// accept the connection before giving up.
const connectTimeout = 10 * time.Second

// SocketIOEmitter forwards lifecycle events to a UI bridge over socket.io.
// Events emitted while the bridge is unreachable are dropped with a warning;
// the launch itself never blocks on the UI.
type SocketIOEmitter struct {
	io        *socket.Socket
	connected atomic.Bool
}

// NewSocketIOEmitter connects to the bridge at rawURL and waits for the
// initial connection to be established.
func NewSocketIOEmitter(ctx context.Context, rawURL string) (*SocketIOEmitter, error) {
	logger := ctxlog.FromContext(ctx).With("bridge", rawURL)
	logger.Debug("Connecting to UI event bridge.")

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bridge URL: %w", err)
	}

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	opts := socket.DefaultOptions()
	if parsedURL.Path != "" {
		opts.SetPath(parsedURL.Path)
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket("/", opts)

	emitter := &SocketIOEmitter{io: io}
	connected := make(chan error, 1)

	io.On(types.EventName("connect"), func(...any) {
		emitter.connected.Store(true)
		logger.Info("Connected to UI event bridge.", "sid", io.Id())
		select {
		case connected <- nil:
		default:
		}
	})
	io.On(types.EventName("connect_error"), func(errs ...any) {
		if err, ok := errs[0].(error); ok {
			select {
			case connected <- err:
			default:
			}
		}
	})
	io.On(types.EventName("disconnect"), func(...any) {
		emitter.connected.Store(false)
		logger.Warn("Disconnected from UI event bridge.")
	})

	io.Connect()

	opCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	select {
	case err := <-connected:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("failed to connect to UI event bridge: %w", err)
		}
	case <-opCtx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("timed out connecting to UI event bridge at %s", rawURL)
	}

	return emitter, nil
}

// Emit implements Emitter, sending the event under its lifecycle name.
func (e *SocketIOEmitter) Emit(ctx context.Context, ev Event) {
	if !e.connected.Load() {
		ctxlog.FromContext(ctx).Warn("UI bridge not connected, dropping event.", "event", ev.Name)
		return
	}
	if err := e.io.Emit(ev.Name, ev); err != nil {
		ctxlog.FromContext(ctx).Warn("Failed to emit event to UI bridge.", "event", ev.Name, "error", err)
	}
}

// Close disconnects from the bridge.
func (e *SocketIOEmitter) Close() {
	e.io.Disconnect()
}
