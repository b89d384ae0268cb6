package events

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yanquisalexander/launchcore/internal/ctxlog"
)

type captureEmitter struct {
	seen []Event
}

func (c *captureEmitter) Emit(_ context.Context, ev Event) {
	c.seen = append(c.seen, ev)
}

func TestMultiEmitter_FansOutInOrder(t *testing.T) {
	first := &captureEmitter{}
	second := &captureEmitter{}
	multi := MultiEmitter{first, second}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := ctxlog.WithLogger(context.Background(), logger)

	ev := Event{Name: NameLaunched, InstanceID: "vanilla"}
	multi.Emit(ctx, ev)

	assert.Equal(t, []Event{ev}, first.seen)
	assert.Equal(t, []Event{ev}, second.seen)
}
