package events

import (
	"context"
	"log/slog"

	"github.com/john-holland/heycern-m87hey/internal/platform/metrics"
)

// Buffer decouples event emission from sink latency. Publish never blocks;
// when the inbox is full the event is dropped and counted.
type Buffer struct {
	sink    Publisher
	inbox   chan Event
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewBuffer(sink Publisher, logger *slog.Logger, m *metrics.Metrics, size int) *Buffer {
	if size <= 0 {
		size = 256
	}
	return &Buffer{
		sink:    sink,
		inbox:   make(chan Event, size),
		logger:  logger,
		metrics: m,
	}
}

// Publish enqueues the event for background delivery.
func (b *Buffer) Publish(ctx context.Context, e Event) error {
	select {
	case b.inbox <- e:
		return nil
	default:
		b.metrics.IncEventDropped()
		b.logger.WarnContext(ctx, "event dropped, buffer full",
			"category", string(e.Category),
			"action", e.Action,
		)
		return nil
	}
}

// Run consumes buffered events and delivers them to the sink until the
// context is cancelled. Delivery failures are logged, not fatal.
func (b *Buffer) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case e := <-b.inbox:
			if err := b.sink.Publish(ctx, e); err != nil {
				b.logger.WarnContext(ctx, "event delivery failed",
					"category", string(e.Category),
					"action", e.Action,
					"error", err,
				)
				continue
			}
			b.metrics.IncEventPublished(string(e.Category))
		}
	}
}

func (b *Buffer) Close() {
	b.sink.Close()
}
