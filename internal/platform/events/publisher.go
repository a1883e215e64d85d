package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/john-holland/heycern-m87hey/pkg/attrs"
	"github.com/john-holland/heycern-m87hey/pkg/requestcontext"
)

// Publisher delivers events to a sink.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close()
}

// Emit logs an event to the structured logger and hands it to the publisher.
// It enriches events with the request ID and extracts the subject from
// attrList, so call sites stay one-liners.
func Emit(ctx context.Context, logger *slog.Logger, publisher Publisher, category Category, action string, attrList ...any) {
	requestID := requestcontext.RequestID(ctx)

	if requestID != "" {
		attrList = append(attrList, "request_id", requestID)
	}

	args := append(attrList, "event", action, "category", string(category))

	if logger != nil {
		logger.InfoContext(ctx, action, args...)
	}

	if publisher == nil {
		return
	}

	e := Event{
		ID:        uuid.NewString(),
		Category:  category,
		Action:    action,
		Subject:   extractSubject(attrList),
		RequestID: requestID,
		Timestamp: requestcontext.Now(ctx),
		Attrs:     collectAttrs(attrList),
	}
	if err := publisher.Publish(ctx, e); err != nil && logger != nil {
		logger.WarnContext(ctx, "event publish failed",
			"event", action,
			"category", string(category),
			"error", err,
		)
	}
}

func extractSubject(attrList []any) string {
	for _, key := range []string{"visualization_id", "report_id", "job_id", "token_id", "period", "provider"} {
		if val := attrs.ExtractString(attrList, key); val != "" {
			return val
		}
	}
	return ""
}

func collectAttrs(attrList []any) map[string]string {
	var out map[string]string
	for i := 0; i < len(attrList)-1; i += 2 {
		k, ok := attrList[i].(string)
		if !ok {
			continue
		}
		v, ok := attrList[i+1].(string)
		if !ok {
			continue
		}
		if out == nil {
			out = make(map[string]string)
		}
		out[k] = v
	}
	return out
}

// LogPublisher writes events to the structured logger. It is the sink of
// record when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, e Event) error {
	p.logger.InfoContext(ctx, "event",
		"event_id", e.ID,
		"category", string(e.Category),
		"action", e.Action,
		"subject", e.Subject,
		"timestamp", e.Timestamp.Format(time.RFC3339),
	)
	return nil
}

func (p *LogPublisher) Close() {}
