package report

import (
	"context"
	"log/slog"
	"time"

	domain "github.com/john-holland/heycern-m87hey/pkg/domain"
)

// Worker fires the weekly mailing on a fixed interval.
type Worker struct {
	service  *Service
	interval time.Duration
	logger   *slog.Logger
}

// NewWorker constructs the report worker.
func NewWorker(service *Service, interval time.Duration, logger *slog.Logger) *Worker {
	return &Worker{service: service, interval: interval, logger: logger}
}

// Run blocks until ctx is cancelled, running the weekly mailing each
// interval. The scheduled run always reports on the cretaceous period; other
// periods go through the admin endpoint.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			result := w.service.RunWeekly(ctx, domain.PeriodCretaceous)
			w.logger.InfoContext(ctx, "weekly report run finished",
				"reports", len(result.Reports),
				"sent", result.Sent,
			)
		}
	}
}
