package report

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/john-holland/heycern-m87hey/internal/platform/metrics"
	"github.com/john-holland/heycern-m87hey/internal/spectral"
)

func TestWorkerRunsOnInterval(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	sender := &recordingSender{}
	analyzer := spectral.NewAnalyzer(metrics.NewForTesting(), logger)
	service := NewService(analyzer, &stubChecklist{entries: rosterChecklist()}, NewMemoryStore(), sender, nil, metrics.NewForTesting(), logger, nil)

	worker := NewWorker(service, 10*time.Millisecond, logger)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return len(sender.mails()) >= 4
	}, 2*time.Second, 5*time.Millisecond, "expected at least two full runs")

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancellation")
	}
}
