package printqueue

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/john-holland/heycern-m87hey/internal/platform/config"
	"github.com/john-holland/heycern-m87hey/internal/platform/events"
	"github.com/john-holland/heycern-m87hey/internal/platform/metrics"
	"github.com/john-holland/heycern-m87hey/internal/visualization/models"
	domain "github.com/john-holland/heycern-m87hey/pkg/domain"
	dErrors "github.com/john-holland/heycern-m87hey/pkg/domain-errors"
)

// ArtifactSource resolves the visualization a job prints.
type ArtifactSource interface {
	Get(ctx context.Context, id domain.VisualizationID) (models.Artifact, error)
}

// Notifier delivers the supply refill request mail.
type Notifier interface {
	Send(ctx context.Context, recipients []string, subject, body string) error
}

// Service runs the print spool: job creation, device handoff, history, and
// the supplies check.
type Service struct {
	artifacts ArtifactSource
	store     JobStore
	printer   Printer
	notifier  Notifier
	publisher events.Publisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
	cfg       config.PrinterConfig
	now       func() time.Time
}

// NewService wires the print queue service.
func NewService(artifacts ArtifactSource, store JobStore, printer Printer, notifier Notifier, publisher events.Publisher, m *metrics.Metrics, logger *slog.Logger, cfg config.PrinterConfig) *Service {
	return &Service{
		artifacts: artifacts,
		store:     store,
		printer:   printer,
		notifier:  notifier,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Enqueue spools a print of the stored visualization: ready check, history
// record, device handoff, printed mark. A device failure leaves the job
// queued in the history rather than dropping it.
func (s *Service) Enqueue(ctx context.Context, visualizationID domain.VisualizationID) (Job, error) {
	if !s.printer.Ready(ctx) {
		return Job{}, dErrors.New(dErrors.CodeUnavailable, "printer is not ready")
	}

	artifact, err := s.artifacts.Get(ctx, visualizationID)
	if err != nil {
		return Job{}, fmt.Errorf("resolve visualization: %w", err)
	}

	job := Job{
		ID:         domain.NewPrintJobID(),
		ImagePath:  artifact.FileName(),
		Status:     StatusQueued,
		PaperSize:  s.cfg.PaperSize,
		ColorMode:  s.cfg.ColorMode,
		Resolution: s.cfg.Resolution,
		QueuedAt:   s.now().UTC(),
	}
	if err := s.store.Save(ctx, job); err != nil {
		return Job{}, fmt.Errorf("queue print job: %w", err)
	}
	s.metrics.PrintJobsQueued.Inc()
	events.Emit(ctx, s.logger, s.publisher, events.CategoryOperations, "printjob.queued",
		"job_id", job.ID.String(),
		"visualization_id", visualizationID.String(),
		"image_path", job.ImagePath,
	)

	if err := s.printer.Print(ctx, job); err != nil {
		s.logger.ErrorContext(ctx, "device rejected print job",
			"job_id", job.ID.String(),
			"error", err,
		)
		return job, nil
	}

	printed := s.now().UTC()
	job.Status = StatusPrinted
	job.PrintedAt = &printed
	if err := s.store.Save(ctx, job); err != nil {
		s.logger.ErrorContext(ctx, "marking print job printed failed",
			"job_id", job.ID.String(),
			"error", err,
		)
		return job, nil
	}
	events.Emit(ctx, s.logger, s.publisher, events.CategoryOperations, "printjob.printed",
		"job_id", job.ID.String(),
		"image_path", job.ImagePath,
	)
	return job, nil
}

// History returns the job history, newest first.
func (s *Service) History(ctx context.Context) ([]Job, error) {
	return s.store.List(ctx)
}

// CheckSupplies reads the device's consumable state and mails a refill
// request when anything runs low.
func (s *Service) CheckSupplies(ctx context.Context) (SuppliesStatus, error) {
	supplies := s.printer.Supplies(ctx)
	status := SuppliesStatus{Supplies: supplies}
	if supplies.Stocked() {
		return status, nil
	}

	low := strings.Join(supplies.low(), ", ")
	subject := "M87 Project printer supply refill request"
	body := fmt.Sprintf("The office printer is low on: %s.\n\nPlease reorder through W.B. Mason before the next weekly print run.\n", low)
	if err := s.notifier.Send(ctx, []string{s.cfg.NotificationEmail}, subject, body); err != nil {
		return status, fmt.Errorf("request supply refill: %w", err)
	}

	status.RefillRequested = true
	s.logger.InfoContext(ctx, "requested printer supply refill",
		"low", low,
		"notify", s.cfg.NotificationEmail,
	)
	events.Emit(ctx, s.logger, s.publisher, events.CategoryOperations, "printer.refill_requested",
		"supplies", low,
	)
	return status, nil
}
