package report

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/john-holland/heycern-m87hey/internal/auth"
	"github.com/john-holland/heycern-m87hey/internal/platform/events"
	"github.com/john-holland/heycern-m87hey/internal/platform/metrics"
	"github.com/john-holland/heycern-m87hey/internal/spectral"
	domain "github.com/john-holland/heycern-m87hey/pkg/domain"
)

// Analyzer produces the spectral analysis the letter reports on.
type Analyzer interface {
	Analyze(ctx context.Context, period domain.Period) spectral.Analysis
}

// ChecklistSource supplies the community token checklist embedded in the
// spectral letter.
type ChecklistSource interface {
	Checklist(ctx context.Context) ([]auth.ChecklistEntry, error)
}

// Service builds, stores, and delivers the project's outreach reports.
type Service struct {
	analyzer   Analyzer
	checklist  ChecklistSource
	store      Store
	sender     Sender
	publisher  events.Publisher
	metrics    *metrics.Metrics
	logger     *slog.Logger
	recipients []string
	now        func() time.Time
}

// NewService wires the report service. Weekly report recipients fall back to
// the project mailing list when none are configured.
func NewService(analyzer Analyzer, checklist ChecklistSource, store Store, sender Sender, publisher events.Publisher, m *metrics.Metrics, logger *slog.Logger, recipients []string) *Service {
	if len(recipients) == 0 {
		recipients = NOAAMailingList
	}
	return &Service{
		analyzer:   analyzer,
		checklist:  checklist,
		store:      store,
		sender:     sender,
		publisher:  publisher,
		metrics:    m,
		logger:     logger,
		recipients: recipients,
		now:        time.Now,
	}
}

// RunWeekly builds and delivers both weekly mailings: the project progress
// report and the spectral analysis letter for period. Each report is stored
// before delivery is attempted, so a failed send still leaves the text
// retrievable. One report failing does not abort the other.
func (s *Service) RunWeekly(ctx context.Context, period domain.Period) RunResult {
	now := s.now().UTC()

	var result RunResult
	weekly, err := s.buildWeekly(now)
	result.Reports = append(result.Reports, s.deliver(ctx, weekly, err))

	letter, err := s.buildSpectral(ctx, period, now)
	result.Reports = append(result.Reports, s.deliver(ctx, letter, err))

	for _, outcome := range result.Reports {
		if outcome.Error == "" {
			result.Sent++
		}
	}
	return result
}

// Report returns a stored report with its full body.
func (s *Service) Report(ctx context.Context, reportID domain.ReportID) (Report, error) {
	return s.store.Get(ctx, reportID)
}

func (s *Service) buildWeekly(now time.Time) (Report, error) {
	report := Report{
		ID:          domain.NewReportID(),
		Kind:        KindWeekly,
		Recipients:  s.recipients,
		PeriodStart: now.AddDate(0, 0, -7),
		PeriodEnd:   now,
		GeneratedAt: now,
	}
	body, err := renderWeekly(weeklyData{
		StartDate:      report.PeriodStart.Format("2006-01-02"),
		EndDate:        report.PeriodEnd.Format("2006-01-02"),
		Improvements:   weeklyImprovements,
		Spectrometer:   referenceSpectrometerStats,
		Visualizations: referenceVisualizationStats,
		License:        ProjectLicense,
		Attribution:    ProjectAttribution,
		Contact:        ProjectContact,
	})
	if err != nil {
		return report, err
	}
	report.Subject = "M87 Project Weekly Report - " + now.Format("2006-01-02")
	report.Body = body
	return report, nil
}

func (s *Service) buildSpectral(ctx context.Context, period domain.Period, now time.Time) (Report, error) {
	report := Report{
		ID:          domain.NewReportID(),
		Kind:        KindSpectral,
		Recipients:  NOAAMailingList,
		PeriodStart: now.AddDate(0, 0, -7),
		PeriodEnd:   now,
		GeneratedAt: now,
	}
	entries, err := s.checklist.Checklist(ctx)
	if err != nil {
		return report, fmt.Errorf("build spectral report: %w", err)
	}
	analysis := s.analyzer.Analyze(ctx, period)
	body, err := renderSpectral(spectralData{
		TimePeriod:  string(period),
		Checklist:   entries,
		KeyFindings: keyFindings(analysis),
		Analysis:    analysis,
		Updates:     referenceVisualizationUpdates,
	})
	if err != nil {
		return report, err
	}
	report.Subject = fmt.Sprintf("M87 Gravitational Lensing Project - Weekly Spectral Analysis Report (%s)", period)
	report.Body = body
	return report, nil
}

func (s *Service) deliver(ctx context.Context, report Report, buildErr error) Outcome {
	if buildErr != nil {
		s.logger.ErrorContext(ctx, "report build failed", "kind", string(report.Kind), "error", buildErr)
		return Outcome{Report: report.WithoutBody(), Error: buildErr.Error()}
	}
	if err := s.store.Save(ctx, report); err != nil {
		s.logger.ErrorContext(ctx, "report save failed", "kind", string(report.Kind), "error", err)
		return Outcome{Report: report.WithoutBody(), Error: err.Error()}
	}
	if err := s.sender.Send(ctx, report.Recipients, report.Subject, report.Body); err != nil {
		s.logger.ErrorContext(ctx, "report delivery failed",
			"report_id", report.ID.String(),
			"kind", string(report.Kind),
			"error", err,
		)
		return Outcome{Report: report.WithoutBody(), Error: err.Error()}
	}

	s.metrics.ReportsSent.Inc()
	events.Emit(ctx, s.logger, s.publisher, events.CategoryReport, "report.sent",
		"report_id", report.ID.String(),
		"kind", string(report.Kind),
		"recipients", strconv.Itoa(len(report.Recipients)),
	)
	return Outcome{Report: report.WithoutBody()}
}
