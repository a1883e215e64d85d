package conditions

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	contract "github.com/john-holland/heycern-m87hey/contracts/observatory"
	"github.com/john-holland/heycern-m87hey/internal/platform/config"
	"github.com/john-holland/heycern-m87hey/internal/platform/events"
	"github.com/john-holland/heycern-m87hey/internal/platform/metrics"
)

// NOAAFetcher is the slice of NOAAClient the service needs.
type NOAAFetcher interface {
	FetchDaily(ctx context.Context, start, end time.Time) (contract.NOAADataResponse, json.RawMessage, error)
}

// NWSFetcher is the slice of NWSClient the service needs.
type NWSFetcher interface {
	FetchForecast(ctx context.Context, lat, lon float64) (contract.NWSForecastResponse, json.RawMessage, error)
}

// Service runs the conditions ETL and serves stored snapshots.
type Service struct {
	noaa      NOAAFetcher
	nws       NWSFetcher
	store     SnapshotStore
	publisher events.Publisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
	latitude  float64
	longitude float64
}

// NewService wires the conditions service for the observing site.
func NewService(noaa NOAAFetcher, nws NWSFetcher, store SnapshotStore, publisher events.Publisher, m *metrics.Metrics, logger *slog.Logger, site config.SiteConfig) *Service {
	return &Service{
		noaa:      noaa,
		nws:       nws,
		store:     store,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
		latitude:  site.Latitude,
		longitude: site.Longitude,
	}
}

// FetchResult describes one source's outcome in an ETL run.
type FetchResult struct {
	Source  Source `json:"source"`
	Summary string `json:"summary,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ETLResult is the outcome of one ETL run.
type ETLResult struct {
	Results   []FetchResult `json:"results"`
	StartedAt time.Time     `json:"started_at"`
}

// RunETL fetches the last day of site conditions from every source. A failed
// source is reported in the result but does not abort the run.
func (s *Service) RunETL(ctx context.Context) ETLResult {
	now := time.Now().UTC()
	result := ETLResult{StartedAt: now}

	result.Results = append(result.Results, s.fetchNOAA(ctx, now))
	result.Results = append(result.Results, s.fetchNWS(ctx, now))

	ok := 0
	for _, r := range result.Results {
		if r.Error == "" {
			ok++
		}
	}
	events.Emit(ctx, s.logger, s.publisher, events.CategoryOperations, "conditions.etl.completed",
		"provider", "site-weather",
		"sources_ok", strconv.Itoa(ok),
		"sources_total", strconv.Itoa(len(result.Results)),
	)
	return result
}

// Latest returns the stored snapshot for source.
func (s *Service) Latest(ctx context.Context, source Source) (*Snapshot, error) {
	return s.store.Latest(ctx, source)
}

func (s *Service) fetchNOAA(ctx context.Context, now time.Time) FetchResult {
	resp, raw, err := s.noaa.FetchDaily(ctx, now.Add(-24*time.Hour), now)
	if err != nil {
		s.metrics.IncConditionsFetch(string(SourceNOAA), "error")
		s.logger.WarnContext(ctx, "noaa fetch failed", "error", err)
		return FetchResult{Source: SourceNOAA, Error: err.Error()}
	}

	summary := fmt.Sprintf("%d TAVG observations", len(resp.Results))
	return s.save(ctx, &Snapshot{
		ID:        uuid.New(),
		Source:    SourceNOAA,
		Summary:   summary,
		Payload:   raw,
		FetchedAt: now,
	})
}

func (s *Service) fetchNWS(ctx context.Context, now time.Time) FetchResult {
	forecast, raw, err := s.nws.FetchForecast(ctx, s.latitude, s.longitude)
	if err != nil {
		s.metrics.IncConditionsFetch(string(SourceNWS), "error")
		s.logger.WarnContext(ctx, "nws fetch failed", "error", err)
		return FetchResult{Source: SourceNWS, Error: err.Error()}
	}

	return s.save(ctx, &Snapshot{
		ID:        uuid.New(),
		Source:    SourceNWS,
		Summary:   forecastSummary(forecast),
		Payload:   raw,
		FetchedAt: now,
	})
}

func (s *Service) save(ctx context.Context, snap *Snapshot) FetchResult {
	if err := s.store.Save(ctx, snap); err != nil {
		s.metrics.IncConditionsFetch(string(snap.Source), "error")
		s.logger.ErrorContext(ctx, "saving conditions snapshot failed",
			"source", string(snap.Source),
			"error", err,
		)
		return FetchResult{Source: snap.Source, Error: err.Error()}
	}
	s.metrics.IncConditionsFetch(string(snap.Source), "success")
	return FetchResult{Source: snap.Source, Summary: snap.Summary}
}

// forecastSummary renders the leading forecast period as a one-line summary.
func forecastSummary(f contract.NWSForecastResponse) string {
	if len(f.Properties.Periods) == 0 {
		return "no forecast periods"
	}
	p := f.Properties.Periods[0]
	return fmt.Sprintf("%s: %s, %d %s wind %s %s",
		p.Name, p.ShortForecast, p.Temperature, p.TemperatureUnit, p.WindSpeed, p.WindDirection)
}
