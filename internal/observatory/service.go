package observatory

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/john-holland/heycern-m87hey/internal/platform/metrics"
	"github.com/john-holland/heycern-m87hey/internal/platform/providers"
	"github.com/john-holland/heycern-m87hey/pkg/platform/circuit"
	"github.com/john-holland/heycern-m87hey/pkg/platform/sentinel"
)

const probeInterval = 30 * time.Second

// Service fetches M87 observations, preferring the snapshot cache, guarding
// the archive behind a circuit breaker and a sliding-window throttle, and
// degrading to the canned fallback record on any upstream trouble.
type Service struct {
	client   ArchiveClient
	cache    *RedisCache
	breaker  *circuit.Breaker
	throttle *Throttle
	metrics  *metrics.Metrics
	logger   *slog.Logger
	redshift float64

	probeMu   sync.Mutex
	lastProbe time.Time
}

// NewService wires the observatory service. cache may be nil (no snapshot
// caching); breaker and throttle fall back to defaults when nil.
func NewService(client ArchiveClient, cache *RedisCache, breaker *circuit.Breaker, throttle *Throttle, m *metrics.Metrics, logger *slog.Logger, redshift float64) *Service {
	if breaker == nil {
		breaker = circuit.New(archiveProviderID)
	}
	if throttle == nil {
		throttle = NewThrottle(30, time.Minute)
	}
	if redshift == 0 {
		redshift = M87Redshift
	}
	return &Service{
		client:   client,
		cache:    cache,
		breaker:  breaker,
		throttle: throttle,
		metrics:  m,
		logger:   logger,
		redshift: redshift,
	}
}

// FetchObservation returns the current M87 observation. It never fails for
// upstream reasons; the fallback record keeps the demonstration runnable.
func (s *Service) FetchObservation(ctx context.Context) (Observation, error) {
	if s.cache != nil {
		obs, err := s.cache.Find(ctx)
		if err == nil {
			s.metrics.IncProviderRequest(archiveProviderID, "cache_hit")
			return *obs, nil
		}
		if !errors.Is(err, sentinel.ErrNotFound) {
			s.logger.WarnContext(ctx, "m87 snapshot cache unavailable", "error", err)
		}
	}

	// While open, let one probe through per interval so the breaker can
	// observe recovery and close again.
	if s.breaker.IsOpen() && !s.allowProbe() {
		s.metrics.IncProviderRequest(archiveProviderID, "breaker_open")
		s.logger.WarnContext(ctx, "archive breaker open, serving fallback record")
		return s.fallbackObservation(), nil
	}

	if !s.throttle.Allow() {
		s.metrics.IncProviderRequest(archiveProviderID, "throttled")
		s.logger.WarnContext(ctx, "archive throttled, serving fallback record")
		return s.fallbackObservation(), nil
	}

	rec, err := s.client.FetchM87Lensing(ctx)
	if err != nil {
		if _, change := s.breaker.RecordFailure(); change.Opened {
			s.metrics.SetBreakerOpen(archiveProviderID, true)
			s.logger.ErrorContext(ctx, "archive breaker opened", "breaker", s.breaker.Name())
		}
		s.metrics.IncProviderRequest(archiveProviderID, "error")
		s.logger.WarnContext(ctx, "archive fetch failed, serving fallback record",
			"category", string(providers.CategoryOf(err)),
			"retryable", providers.IsRetryable(err),
			"error", err,
		)
		return s.fallbackObservation(), nil
	}

	if _, change := s.breaker.RecordSuccess(); change.Closed {
		s.metrics.SetBreakerOpen(archiveProviderID, false)
		s.logger.InfoContext(ctx, "archive breaker closed", "breaker", s.breaker.Name())
	}
	s.metrics.IncProviderRequest(archiveProviderID, "success")

	obs, err := fromContract(rec, s.redshift, SourceArchive, time.Now())
	if err != nil {
		s.logger.ErrorContext(ctx, "archive record outside lens model domain, serving fallback record", "error", err)
		return s.fallbackObservation(), nil
	}

	if s.cache != nil {
		if err := s.cache.Save(ctx, &obs); err != nil {
			s.logger.WarnContext(ctx, "saving m87 snapshot failed", "error", err)
		}
	}
	return obs, nil
}

// Redshift returns the lens redshift this service stamps on observations.
func (s *Service) Redshift() float64 { return s.redshift }

func (s *Service) fallbackObservation() Observation {
	obs, _ := fromContract(FallbackRecord(), s.redshift, SourceFallback, time.Now())
	return obs
}

func (s *Service) allowProbe() bool {
	s.probeMu.Lock()
	defer s.probeMu.Unlock()
	if time.Since(s.lastProbe) < probeInterval {
		return false
	}
	s.lastProbe = time.Now()
	return true
}
