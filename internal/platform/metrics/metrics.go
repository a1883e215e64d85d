package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPRequestsTotal   *prometheus.CounterVec

	VisualizationsGenerated *prometheus.CounterVec
	PipelineStageDuration   *prometheus.HistogramVec

	ProviderRequests *prometheus.CounterVec
	BreakerOpen      *prometheus.GaugeVec

	SpectralGauge *prometheus.GaugeVec

	QualityAreaScore *prometheus.GaugeVec
	QualityReviews   prometheus.Counter

	PrintJobsQueued   prometheus.Counter
	ReportsSent       prometheus.Counter
	TokensIssued      prometheus.Counter
	EventsPublished   *prometheus.CounterVec
	EventsDropped     prometheus.Counter
	ConditionsFetches *prometheus.CounterVec
}

// New creates all Prometheus metrics on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "m87hey_http_request_duration_seconds",
			Help:    "HTTP request latency by method, route and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "m87hey_http_requests_total",
			Help: "Total HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),

		VisualizationsGenerated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "m87hey_visualizations_generated_total",
			Help: "Visualization pipeline runs by period and outcome.",
		}, []string{"period", "outcome"}),
		PipelineStageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "m87hey_pipeline_stage_duration_seconds",
			Help:    "Duration of each visualization pipeline stage.",
			Buckets: prometheus.DefBuckets,
		}, []string{"stage"}),

		ProviderRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "m87hey_provider_requests_total",
			Help: "Upstream provider requests by provider and outcome.",
		}, []string{"provider", "outcome"}),
		BreakerOpen: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "m87hey_circuit_breaker_open",
			Help: "1 when the named circuit breaker is open, 0 when closed.",
		}, []string{"name"}),

		SpectralGauge: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "m87hey_spectral_analysis_value",
			Help: "Spectral analysis measurements by aspect, subject and measure.",
		}, []string{"aspect", "subject", "measure"}),

		QualityAreaScore: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "m87hey_quality_area_score",
			Help: "Latest improvement review score by area.",
		}, []string{"area"}),
		QualityReviews: factory.NewCounter(prometheus.CounterOpts{
			Name: "m87hey_quality_reviews_total",
			Help: "Total improvement reviews run.",
		}),

		PrintJobsQueued: factory.NewCounter(prometheus.CounterOpts{
			Name: "m87hey_print_jobs_queued_total",
			Help: "Total print jobs queued.",
		}),
		ReportsSent: factory.NewCounter(prometheus.CounterOpts{
			Name: "m87hey_reports_sent_total",
			Help: "Total weekly reports sent.",
		}),
		TokensIssued: factory.NewCounter(prometheus.CounterOpts{
			Name: "m87hey_api_tokens_issued_total",
			Help: "Total science community API tokens issued.",
		}),
		EventsPublished: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "m87hey_events_published_total",
			Help: "Pipeline events published by category.",
		}, []string{"category"}),
		EventsDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "m87hey_events_dropped_total",
			Help: "Pipeline events dropped because the buffer was full.",
		}),
		ConditionsFetches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "m87hey_conditions_fetches_total",
			Help: "Site-conditions ETL fetches by source and outcome.",
		}, []string{"source", "outcome"}),
	}
}

// NewForTesting creates metrics on an isolated registry so parallel tests
// never collide on metric names.
func NewForTesting() *Metrics {
	return New(prometheus.NewRegistry())
}

// ObserveHTTPRequest records one completed HTTP request.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	s := strconv.Itoa(status)
	m.HTTPRequestDuration.WithLabelValues(method, route, s).Observe(d.Seconds())
	m.HTTPRequestsTotal.WithLabelValues(method, route, s).Inc()
}

// IncVisualizationGenerated records one pipeline run for a period.
func (m *Metrics) IncVisualizationGenerated(period, outcome string) {
	m.VisualizationsGenerated.WithLabelValues(period, outcome).Inc()
}

// ObservePipelineStage records the duration of one pipeline stage.
func (m *Metrics) ObservePipelineStage(stage string, d time.Duration) {
	m.PipelineStageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// IncProviderRequest records one upstream provider request.
func (m *Metrics) IncProviderRequest(provider, outcome string) {
	m.ProviderRequests.WithLabelValues(provider, outcome).Inc()
}

// SetBreakerOpen publishes the state of a circuit breaker.
func (m *Metrics) SetBreakerOpen(name string, open bool) {
	v := 0.0
	if open {
		v = 1.0
	}
	m.BreakerOpen.WithLabelValues(name).Set(v)
}

// SetSpectralGauge publishes one spectral analysis measurement.
func (m *Metrics) SetSpectralGauge(aspect, subject, measure string, value float64) {
	m.SpectralGauge.WithLabelValues(aspect, subject, measure).Set(value)
}

// SetQualityAreaScore publishes the latest review score for an area.
func (m *Metrics) SetQualityAreaScore(area string, score float64) {
	m.QualityAreaScore.WithLabelValues(area).Set(score)
}

// IncQualityReview records one improvement review run.
func (m *Metrics) IncQualityReview() {
	m.QualityReviews.Inc()
}

// IncEventPublished records one published pipeline event.
func (m *Metrics) IncEventPublished(category string) {
	m.EventsPublished.WithLabelValues(category).Inc()
}

// IncEventDropped records one dropped pipeline event.
func (m *Metrics) IncEventDropped() {
	m.EventsDropped.Inc()
}

// IncConditionsFetch records one conditions ETL fetch.
func (m *Metrics) IncConditionsFetch(source, outcome string) {
	m.ConditionsFetches.WithLabelValues(source, outcome).Inc()
}
