// Package service orchestrates the visualization pipeline: observation
// fetch, quality gate, spectrum transform, frame rendering, lens resampling,
// spectrum-guided enhancement, and artifact persistence.
package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/john-holland/heycern-m87hey/internal/epoch"
	"github.com/john-holland/heycern-m87hey/internal/lensing"
	"github.com/john-holland/heycern-m87hey/internal/observatory"
	"github.com/john-holland/heycern-m87hey/internal/platform/events"
	"github.com/john-holland/heycern-m87hey/internal/platform/metrics"
	"github.com/john-holland/heycern-m87hey/internal/render"
	"github.com/john-holland/heycern-m87hey/internal/visualization/models"
	"github.com/john-holland/heycern-m87hey/pkg/domain"
	dErrors "github.com/john-holland/heycern-m87hey/pkg/domain-errors"
)

// Generated frame dimensions.
const (
	frameWidth  = 512
	frameHeight = 512
)

// evolutionConcurrency bounds parallel pipeline runs in a batch; rendering
// is the heavy stage.
const evolutionConcurrency = 3

// sourceOffset is the fixed source-plane position of the Earth scene
// relative to the lens center, in arcseconds.
var sourceOffset = lensing.AngularPosition{ThetaX: 0.5, ThetaY: 0.5}

// ObservationSource yields the current M87 lensing observation.
type ObservationSource interface {
	FetchObservation(ctx context.Context) (observatory.Observation, error)
}

// ArtifactStore persists generated artifacts.
type ArtifactStore interface {
	Save(ctx context.Context, artifact models.Artifact) error
	Get(ctx context.Context, id domain.VisualizationID) (models.Artifact, error)
	List(ctx context.Context, limit int) ([]models.Artifact, error)
}

// Service runs the pipeline and serves stored artifacts.
type Service struct {
	source    ObservationSource
	catalog   *epoch.Catalog
	renderer  render.Renderer
	store     ArtifactStore
	publisher events.Publisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
	tracer    trace.Tracer
}

// NewService constructs the pipeline service.
func NewService(
	source ObservationSource,
	catalog *epoch.Catalog,
	renderer render.Renderer,
	store ArtifactStore,
	publisher events.Publisher,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Service {
	return &Service{
		source:    source,
		catalog:   catalog,
		renderer:  renderer,
		store:     store,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
		tracer:    otel.Tracer("m87hey/visualization"),
	}
}

// Generate runs the full pipeline for one epoch and persists the artifact.
func (s *Service) Generate(ctx context.Context, period domain.Period) (models.Artifact, error) {
	ctx, span := s.tracer.Start(ctx, "visualization.generate",
		trace.WithAttributes(attribute.String("period", period.String())))
	defer span.End()

	artifact, err := s.generate(ctx, period)
	if err != nil {
		span.RecordError(err)
		s.metrics.IncVisualizationGenerated(period.String(), "error")
		return models.Artifact{}, err
	}

	s.metrics.IncVisualizationGenerated(period.String(), "success")
	events.Emit(ctx, s.logger, s.publisher, events.CategoryPipeline, "visualization.generated",
		"visualization_id", artifact.ID.String(),
		"period", period.String(),
		"data_source", string(artifact.DataSource),
	)
	return artifact, nil
}

func (s *Service) generate(ctx context.Context, period domain.Period) (models.Artifact, error) {
	rec, err := s.catalog.Get(period)
	if err != nil {
		return models.Artifact{}, dErrors.Wrap(err, dErrors.CodeNotFound, "unknown epoch")
	}
	spectrum, err := s.catalog.Spectrum(period)
	if err != nil {
		return models.Artifact{}, dErrors.Wrap(err, dErrors.CodeNotFound, "unknown epoch")
	}

	start := time.Now()
	obs, err := s.source.FetchObservation(ctx)
	if err != nil {
		return models.Artifact{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "fetch observation")
	}
	s.stage("fetch", start)

	quality := observatory.ValidateQuality(observatory.QualityInput{
		Observation:     obs,
		SpectrumSamples: spectrum.Len(),
		Description:     rec.Description,
		// The observatory site is static configuration, never absent.
		HasEarthPosition: true,
	})
	if !quality.Valid {
		s.logger.WarnContext(ctx, "observation quality check found missing fields",
			"period", period.String(),
			"missing_fields", strings.Join(quality.MissingFields, ","),
			"score", quality.Score,
		)
	}
	if quality.TooLow() {
		return models.Artifact{}, dErrors.New(dErrors.CodeUnprocessable, "observation quality too low to proceed")
	}

	transform, err := lensing.NewLensTransform(obs.Lens, obs.Redshift)
	if err != nil {
		return models.Artifact{}, dErrors.Wrap(err, dErrors.CodeUnprocessable, "lens parameters outside model domain")
	}

	start = time.Now()
	lensedSpectrum, err := transform.TransformSpectrum(spectrum)
	if err != nil {
		return models.Artifact{}, dErrors.Wrap(err, dErrors.CodeUnprocessable, "transform spectrum")
	}
	s.stage("spectrum", start)

	prompt := render.BuildPrompt(rec.Description, rec.Atmosphere)

	start = time.Now()
	base, err := s.renderer.Render(ctx, prompt, frameWidth, frameHeight)
	if err != nil {
		return models.Artifact{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "render frame")
	}
	s.stage("render", start)

	start = time.Now()
	lensed, err := transform.Apply(base, sourceOffset)
	if err != nil {
		return models.Artifact{}, dErrors.Wrap(err, dErrors.CodeInternal, "apply lens transform")
	}
	s.stage("lens", start)

	start = time.Now()
	enhanced, err := render.EnhanceImage(lensed, lensedSpectrum)
	if err != nil {
		return models.Artifact{}, dErrors.Wrap(err, dErrors.CodeInternal, "enhance frame")
	}
	encoded, err := render.EncodePNG(enhanced)
	if err != nil {
		return models.Artifact{}, dErrors.Wrap(err, dErrors.CodeInternal, "encode frame")
	}
	s.stage("encode", start)

	magnification, err := obs.Lens.Magnification()
	if err != nil {
		return models.Artifact{}, dErrors.Wrap(err, dErrors.CodeInternal, "lens magnification")
	}

	artifact := models.Artifact{
		ID:            domain.NewVisualizationID(),
		Period:        period,
		Description:   rec.Description,
		Prompt:        prompt,
		QualityScore:  quality.Score,
		DataSource:    obs.Source,
		DistanceLY:    obs.DistanceLightYears,
		LookbackYears: rec.Lookback(),
		Magnification: magnification,
		Width:         enhanced.Width(),
		Height:        enhanced.Height(),
		ImagePNG:      encoded,
		CreatedAt:     time.Now().UTC(),
	}

	start = time.Now()
	if err := s.store.Save(ctx, artifact); err != nil {
		return models.Artifact{}, dErrors.Wrap(err, dErrors.CodeInternal, "save artifact")
	}
	s.stage("persist", start)

	return artifact, nil
}

// GenerateEvolution runs the pipeline for every epoch, oldest first. Epoch
// failures do not abort the batch; each entry reports its own outcome.
func (s *Service) GenerateEvolution(ctx context.Context) models.EvolutionResult {
	ctx, span := s.tracer.Start(ctx, "visualization.evolution")
	defer span.End()

	startedAt := time.Now().UTC()
	epochs := s.catalog.All()
	entries := make([]models.EvolutionEntry, len(epochs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(evolutionConcurrency)
	for i, rec := range epochs {
		g.Go(func() error {
			artifact, err := s.Generate(gctx, rec.Period)
			if err != nil {
				entries[i] = models.EvolutionEntry{Period: rec.Period, Error: err.Error()}
				return nil
			}
			meta := artifact.WithoutImage()
			entries[i] = models.EvolutionEntry{Period: rec.Period, Artifact: &meta}
			return nil
		})
	}
	_ = g.Wait()

	succeeded := 0
	for _, e := range entries {
		if e.Error == "" {
			succeeded++
		}
	}
	s.logger.InfoContext(ctx, "evolution run finished",
		"epochs", len(entries),
		"succeeded", succeeded,
	)
	return models.EvolutionResult{
		Entries:   entries,
		Succeeded: succeeded,
		StartedAt: startedAt,
	}
}

// Epochs lists the catalog, oldest first.
func (s *Service) Epochs() []models.EpochRecord {
	records := s.catalog.All()
	out := make([]models.EpochRecord, 0, len(records))
	for _, rec := range records {
		atmosphere := make([]models.GasFraction, 0, len(rec.Atmosphere))
		for _, gf := range rec.Atmosphere {
			atmosphere = append(atmosphere, models.GasFraction{Gas: gf.Gas, Fraction: gf.Fraction})
		}
		out = append(out, models.EpochRecord{
			Period:        rec.Period,
			TimeYears:     rec.TimeYears,
			LookbackYears: rec.Lookback(),
			Description:   rec.Description,
			Atmosphere:    atmosphere,
		})
	}
	return out
}

// Spectrum returns an epoch's emission spectrum lensed by the current
// observation.
func (s *Service) Spectrum(ctx context.Context, period domain.Period) (models.SpectrumResponse, error) {
	spectrum, err := s.catalog.Spectrum(period)
	if err != nil {
		return models.SpectrumResponse{}, dErrors.Wrap(err, dErrors.CodeNotFound, "unknown epoch")
	}

	obs, err := s.source.FetchObservation(ctx)
	if err != nil {
		return models.SpectrumResponse{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "fetch observation")
	}

	transform, err := lensing.NewLensTransform(obs.Lens, obs.Redshift)
	if err != nil {
		return models.SpectrumResponse{}, dErrors.Wrap(err, dErrors.CodeUnprocessable, "lens parameters outside model domain")
	}
	lensed, err := transform.TransformSpectrum(spectrum)
	if err != nil {
		return models.SpectrumResponse{}, dErrors.Wrap(err, dErrors.CodeUnprocessable, "transform spectrum")
	}
	magnification, err := obs.Lens.Magnification()
	if err != nil {
		return models.SpectrumResponse{}, dErrors.Wrap(err, dErrors.CodeInternal, "lens magnification")
	}

	return models.SpectrumResponse{
		Period:        period,
		DataSource:    obs.Source,
		Redshift:      obs.Redshift,
		Magnification: magnification,
		WavelengthsNM: lensed.Wavelengths,
		Intensity:     lensed.Intensity,
	}, nil
}

// Artifact returns one stored artifact including the encoded frame.
func (s *Service) Artifact(ctx context.Context, id domain.VisualizationID) (models.Artifact, error) {
	return s.store.Get(ctx, id)
}

// Artifacts lists stored artifact metadata, newest first.
func (s *Service) Artifacts(ctx context.Context, limit int) ([]models.Artifact, error) {
	return s.store.List(ctx, limit)
}

func (s *Service) stage(name string, start time.Time) {
	s.metrics.ObservePipelineStage(name, time.Since(start))
}
