package quality

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/john-holland/heycern-m87hey/internal/platform/events"
	"github.com/john-holland/heycern-m87hey/internal/platform/metrics"
)

// Service runs improvement reviews against the loaded rules.
type Service struct {
	rules     Rules
	publisher events.Publisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
	now       func() time.Time
}

// NewService constructs the review service.
func NewService(rules Rules, publisher events.Publisher, m *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		rules:     rules,
		publisher: publisher,
		metrics:   m,
		logger:    logger,
		now:       time.Now,
	}
}

// Review scores every area against the observed state and raises
// suggestions for areas below the review threshold, capped at the
// per-run maximum. Areas are scored in rule-file order, so the cap keeps
// the earliest listed areas.
func (s *Service) Review(ctx context.Context, obs Observed) Review {
	review := Review{
		Scores:      make([]AreaScore, 0, len(s.rules.Areas)),
		Suggestions: []Suggestion{},
		ReviewedAt:  s.now().UTC(),
	}

	for _, area := range s.rules.Areas {
		score := scoreArea(area, obs)
		review.Scores = append(review.Scores, AreaScore{Area: area.Name, Score: score})
		s.metrics.SetQualityAreaScore(area.Name, score)

		if score >= s.rules.Automated.ReviewThreshold {
			continue
		}
		if len(review.Suggestions) >= s.rules.Automated.MaxImprovementsPerRun {
			continue
		}
		review.Suggestions = append(review.Suggestions, s.buildSuggestion(area, score))
	}

	s.metrics.IncQualityReview()
	events.Emit(ctx, s.logger, s.publisher, events.CategoryOperations, "quality.reviewed",
		"areas", strconv.Itoa(len(review.Scores)),
		"suggestions", strconv.Itoa(len(review.Suggestions)),
	)
	return review
}

// scoreArea combines the coverage of the area's target files with its
// observed metric values. Files and metrics absent from the observation
// contribute nothing, but absent files still widen the denominator, so
// unmeasured files drag the score down. An area with no observed metrics
// scores zero outright.
func scoreArea(area Area, obs Observed) float64 {
	fileCoverage := 0.0
	for _, file := range area.TargetFiles {
		if fc, ok := obs.Files[file]; ok {
			fileCoverage += fc.Coverage
		}
	}

	var metricScores []float64
	for _, name := range area.Metrics {
		if v, ok := obs.Metrics[name]; ok {
			metricScores = append(metricScores, v)
		}
	}
	if len(metricScores) == 0 {
		return 0
	}

	total := fileCoverage
	for _, v := range metricScores {
		total += v
	}
	return total / float64(len(area.TargetFiles)+len(metricScores))
}

func (s *Service) buildSuggestion(area Area, score float64) Suggestion {
	suggestion := Suggestion{
		Area:             area.Name,
		Description:      area.Description,
		TargetFiles:      area.TargetFiles,
		CurrentScore:     score,
		SuggestedChanges: []string{},
		CommitMessage:    commitMessage(s.rules.Automated.CommitMessageTemplate, area),
	}

	switch area.Name {
	case AreaSpectralAccuracy:
		t := s.rules.Targets.Spectral
		suggestion.SuggestedChanges = []string{
			fmt.Sprintf("Increase wavelength resolution to %v nm", t.MinWavelengthResolution),
			"Add missing absorption features: " + strings.Join(t.RequiredAbsorptionFeatures, ", "),
			fmt.Sprintf("Extend wavelength range to %d nm", t.WavelengthRange),
		}
	case AreaLensingAccuracy:
		t := s.rules.Targets.Lensing
		suggestion.SuggestedChanges = []string{
			fmt.Sprintf("Improve deflection angle accuracy to %v", t.MinDeflectionAccuracy),
			"Implement missing effects: " + strings.Join(t.RequiredEffects, ", "),
		}
	case AreaVisualizationQuality:
		t := s.rules.Targets.Visualization
		suggestion.SuggestedChanges = []string{
			"Increase resolution to " + t.MinResolution,
			fmt.Sprintf("Increase color depth to %d bits", t.ColorDepth),
			"Add missing elements: " + strings.Join(t.RequiredElements, ", "),
		}
	}
	return suggestion
}

func commitMessage(template string, area Area) string {
	return strings.NewReplacer(
		"{area}", area.Name,
		"{description}", area.Description,
	).Replace(template)
}
