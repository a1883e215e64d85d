package spectral

import (
	"context"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/john-holland/heycern-m87hey/internal/platform/metrics"
	"github.com/john-holland/heycern-m87hey/pkg/domain"
)

func newAnalyzer() (*Analyzer, *metrics.Metrics) {
	m := metrics.NewForTesting()
	return NewAnalyzer(m, slog.New(slog.DiscardHandler)), m
}

func TestAnalyzeReferenceRecord(t *testing.T) {
	analyzer, _ := newAnalyzer()

	analysis := analyzer.Analyze(context.Background(), domain.PeriodCretaceous)

	assert.Equal(t, domain.PeriodCretaceous, analysis.Period)
	assert.False(t, analysis.AnalyzedAt.IsZero())

	require.Len(t, analysis.Atmosphere.PrimaryGases, 4)
	co2 := analysis.Atmosphere.PrimaryGases[0]
	assert.Equal(t, "CO2", co2.Gas)
	assert.InDelta(t, 0.35, co2.Concentration, 1e-12)
	assert.InDelta(t, 0.95, co2.Confidence, 1e-12)
	require.Len(t, analysis.Atmosphere.TraceGases, 3)
	assert.Equal(t, "Ne", analysis.Atmosphere.TraceGases[2].Gas)
	assert.InDelta(t, 0.00002, analysis.Atmosphere.TraceGases[2].Concentration, 1e-12)
	assert.InDelta(t, 1.013, analysis.Atmosphere.PressureBar, 1e-12)
	assert.InDelta(t, 288.15, analysis.Atmosphere.TemperatureK, 1e-12)

	assert.True(t, analysis.Marine.LargePredators.Present)
	assert.Equal(t, "ichthyosaur", analysis.Marine.LargePredators.SpeciesType)
	assert.Equal(t, "200-1000m", analysis.Marine.DeepSeaCreatures.DepthRange)

	assert.Equal(t, []string{"gymnosperms", "ferns"}, analysis.Terrestrial.Vegetation.DominantTypes)
	assert.Equal(t, "sauropod", analysis.Terrestrial.LargeHerbivores.SpeciesType)
	assert.Equal(t, "theropod", analysis.Terrestrial.Predators.SpeciesType)

	require.Len(t, analysis.Unexpected, 3)
	assert.Equal(t, "biological_signature", analysis.Unexpected[1].Type)
	assert.InDelta(t, 0.86, analysis.Confidence.Overall, 1e-12)
}

func TestAnalyzePublishesGauges(t *testing.T) {
	analyzer, m := newAnalyzer()

	analyzer.Analyze(context.Background(), domain.PeriodTriassic)

	co2 := m.SpectralGauge.WithLabelValues("atmosphere", "CO2", "concentration")
	assert.InDelta(t, 0.35, testutil.ToFloat64(co2), 1e-12)

	veg := m.SpectralGauge.WithLabelValues("terrestrial", "vegetation", "coverage")
	assert.InDelta(t, 0.65, testutil.ToFloat64(veg), 1e-12)

	overall := m.SpectralGauge.WithLabelValues("confidence", "overall_confidence", "score")
	assert.InDelta(t, 0.86, testutil.ToFloat64(overall), 1e-12)

	pigment := m.SpectralGauge.WithLabelValues("unexpected", "biological_signature", "significance")
	assert.InDelta(t, 0.88, testutil.ToFloat64(pigment), 1e-12)
}

func TestSignificantFindings(t *testing.T) {
	analyzer, _ := newAnalyzer()
	analysis := analyzer.Analyze(context.Background(), domain.PeriodCambrian)

	significant := analysis.SignificantFindings()

	require.Len(t, significant, 2)
	assert.Equal(t, "atmospheric_anomaly", significant[0].Type)
	assert.Equal(t, "biological_signature", significant[1].Type)
}

func TestSignificantFindingsExcludesFloor(t *testing.T) {
	analysis := Analysis{Unexpected: []Finding{
		{Type: "at_floor", Significance: SignificanceFloor},
		{Type: "above", Significance: SignificanceFloor + 0.01},
	}}

	significant := analysis.SignificantFindings()

	require.Len(t, significant, 1)
	assert.Equal(t, "above", significant[0].Type)
}
