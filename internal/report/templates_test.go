package report

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/john-holland/heycern-m87hey/internal/auth"
	"github.com/john-holland/heycern-m87hey/internal/platform/metrics"
	"github.com/john-holland/heycern-m87hey/internal/spectral"
	domain "github.com/john-holland/heycern-m87hey/pkg/domain"
)

func referenceAnalysis() spectral.Analysis {
	analyzer := spectral.NewAnalyzer(metrics.NewForTesting(), slog.New(slog.DiscardHandler))
	return analyzer.Analyze(context.Background(), domain.PeriodCretaceous)
}

func rosterChecklist() []auth.ChecklistEntry {
	return []auth.ChecklistEntry{
		{Name: "John Holland", Email: "john.gebhard.holland@gmail.com", Approved: false},
		{Name: "Jane Doe", Email: "jane@example.com", Approved: false},
		{Name: "Project Service Account", Email: "service@project.org", Approved: true},
	}
}

func TestRenderWeekly(t *testing.T) {
	body, err := renderWeekly(weeklyData{
		StartDate:      "2026-08-14",
		EndDate:        "2026-08-21",
		Improvements:   weeklyImprovements,
		Spectrometer:   referenceSpectrometerStats,
		Visualizations: referenceVisualizationStats,
		License:        ProjectLicense,
		Attribution:    ProjectAttribution,
		Contact:        ProjectContact,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(body, "\nM87 Gravitational Lensing Project - Weekly Report\n2026-08-14 to 2026-08-21\n\nProject Overview:\n----------------\n"))
	assert.Contains(t, body, "Improvements Made:\n-----------------\n- spectral_accuracy: Increased wavelength resolution\n  Impact: Improved spectral data quality by 15%\n- lensing_accuracy: Enhanced light path tracking\n  Impact: Improved tracking accuracy by 20%\n")
	assert.Contains(t, body, "Spectrometer Data Analysis:\n-------------------------\n\nResolution: 0.01 nm\nTemporal Resolution: 1ms\nSpatial Resolution: 0.1arcsec\nPath Points: 1500\nInteraction Points: 150\nTracking Accuracy: 95.5%\n\n\nVisualization Statistics:")
	assert.Contains(t, body, "Total Visualizations: 42\nAverage Quality Score: 0.92\nResolution: 4096x4096\nColor Depth: 32-bit\n")
	assert.Contains(t, body, "Data Granularity Metrics:\n-----------------------\n- Spectral Resolution: 0.01 nm\n- Temporal Resolution: 1ms\n- Spatial Resolution: 0.1arcsec\n")
	assert.Contains(t, body, "Light Path Tracking:\n------------------\n- Total Path Points: 1500\n- Interaction Points: 150\n- Accuracy: 95.5%\n")
	assert.Contains(t, body, "License: CC-BY-4.0\nAttribution: M87 Gravitational Lensing Project\nContact: john.gebhard.holland@gmail.com\n")
	assert.True(t, strings.HasSuffix(body, "Best regards,\nM87 Gravitational Lensing Project Team\n"))
}

func TestRenderSpectral(t *testing.T) {
	body, err := renderSpectral(spectralData{
		TimePeriod:  "cretaceous",
		Checklist:   rosterChecklist(),
		KeyFindings: keyFindings(referenceAnalysis()),
		Analysis:    referenceAnalysis(),
		Updates:     referenceVisualizationUpdates,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(body, "\nDear PBS SpaceTime Team,\n"))
	assert.Contains(t, body, "spectral analysis for the cretaceous period.")
	assert.Contains(t, body, "Science Community Source API Token Checklist:\n- [ ] John Holland (john.gebhard.holland@gmail.com)\n- [ ] Jane Doe (jane@example.com)\n- [x] Project Service Account (service@project.org)\n\nKey Findings:")
	assert.Contains(t, body, "Atmospheric Composition:\n----------------------\nPrimary Gases:\n- CO2: 35.0% (Confidence: 95.0%)\n- O2: 21.0% (Confidence: 98.0%)\n- N2: 78.0% (Confidence: 99.0%)\n- CH4: 0.1% (Confidence: 92.0%)\n\nConditions:\n- Pressure: 1.013 bars\n- Temperature: 288.1 K\n- Cloud Coverage: 65.0%\n")
	assert.Contains(t, body, "Phytoplankton:\n- Concentration: 15.0%\n- Species Diversity: 75.0%\n\nLarge Marine Predators:\n- Species: ichthyosaur\n- Estimated Size: 15-20m\n\nCoral Reefs:\n- Coverage: 35.0%\n- Health: 85.0%\n")
	assert.Contains(t, body, "Vegetation:\n- Coverage: 65.0%\n- Diversity: 82.0%\n- Dominant Types: gymnosperms, ferns\n\nLarge Herbivores:\n- Species: sauropod\n- Estimated Size: 20-25m\n\nPredators:\n- Species: theropod\n- Estimated Size: 10-12m\n")
	assert.Contains(t, body, "Unexpected Discoveries:\n---------------------\n- Atmospheric Anomaly:\n  Description: Unusual concentration of noble gases\n  Significance: 75.0%\n  Confidence: 82.0%\n")
	assert.Contains(t, body, "Confidence Assessment:\n-------------------\n- Atmospheric Analysis: 92.0%\n- Marine Life Detection: 85.0%\n- Terrestrial Life Detection: 88.0%\n- Unexpected Findings: 79.0%\n- Overall Confidence: 86.0%\n")
	assert.Contains(t, body, "- Quality score: 92.0%\n- Gravitational lensing apertures: 12\n- Light path convergence points: 1500\n- Spectral integration accuracy: 95.0%\n")
	assert.True(t, strings.HasSuffix(body, "carrying with it the story of Earth's past.\n"))
}

func TestRenderSpectralOmitsAbsentCreatures(t *testing.T) {
	analysis := referenceAnalysis()
	analysis.Marine.LargePredators.Present = false
	analysis.Terrestrial.LargeHerbivores.Present = false

	body, err := renderSpectral(spectralData{
		TimePeriod:  "triassic",
		Checklist:   rosterChecklist(),
		KeyFindings: keyFindings(analysis),
		Analysis:    analysis,
		Updates:     referenceVisualizationUpdates,
	})
	require.NoError(t, err)

	assert.NotContains(t, body, "Large Marine Predators:")
	assert.NotContains(t, body, "Large Herbivores:")
	assert.NotContains(t, body, "ichthyosaur")
	assert.Contains(t, body, "- Species Diversity: 75.0%\n\nCoral Reefs:")
	assert.Contains(t, body, "- Dominant Types: gymnosperms, ferns\n\nPredators:\n- Species: theropod\n")
}

func TestKeyFindings(t *testing.T) {
	lines := keyFindings(referenceAnalysis())

	require.Equal(t, []string{
		"- Atmospheric CO2 levels: 35.0%",
		"- Oxygen concentration: 21.0%",
		"- Marine phytoplankton concentration: 15.0%",
		"- Detected large marine predators: ichthyosaur",
		"- Vegetation coverage: 65.0%",
		"- Detected large herbivores: sauropod",
		"- Unusual concentration of noble gases (Significance: 75.0%)",
		"- Unknown photosynthetic pigment (Significance: 88.0%)",
	}, lines)
}

func TestKeyFindingsSkipsAbsentCreatures(t *testing.T) {
	analysis := referenceAnalysis()
	analysis.Marine.LargePredators.Present = false
	analysis.Terrestrial.LargeHerbivores.Present = false

	lines := keyFindings(analysis)

	assert.NotContains(t, lines, "- Detected large marine predators: ichthyosaur")
	assert.NotContains(t, lines, "- Detected large herbivores: sauropod")
	assert.Contains(t, lines, "- Vegetation coverage: 65.0%")
}

func TestTitleWords(t *testing.T) {
	assert.Equal(t, "Atmospheric Anomaly", titleWords("atmospheric_anomaly"))
	assert.Equal(t, "Geological Feature", titleWords("geological_feature"))
}

func TestFormatPct(t *testing.T) {
	assert.Equal(t, "35.0%", formatPct(0.35))
	assert.Equal(t, "0.1%", formatPct(0.001))
	assert.Equal(t, "95.5%", formatPct(0.955))
}
