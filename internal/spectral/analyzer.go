package spectral

import (
	"context"
	"log/slog"
	"time"

	"github.com/john-holland/heycern-m87hey/internal/platform/metrics"
	"github.com/john-holland/heycern-m87hey/pkg/domain"
)

// Analyzer produces spectral analyses and publishes their gauges.
type Analyzer struct {
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewAnalyzer constructs an Analyzer.
func NewAnalyzer(m *metrics.Metrics, logger *slog.Logger) *Analyzer {
	return &Analyzer{metrics: m, logger: logger}
}

// Analyze returns the analysis for one epoch and publishes its measurements.
// The archive publishes a single reference record; every epoch reports it
// until per-epoch spectrometer ingestion exists.
func (a *Analyzer) Analyze(ctx context.Context, period domain.Period) Analysis {
	analysis := Analysis{
		Period:      period,
		Atmosphere:  referenceAtmosphere(),
		Marine:      referenceMarine(),
		Terrestrial: referenceTerrestrial(),
		Unexpected:  referenceFindings(),
		Confidence: ConfidenceScores{
			Atmospheric: 0.92,
			Marine:      0.85,
			Terrestrial: 0.88,
			Unexpected:  0.79,
			Overall:     0.86,
		},
		AnalyzedAt: time.Now().UTC(),
	}

	a.publishGauges(analysis)
	a.logger.InfoContext(ctx, "spectral analysis complete",
		"period", period.String(),
		"findings", len(analysis.Unexpected),
		"overall_confidence", analysis.Confidence.Overall,
	)
	return analysis
}

func referenceAtmosphere() AtmosphereAnalysis {
	return AtmosphereAnalysis{
		PrimaryGases: []GasAnalysis{
			{Gas: "CO2", Concentration: 0.35, Confidence: 0.95},
			{Gas: "O2", Concentration: 0.21, Confidence: 0.98},
			{Gas: "N2", Concentration: 0.78, Confidence: 0.99},
			{Gas: "CH4", Concentration: 0.001, Confidence: 0.92},
		},
		TraceGases: []GasAnalysis{
			{Gas: "H2O", Concentration: 0.02, Confidence: 0.94},
			{Gas: "Ar", Concentration: 0.009, Confidence: 0.97},
			{Gas: "Ne", Concentration: 0.00002, Confidence: 0.91},
		},
		PressureBar:    1.013,
		TemperatureK:   288.15,
		CloudCoverage:  0.65,
		AerosolContent: 0.12,
	}
}

func referenceMarine() MarineAnalysis {
	return MarineAnalysis{
		Phytoplankton: Phytoplankton{
			Concentration:    0.15,
			Confidence:       0.88,
			SpeciesDiversity: 0.75,
		},
		LargePredators: CreatureSighting{
			Present:       true,
			Confidence:    0.82,
			EstimatedSize: "15-20m",
			SpeciesType:   "ichthyosaur",
		},
		CoralReefs: CoralReefs{
			Coverage:  0.35,
			Health:    0.85,
			Diversity: 0.78,
		},
		DeepSeaCreatures: DeepSeaCreatures{
			Bioluminescence: 0.45,
			DepthRange:      "200-1000m",
			Confidence:      0.79,
		},
	}
}

func referenceTerrestrial() TerrestrialAnalysis {
	return TerrestrialAnalysis{
		Vegetation: Vegetation{
			Coverage:      0.65,
			Diversity:     0.82,
			DominantTypes: []string{"gymnosperms", "ferns"},
			Confidence:    0.91,
		},
		LargeHerbivores: CreatureSighting{
			Present:       true,
			EstimatedSize: "20-25m",
			SpeciesType:   "sauropod",
			Confidence:    0.85,
		},
		Predators: CreatureSighting{
			Present:       true,
			EstimatedSize: "10-12m",
			SpeciesType:   "theropod",
			Confidence:    0.83,
		},
		InsectLife: InsectLife{
			Diversity:  0.78,
			Abundance:  0.65,
			Confidence: 0.87,
		},
	}
}

func referenceFindings() []Finding {
	return []Finding{
		{
			Type:         "atmospheric_anomaly",
			Description:  "Unusual concentration of noble gases",
			Significance: 0.75,
			Confidence:   0.82,
		},
		{
			Type:         "biological_signature",
			Description:  "Unknown photosynthetic pigment",
			Significance: 0.88,
			Confidence:   0.79,
		},
		{
			Type:         "geological_feature",
			Description:  "Volcanic activity signature",
			Significance: 0.65,
			Confidence:   0.91,
		},
	}
}

// publishGauges mirrors the archive's metric naming: aspect, subject,
// measure. Primary gases only; trace gases stay report-only.
func (a *Analyzer) publishGauges(analysis Analysis) {
	for _, gas := range analysis.Atmosphere.PrimaryGases {
		a.metrics.SetSpectralGauge("atmosphere", gas.Gas, "concentration", gas.Concentration)
		a.metrics.SetSpectralGauge("atmosphere", gas.Gas, "confidence", gas.Confidence)
	}

	a.metrics.SetSpectralGauge("marine", "phytoplankton", "concentration", analysis.Marine.Phytoplankton.Concentration)
	a.metrics.SetSpectralGauge("marine", "large_predators", "confidence", analysis.Marine.LargePredators.Confidence)

	a.metrics.SetSpectralGauge("terrestrial", "vegetation", "coverage", analysis.Terrestrial.Vegetation.Coverage)
	a.metrics.SetSpectralGauge("terrestrial", "predators", "confidence", analysis.Terrestrial.Predators.Confidence)

	for _, finding := range analysis.Unexpected {
		a.metrics.SetSpectralGauge("unexpected", finding.Type, "significance", finding.Significance)
		a.metrics.SetSpectralGauge("unexpected", finding.Type, "confidence", finding.Confidence)
	}

	a.metrics.SetSpectralGauge("confidence", "atmospheric_analysis", "score", analysis.Confidence.Atmospheric)
	a.metrics.SetSpectralGauge("confidence", "marine_life_detection", "score", analysis.Confidence.Marine)
	a.metrics.SetSpectralGauge("confidence", "terrestrial_life_detection", "score", analysis.Confidence.Terrestrial)
	a.metrics.SetSpectralGauge("confidence", "unexpected_findings", "score", analysis.Confidence.Unexpected)
	a.metrics.SetSpectralGauge("confidence", "overall_confidence", "score", analysis.Confidence.Overall)
}
