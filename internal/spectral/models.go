// Package spectral derives epoch life-and-atmosphere analyses from the
// lensed spectra. The analyzers return the archive's published reference
// record per epoch and publish every measurement as a gauge.
package spectral

import (
	"time"

	"github.com/john-holland/heycern-m87hey/pkg/domain"
)

// GasAnalysis is one detected gas with its measured concentration and the
// detection confidence. Slices keep the archive's publication order.
type GasAnalysis struct {
	Gas           string  `json:"gas"`
	Concentration float64 `json:"concentration"`
	Confidence    float64 `json:"confidence"`
}

// AtmosphereAnalysis is the atmospheric block of an analysis.
type AtmosphereAnalysis struct {
	PrimaryGases   []GasAnalysis `json:"primary_gases"`
	TraceGases     []GasAnalysis `json:"trace_gases"`
	PressureBar    float64       `json:"atmospheric_pressure"`
	TemperatureK   float64       `json:"temperature"`
	CloudCoverage  float64       `json:"cloud_coverage"`
	AerosolContent float64       `json:"aerosol_content"`
}

// Phytoplankton is the surface-ocean chlorophyll signature.
type Phytoplankton struct {
	Concentration    float64 `json:"concentration"`
	Confidence       float64 `json:"confidence"`
	SpeciesDiversity float64 `json:"species_diversity"`
}

// CreatureSighting is a detected animal population.
type CreatureSighting struct {
	Present       bool    `json:"presence"`
	Confidence    float64 `json:"confidence"`
	EstimatedSize string  `json:"estimated_size"`
	SpeciesType   string  `json:"species_type"`
}

// CoralReefs is the reef-system signature.
type CoralReefs struct {
	Coverage  float64 `json:"coverage"`
	Health    float64 `json:"health"`
	Diversity float64 `json:"diversity"`
}

// DeepSeaCreatures is the bioluminescence signature below the photic zone.
type DeepSeaCreatures struct {
	Bioluminescence float64 `json:"bioluminescence"`
	DepthRange      string  `json:"depth_range"`
	Confidence      float64 `json:"confidence"`
}

// MarineAnalysis is the ocean-life block of an analysis.
type MarineAnalysis struct {
	Phytoplankton    Phytoplankton    `json:"phytoplankton"`
	LargePredators   CreatureSighting `json:"large_predators"`
	CoralReefs       CoralReefs       `json:"coral_reefs"`
	DeepSeaCreatures DeepSeaCreatures `json:"deep_sea_creatures"`
}

// Vegetation is the land-plant signature.
type Vegetation struct {
	Coverage      float64  `json:"coverage"`
	Diversity     float64  `json:"diversity"`
	DominantTypes []string `json:"dominant_types"`
	Confidence    float64  `json:"confidence"`
}

// InsectLife is the arthropod signature.
type InsectLife struct {
	Diversity  float64 `json:"diversity"`
	Abundance  float64 `json:"abundance"`
	Confidence float64 `json:"confidence"`
}

// TerrestrialAnalysis is the land-life block of an analysis.
type TerrestrialAnalysis struct {
	Vegetation      Vegetation       `json:"vegetation"`
	LargeHerbivores CreatureSighting `json:"large_herbivores"`
	Predators       CreatureSighting `json:"predators"`
	InsectLife      InsectLife       `json:"insect_life"`
}

// Finding is one unexpected signature in the spectral data.
type Finding struct {
	Type         string  `json:"type"`
	Description  string  `json:"description"`
	Significance float64 `json:"significance"`
	Confidence   float64 `json:"confidence"`
}

// ConfidenceScores summarizes per-aspect detection confidence.
type ConfidenceScores struct {
	Atmospheric float64 `json:"atmospheric_analysis"`
	Marine      float64 `json:"marine_life_detection"`
	Terrestrial float64 `json:"terrestrial_life_detection"`
	Unexpected  float64 `json:"unexpected_findings"`
	Overall     float64 `json:"overall_confidence"`
}

// Analysis is the full spectral analysis for one epoch.
type Analysis struct {
	Period      domain.Period       `json:"period"`
	Atmosphere  AtmosphereAnalysis  `json:"atmospheric_composition"`
	Marine      MarineAnalysis      `json:"marine_life"`
	Terrestrial TerrestrialAnalysis `json:"terrestrial_life"`
	Unexpected  []Finding           `json:"unexpected_findings"`
	Confidence  ConfidenceScores    `json:"confidence_scores"`
	AnalyzedAt  time.Time           `json:"analyzed_at"`
}

// SignificanceFloor is the cutoff below which findings stay out of report
// highlights.
const SignificanceFloor = 0.7

// SignificantFindings returns the findings whose significance exceeds the
// floor, in publication order.
func (a Analysis) SignificantFindings() []Finding {
	var out []Finding
	for _, f := range a.Unexpected {
		if f.Significance > SignificanceFloor {
			out = append(out, f)
		}
	}
	return out
}
