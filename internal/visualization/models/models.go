// Package models holds the visualization artifact record and the wire DTOs
// of the visualization endpoints.
package models

import (
	"fmt"
	"time"

	"github.com/john-holland/heycern-m87hey/internal/observatory"
	"github.com/john-holland/heycern-m87hey/pkg/domain"
)

// Artifact is one generated visualization: the encoded frame plus the
// pipeline facts needed to reproduce and report it.
type Artifact struct {
	ID            domain.VisualizationID `json:"id"`
	Period        domain.Period          `json:"period"`
	Description   string                 `json:"description"`
	Prompt        string                 `json:"prompt"`
	QualityScore  float64                `json:"quality_score"`
	DataSource    observatory.Source     `json:"data_source"`
	DistanceLY    float64                `json:"distance_light_years"`
	LookbackYears float64                `json:"lookback_years"`
	Magnification float64                `json:"magnification"`
	Width         int                    `json:"width"`
	Height        int                    `json:"height"`
	ImagePNG      []byte                 `json:"image_png,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
}

// FileName is the canonical download and print name for the frame.
func (a Artifact) FileName() string {
	return fmt.Sprintf("m87_lensed_earth_%s.png", a.Period)
}

// WithoutImage returns a metadata-only copy for listings and batch
// responses, so clients fetch the frame bytes only when they want them.
func (a Artifact) WithoutImage() Artifact {
	a.ImagePNG = nil
	return a
}

// GenerateRequest asks for one pipeline run.
type GenerateRequest struct {
	Period string `json:"period"`
}

// ListResponse wraps an artifact listing.
type ListResponse struct {
	Visualizations []Artifact `json:"visualizations"`
	Count          int        `json:"count"`
}

// GasFraction is one gas of an epoch's atmospheric composition, in
// catalog order.
type GasFraction struct {
	Gas      string  `json:"gas"`
	Fraction float64 `json:"fraction"`
}

// EpochRecord is the wire form of one catalog epoch.
type EpochRecord struct {
	Period        domain.Period `json:"period"`
	TimeYears     float64       `json:"time_years"`
	LookbackYears float64       `json:"lookback_years"`
	Description   string        `json:"description"`
	Atmosphere    []GasFraction `json:"atmosphere"`
}

// EpochListResponse wraps the catalog listing, oldest epoch first.
type EpochListResponse struct {
	Epochs []EpochRecord `json:"epochs"`
	Count  int           `json:"count"`
}

// SpectrumResponse is an epoch's emission spectrum as seen through the
// current lens: wavelengths redshifted, intensities gained.
type SpectrumResponse struct {
	Period        domain.Period      `json:"period"`
	DataSource    observatory.Source `json:"data_source"`
	Redshift      float64            `json:"redshift"`
	Magnification float64            `json:"magnification"`
	WavelengthsNM []float64          `json:"wavelengths_nm"`
	Intensity     []float64          `json:"intensity"`
}

// EvolutionEntry is the outcome for one epoch of an evolution run. Failed
// epochs carry the error; successful ones the stored artifact metadata.
type EvolutionEntry struct {
	Period   domain.Period `json:"period"`
	Artifact *Artifact     `json:"artifact,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// EvolutionResult is the batch outcome, oldest epoch first.
type EvolutionResult struct {
	Entries   []EvolutionEntry `json:"entries"`
	Succeeded int              `json:"succeeded"`
	StartedAt time.Time        `json:"started_at"`
}
