// Package epoch holds the historical-Earth catalog: six geological periods
// from early Earth to the late Cretaceous, each with a canned emission
// spectrum, an atmospheric composition, and a description used for prompt
// construction.
package epoch

import (
	"fmt"

	"github.com/john-holland/heycern-m87hey/internal/lensing"
	"github.com/john-holland/heycern-m87hey/pkg/domain"
	"github.com/john-holland/heycern-m87hey/pkg/platform/sentinel"
)

// GasFraction is one entry of an atmospheric composition. Order is
// significant: prompt text renders gases in catalog order.
type GasFraction struct {
	Gas      string
	Fraction float64
}

// Epoch is one catalog record.
type Epoch struct {
	Period      domain.Period
	TimeYears   float64 // negative, years relative to present
	Description string
	Atmosphere  []GasFraction
}

// Lookback returns how far in the past the epoch lies, in years.
func (e Epoch) Lookback() float64 { return -e.TimeYears }

// Catalog is the immutable set of supported epochs with precomputed spectra.
type Catalog struct {
	records map[domain.Period]Epoch
	spectra map[domain.Period]lensing.Spectrum
}

// NewCatalog builds the catalog and precomputes every epoch spectrum.
func NewCatalog() *Catalog {
	c := &Catalog{
		records: make(map[domain.Period]Epoch, len(catalogRecords)),
		spectra: make(map[domain.Period]lensing.Spectrum, len(catalogRecords)),
	}
	for _, rec := range catalogRecords {
		c.records[rec.Period] = rec
		c.spectra[rec.Period] = buildSpectrum(rec.Period)
	}
	return c
}

// Get returns the catalog record for a period.
func (c *Catalog) Get(p domain.Period) (Epoch, error) {
	rec, ok := c.records[p]
	if !ok {
		return Epoch{}, fmt.Errorf("epoch %q: %w", p, sentinel.ErrNotFound)
	}
	return rec, nil
}

// All returns every epoch in chronological order, oldest first.
func (c *Catalog) All() []Epoch {
	out := make([]Epoch, 0, len(c.records))
	for _, p := range domain.Periods() {
		if rec, ok := c.records[p]; ok {
			out = append(out, rec)
		}
	}
	return out
}

// Spectrum returns a copy of the precomputed emission spectrum for a period.
func (c *Catalog) Spectrum(p domain.Period) (lensing.Spectrum, error) {
	s, ok := c.spectra[p]
	if !ok {
		return lensing.Spectrum{}, fmt.Errorf("epoch %q: %w", p, sentinel.ErrNotFound)
	}
	return s.Clone(), nil
}

var catalogRecords = []Epoch{
	{
		Period:      domain.PeriodEarlyEarth,
		TimeYears:   -4_500_000_000,
		Description: "Early Earth, shortly after formation, with intense volcanic activity and no atmosphere",
		Atmosphere: []GasFraction{
			{Gas: "CO2", Fraction: 0.98},
			{Gas: "N2", Fraction: 0.01},
			{Gas: "H2O", Fraction: 0.01},
		},
	},
	{
		Period:      domain.PeriodArchaean,
		TimeYears:   -3_500_000_000,
		Description: "Archaean Earth with first signs of life and reducing atmosphere",
		Atmosphere: []GasFraction{
			{Gas: "CO2", Fraction: 0.70},
			{Gas: "N2", Fraction: 0.20},
			{Gas: "CH4", Fraction: 0.05},
			{Gas: "H2O", Fraction: 0.05},
		},
	},
	{
		Period:      domain.PeriodProterozoic,
		TimeYears:   -2_000_000_000,
		Description: "Proterozoic Earth with first oxygen-producing organisms",
		Atmosphere: []GasFraction{
			{Gas: "CO2", Fraction: 0.30},
			{Gas: "N2", Fraction: 0.60},
			{Gas: "O2", Fraction: 0.05},
			{Gas: "H2O", Fraction: 0.05},
		},
	},
	{
		Period:      domain.PeriodCambrian,
		TimeYears:   -500_000_000,
		Description: "Cambrian Earth with explosion of complex life",
		Atmosphere: []GasFraction{
			{Gas: "CO2", Fraction: 0.15},
			{Gas: "N2", Fraction: 0.70},
			{Gas: "O2", Fraction: 0.10},
			{Gas: "H2O", Fraction: 0.05},
		},
	},
	{
		Period:      domain.PeriodTriassic,
		TimeYears:   -200_000_000,
		Description: "Triassic Earth with first dinosaurs and gymnosperms",
		Atmosphere: []GasFraction{
			{Gas: "CO2", Fraction: 0.20},
			{Gas: "N2", Fraction: 0.65},
			{Gas: "O2", Fraction: 0.10},
			{Gas: "H2O", Fraction: 0.05},
		},
	},
	{
		Period:      domain.PeriodCretaceous,
		TimeYears:   -65_000_000,
		Description: "Late Cretaceous Earth with diverse dinosaurs and flowering plants",
		Atmosphere: []GasFraction{
			{Gas: "CO2", Fraction: 0.15},
			{Gas: "N2", Fraction: 0.70},
			{Gas: "O2", Fraction: 0.10},
			{Gas: "H2O", Fraction: 0.05},
		},
	},
}
