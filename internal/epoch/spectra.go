package epoch

import (
	"github.com/john-holland/heycern-m87hey/internal/lensing"
	"github.com/john-holland/heycern-m87hey/pkg/domain"
)

const (
	spectrumSamples = 1000
	wavelengthMin   = 200.0 // nm
	wavelengthMax   = 2000.0
)

// bandEdit multiplies intensity inside an exclusive wavelength window.
// A zero High means the band is open-ended above Low.
type bandEdit struct {
	Low    float64
	High   float64
	Factor float64
}

// spectrumEdits lists each epoch's band edits in application order. Where
// windows overlap the factors compose.
var spectrumEdits = map[domain.Period][]bandEdit{
	domain.PeriodEarlyEarth: {
		// Intense thermal emission from the molten surface.
		{Low: 1000, Factor: 2.0},
		// Strong CO2 absorption.
		{Low: 400, High: 500, Factor: 0.3},
		// Volcanic ash absorption.
		{Low: 600, High: 800, Factor: 0.7},
	},
	domain.PeriodArchaean: {
		// Methane absorption bands.
		{Low: 700, High: 800, Factor: 0.6},
		{Low: 400, High: 500, Factor: 0.5},
		// First signs of biological activity.
		{Low: 500, High: 600, Factor: 1.2},
	},
	domain.PeriodProterozoic: {
		// Oxygen absorption bands.
		{Low: 600, High: 700, Factor: 0.8},
		{Low: 400, High: 500, Factor: 0.7},
		{Low: 500, High: 600, Factor: 1.3},
	},
	domain.PeriodCambrian: {
		// Complex biological signatures.
		{Low: 500, High: 700, Factor: 1.4},
		{Low: 600, High: 700, Factor: 0.9},
		// Ocean reflection.
		{Low: 400, High: 500, Factor: 1.2},
	},
	domain.PeriodTriassic: {
		// Gymnosperm vegetation signature.
		{Low: 500, High: 700, Factor: 1.3},
		// Desert and arid region signatures.
		{Low: 700, High: 900, Factor: 1.2},
		{Low: 400, High: 500, Factor: 0.8},
	},
	domain.PeriodCretaceous: {
		// Flowering plant signatures.
		{Low: 500, High: 700, Factor: 1.5},
		// Tropical forest signatures.
		{Low: 600, High: 800, Factor: 1.3},
		{Low: 400, High: 500, Factor: 1.2},
	},
}

// buildSpectrum generates the canned emission spectrum for a period:
// a flat baseline of 1.0 over 1000 evenly spaced samples between 200 and
// 2000 nm, with the epoch's band edits applied.
func buildSpectrum(p domain.Period) lensing.Spectrum {
	s := lensing.Spectrum{
		Wavelengths: lensing.Linspace(wavelengthMin, wavelengthMax, spectrumSamples),
		Intensity:   make([]float64, spectrumSamples),
	}
	for i := range s.Intensity {
		s.Intensity[i] = 1.0
	}
	for _, edit := range spectrumEdits[p] {
		applyBandEdit(s, edit)
	}
	return s
}

func applyBandEdit(s lensing.Spectrum, edit bandEdit) {
	for i, w := range s.Wavelengths {
		if w <= edit.Low {
			continue
		}
		if edit.High != 0 && w >= edit.High {
			continue
		}
		s.Intensity[i] *= edit.Factor
	}
}
