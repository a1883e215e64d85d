package lensing

import "fmt"

// Spectrum is a pair of index-aligned sequences: wavelengths (strictly
// increasing, positive) and intensities (finite, non-negative).
type Spectrum struct {
	Wavelengths []float64
	Intensity   []float64
}

// Len returns the number of samples.
func (s Spectrum) Len() int { return len(s.Wavelengths) }

// Validate checks the spectrum invariants.
func (s Spectrum) Validate() error {
	if len(s.Wavelengths) != len(s.Intensity) {
		return fmt.Errorf("spectrum length mismatch: %d wavelengths, %d intensities: %w",
			len(s.Wavelengths), len(s.Intensity), ErrDomain)
	}
	for i, w := range s.Wavelengths {
		if !isFinite(w) || w <= 0 {
			return fmt.Errorf("wavelength[%d] = %v must be positive and finite: %w", i, w, ErrDomain)
		}
		if i > 0 && w <= s.Wavelengths[i-1] {
			return fmt.Errorf("wavelengths not strictly increasing at index %d: %w", i, ErrDomain)
		}
	}
	for i, v := range s.Intensity {
		if !isFinite(v) || v < 0 {
			return fmt.Errorf("intensity[%d] = %v must be non-negative and finite: %w", i, v, ErrDomain)
		}
	}
	return nil
}

// Linspace returns n evenly spaced values from lo to hi inclusive. The
// endpoints are exact.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	span := hi - lo
	for i := range out {
		out[i] = lo + span*float64(i)/float64(n-1)
	}
	return out
}

// Clone returns a deep copy.
func (s Spectrum) Clone() Spectrum {
	out := Spectrum{
		Wavelengths: make([]float64, len(s.Wavelengths)),
		Intensity:   make([]float64, len(s.Intensity)),
	}
	copy(out.Wavelengths, s.Wavelengths)
	copy(out.Intensity, s.Intensity)
	return out
}
