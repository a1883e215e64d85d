// Package lensing implements the point-mass-plus-shear gravitational lens
// transform: a per-position deflection field, backward-mapped image
// resampling with bilinear interpolation and magnification, and a
// redshift/convergence spectrum transform.
//
// The package is pure. It performs no I/O and no logging; every operation is
// a deterministic function of its inputs and the immutable LensParameters
// held by the transform.
package lensing

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors returned by this package. Callers match with errors.Is.
var (
	// ErrDomain reports an input outside the mathematical domain of the
	// lens model: a zero radial position, convergence at or above the
	// magnification pole, a non-positive einstein radius, or a malformed
	// spectrum.
	ErrDomain = errors.New("lensing: domain error")

	// ErrShape reports image dimensions that are zero or inconsistent.
	ErrShape = errors.New("lensing: shape error")

	// ErrNumericAnomaly reports a non-finite computed value despite
	// satisfied preconditions. It signals a modeling bug and fails loudly
	// rather than letting NaN propagate downstream.
	ErrNumericAnomaly = errors.New("lensing: numeric anomaly")
)

// LensParameters is the immutable configuration of a gravitational lens.
// Construct with NewLensParameters; instances are never mutated.
type LensParameters struct {
	// EinsteinRadius is the characteristic angular scale of the lens, in
	// the same angular unit as every AngularPosition passed to the
	// transform (arcseconds for the M87 record). Must be positive.
	EinsteinRadius float64

	// Shear is the constant external shear applied to both axes.
	Shear float64

	// Convergence is the dimensionless surface mass density. Must stay
	// below 1; the magnification factor 1/(1-convergence)^2 has a pole
	// there.
	Convergence float64
}

// NewLensParameters validates and returns an immutable parameter record.
func NewLensParameters(einsteinRadius, shear, convergence float64) (LensParameters, error) {
	p := LensParameters{
		EinsteinRadius: einsteinRadius,
		Shear:          shear,
		Convergence:    convergence,
	}
	if err := p.Validate(); err != nil {
		return LensParameters{}, err
	}
	return p, nil
}

// Validate checks the mathematical preconditions of the lens model.
func (p LensParameters) Validate() error {
	if !isFinite(p.EinsteinRadius) || !isFinite(p.Shear) || !isFinite(p.Convergence) {
		return fmt.Errorf("non-finite lens parameter: %w", ErrDomain)
	}
	if p.EinsteinRadius <= 0 {
		return fmt.Errorf("einstein radius %v must be positive: %w", p.EinsteinRadius, ErrDomain)
	}
	if p.Convergence >= 1 {
		return fmt.Errorf("convergence %v at or above magnification pole: %w", p.Convergence, ErrDomain)
	}
	return nil
}

// Magnification returns the global magnification factor 1/(1-convergence)^2.
func (p LensParameters) Magnification() (float64, error) {
	if p.Convergence >= 1 {
		return 0, fmt.Errorf("convergence %v at or above magnification pole: %w", p.Convergence, ErrDomain)
	}
	d := 1 - p.Convergence
	return 1 / (d * d), nil
}

// AngularPosition is a source-plane coordinate relative to the lens center,
// in the same angular unit as the einstein radius.
type AngularPosition struct {
	ThetaX float64
	ThetaY float64
}

// DeflectionVector is the angular displacement computed for one position.
type DeflectionVector struct {
	DX float64
	DY float64
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
