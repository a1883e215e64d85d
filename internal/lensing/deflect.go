package lensing

import (
	"fmt"
	"math"
)

// DeflectionField maps angular source-plane positions to deflection vectors
// under the point-mass plus constant external shear model.
type DeflectionField struct {
	params LensParameters
}

// NewDeflectionField validates the parameters and returns a field.
func NewDeflectionField(params LensParameters) (*DeflectionField, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &DeflectionField{params: params}, nil
}

// Params returns the immutable lens parameters held by the field.
func (f *DeflectionField) Params() LensParameters {
	return f.params
}

// Deflect computes the deflection vector for one angular position.
//
// The point-mass deflection magnitude is einsteinRadius^2 / theta with
// theta = sqrt(thetaX^2 + thetaY^2); each component adds shear times the
// coordinate. The deflection grows without bound as theta approaches zero,
// and theta == 0 itself is a genuine singularity: it fails with ErrDomain
// rather than returning a sentinel value, so the lens center can never
// silently alias to an unlensed pixel.
func (f *DeflectionField) Deflect(pos AngularPosition) (DeflectionVector, error) {
	if !isFinite(pos.ThetaX) || !isFinite(pos.ThetaY) {
		return DeflectionVector{}, fmt.Errorf("non-finite angular position (%v, %v): %w", pos.ThetaX, pos.ThetaY, ErrDomain)
	}

	theta := math.Hypot(pos.ThetaX, pos.ThetaY)
	if theta == 0 {
		return DeflectionVector{}, fmt.Errorf("angular position at lens center: %w", ErrDomain)
	}

	m := f.params.EinsteinRadius * f.params.EinsteinRadius / theta
	vec := DeflectionVector{
		DX: m*(pos.ThetaX/theta) + f.params.Shear*pos.ThetaX,
		DY: m*(pos.ThetaY/theta) + f.params.Shear*pos.ThetaY,
	}

	if !isFinite(vec.DX) || !isFinite(vec.DY) {
		return DeflectionVector{}, fmt.Errorf("deflection overflow at theta %v: %w", theta, ErrNumericAnomaly)
	}
	return vec, nil
}
