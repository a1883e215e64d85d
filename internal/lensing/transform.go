package lensing

import (
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// LensTransform resamples images and rescales spectra under a fixed lens.
// One instance per lens record; instances are safe for concurrent use since
// all held state is immutable.
type LensTransform struct {
	params   LensParameters
	field    *DeflectionField
	redshift float64
}

// NewLensTransform builds a transform for the given lens parameters and
// cosmological redshift of the lens. The redshift must be finite and above
// -1 so that wavelength scaling preserves ordering.
func NewLensTransform(params LensParameters, redshift float64) (*LensTransform, error) {
	field, err := NewDeflectionField(params)
	if err != nil {
		return nil, err
	}
	if !isFinite(redshift) || redshift <= -1 {
		return nil, fmt.Errorf("redshift %v out of range: %w", redshift, ErrDomain)
	}
	return &LensTransform{
		params:   params,
		field:    field,
		redshift: redshift,
	}, nil
}

// Params returns the immutable lens parameters.
func (t *LensTransform) Params() LensParameters { return t.params }

// Redshift returns the lens redshift applied to spectra.
func (t *LensTransform) Redshift() float64 { return t.redshift }

// Apply resamples the image through the lens.
//
// A single global deflection vector is computed from sourcePos (the model
// approximates locally-uniform lensing, not ray-by-ray deflection). Every
// output pixel (x, y) backward-samples the input at (x+dx, y+dy) with
// bilinear interpolation; coordinates outside the input grid resolve to the
// fill value zero. The result is scaled by the magnification factor
// 1/(1-convergence)^2.
//
// The output has the same dimensions as the input. Rows are resampled in
// parallel tiles; no output pixel reads another output pixel.
func (t *LensTransform) Apply(img *Image, sourcePos AngularPosition) (*Image, error) {
	if img == nil || img.width <= 0 || img.height <= 0 {
		return nil, fmt.Errorf("invalid input image: %w", ErrShape)
	}

	mu, err := t.params.Magnification()
	if err != nil {
		return nil, err
	}
	vec, err := t.field.Deflect(sourcePos)
	if err != nil {
		return nil, err
	}

	out, err := NewImage(img.width, img.height)
	if err != nil {
		return nil, err
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > img.height {
		workers = img.height
	}
	rowsPerTile := (img.height + workers - 1) / workers

	var g errgroup.Group
	for start := 0; start < img.height; start += rowsPerTile {
		end := min(start+rowsPerTile, img.height)
		g.Go(func() error {
			return resampleRows(img, out, vec, mu, start, end)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func resampleRows(src, dst *Image, vec DeflectionVector, mu float64, start, end int) error {
	for y := start; y < end; y++ {
		sy := float64(y) + vec.DY
		for x := 0; x < src.width; x++ {
			sx := float64(x) + vec.DX
			v := bilinear(src, sx, sy) * mu
			if !isFinite(v) {
				return fmt.Errorf("non-finite sample at output pixel (%d,%d): %w", x, y, ErrNumericAnomaly)
			}
			dst.pix[y*dst.width+x] = v
		}
	}
	return nil
}

// bilinear interpolates over the four input pixels nearest (x, y). Each tap
// outside the grid contributes the fill value zero.
func bilinear(img *Image, x, y float64) float64 {
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	fx := x - x0
	fy := y - y0
	ix := int(x0)
	iy := int(y0)

	v00 := img.tap(ix, iy)
	v10 := img.tap(ix+1, iy)
	v01 := img.tap(ix, iy+1)
	v11 := img.tap(ix+1, iy+1)

	return (1-fx)*(1-fy)*v00 + fx*(1-fy)*v10 + (1-fx)*fy*v01 + fx*fy*v11
}

// TransformSpectrum applies the lens to a spectrum: every wavelength is
// scaled by (1 + redshift) and every intensity by (1 + convergence). This is
// an achromatic simplification, not wavelength-dependent magnification.
func (t *LensTransform) TransformSpectrum(s Spectrum) (Spectrum, error) {
	if err := s.Validate(); err != nil {
		return Spectrum{}, err
	}

	scale := 1 + t.redshift
	gain := 1 + t.params.Convergence

	out := Spectrum{
		Wavelengths: make([]float64, len(s.Wavelengths)),
		Intensity:   make([]float64, len(s.Intensity)),
	}
	for i, w := range s.Wavelengths {
		out.Wavelengths[i] = w * scale
	}
	for i, v := range s.Intensity {
		gained := v * gain
		if !isFinite(gained) {
			return Spectrum{}, fmt.Errorf("non-finite intensity at index %d: %w", i, ErrNumericAnomaly)
		}
		out.Intensity[i] = gained
	}
	return out, nil
}
