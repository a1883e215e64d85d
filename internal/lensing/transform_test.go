package lensing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTransform(t *testing.T, er, shear, convergence, redshift float64) *LensTransform {
	t.Helper()
	lt, err := NewLensTransform(mustParams(t, er, shear, convergence), redshift)
	require.NoError(t, err)
	return lt
}

func TestNewLensTransform(t *testing.T) {
	t.Run("valid construction", func(t *testing.T) {
		lt := mustTransform(t, 0.1, 0.1, 0.2, 0.00436)
		assert.Equal(t, 0.00436, lt.Redshift())
		assert.Equal(t, 0.2, lt.Params().Convergence)
	})

	t.Run("convergence pole fails at construction", func(t *testing.T) {
		_, err := NewLensTransform(LensParameters{EinsteinRadius: 0.1, Convergence: 1}, 0)
		assert.ErrorIs(t, err, ErrDomain)
	})

	t.Run("redshift at or below -1 fails", func(t *testing.T) {
		for _, z := range []float64{-1, -2, math.NaN(), math.Inf(1)} {
			_, err := NewLensTransform(LensParameters{EinsteinRadius: 0.1}, z)
			assert.ErrorIs(t, err, ErrDomain, "z = %v", z)
		}
	})
}

// TestApply_ReferenceScenario pins the numbers for the M87 reference
// configuration: einstein radius 0.1, shear 0.1, convergence 0.2, source
// position (0.5, 0.5), 100x100 all-ones input.
func TestApply_ReferenceScenario(t *testing.T) {
	lt := mustTransform(t, 0.1, 0.1, 0.2, 0.00436)

	img, err := NewImageFilled(100, 100, 1)
	require.NoError(t, err)

	out, err := lt.Apply(img, AngularPosition{ThetaX: 0.5, ThetaY: 0.5})
	require.NoError(t, err)

	require.Equal(t, 100, out.Width())
	require.Equal(t, 100, out.Height())

	// The deflection is about 0.06 in both axes, so every pixel whose four
	// taps stay in bounds interpolates to exactly 1 and picks up the full
	// magnification 1/(1-0.2)^2.
	const mu = 1.5625
	for _, p := range [][2]int{{0, 0}, {50, 50}, {98, 98}, {0, 98}, {98, 0}} {
		assert.InDelta(t, mu, out.At(p[0], p[1]), 1e-9, "pixel %v", p)
	}

	// Pixels in the last row and column lose the taps shifted past the
	// edge; those contributions fill with zero.
	assert.Less(t, out.At(99, 99), mu)
	assert.Greater(t, out.At(99, 99), 0.0)
}

func TestApply_ShapePreservation(t *testing.T) {
	lt := mustTransform(t, 0.1, 0.1, 0.2, 0)

	for _, dims := range [][2]int{{1, 1}, {5, 3}, {64, 64}, {100, 1}, {1, 100}} {
		img, err := NewImageFilled(dims[0], dims[1], 2)
		require.NoError(t, err)

		out, err := lt.Apply(img, AngularPosition{ThetaX: 0.3, ThetaY: -0.4})
		require.NoError(t, err)
		assert.Equal(t, dims[0], out.Width(), "dims %v", dims)
		assert.Equal(t, dims[1], out.Height(), "dims %v", dims)
	}
}

// TestApply_PureResampling checks the convergence-zero case against the
// analytic value: for an image whose intensity is the linear ramp 3y + x,
// bilinear interpolation reproduces the ramp exactly at the shifted
// coordinate, and no extra scaling is applied.
func TestApply_PureResampling(t *testing.T) {
	lt := mustTransform(t, 0.1, 0, 0, 0)

	img, err := ImageFromRows([][]float64{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
	})
	require.NoError(t, err)

	// Position (1, 1): deflection er^2 * theta_x / theta^2 = 0.005 on each
	// axis, no shear.
	out, err := lt.Apply(img, AngularPosition{ThetaX: 1, ThetaY: 1})
	require.NoError(t, err)

	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			want := 3*(float64(y)+0.005) + (float64(x) + 0.005)
			assert.InDelta(t, want, out.At(x, y), 1e-9, "pixel (%d,%d)", x, y)
		}
	}
}

func TestApply_MagnificationScaling(t *testing.T) {
	img, err := NewImageFilled(16, 16, 3)
	require.NoError(t, err)
	pos := AngularPosition{ThetaX: 0.5, ThetaY: 0.5}

	flat := mustTransform(t, 0.1, 0.1, 0, 0)
	base, err := flat.Apply(img, pos)
	require.NoError(t, err)

	magnified := mustTransform(t, 0.1, 0.1, 0.2, 0)
	scaled, err := magnified.Apply(img, pos)
	require.NoError(t, err)

	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			assert.InDelta(t, base.At(x, y)*1.5625, scaled.At(x, y), 1e-9,
				"pixel (%d,%d)", x, y)
		}
	}
}

// TestApply_NearIdentity forces the deflection to a numerically negligible
// magnitude: with zero shear, a vanishing einstein radius, and a large
// radial position, the output equals the magnified input within
// interpolation tolerance.
func TestApply_NearIdentity(t *testing.T) {
	lt := mustTransform(t, 1e-9, 0, 0.2, 0)

	rows := make([][]float64, 8)
	for y := range rows {
		rows[y] = make([]float64, 8)
		for x := range rows[y] {
			rows[y][x] = float64(y*8+x) + 0.5
		}
	}
	img, err := ImageFromRows(rows)
	require.NoError(t, err)

	out, err := lt.Apply(img, AngularPosition{ThetaX: 10, ThetaY: 10})
	require.NoError(t, err)

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			assert.InDelta(t, img.At(x, y)*1.5625, out.At(x, y), 1e-9,
				"pixel (%d,%d)", x, y)
		}
	}
}

// TestApply_OutOfBoundsFill drives the deflection past the image extent so
// every sampled coordinate lands outside the grid.
func TestApply_OutOfBoundsFill(t *testing.T) {
	lt := mustTransform(t, 10, 0, 0.2, 0)

	img, err := NewImageFilled(10, 10, 5)
	require.NoError(t, err)

	// theta = 5, deflection magnitude 100/5 = 20; dx = 12, dy = 16.
	out, err := lt.Apply(img, AngularPosition{ThetaX: 3, ThetaY: 4})
	require.NoError(t, err)

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			assert.Zero(t, out.At(x, y), "pixel (%d,%d)", x, y)
		}
	}
}

func TestApply_Finiteness(t *testing.T) {
	lt := mustTransform(t, 0.1, 0.1, 0.2, 0)

	rows := make([][]float64, 20)
	for y := range rows {
		rows[y] = make([]float64, 20)
		for x := range rows[y] {
			rows[y][x] = float64((x*y)%7) + 0.25
		}
	}
	img, err := ImageFromRows(rows)
	require.NoError(t, err)

	out, err := lt.Apply(img, AngularPosition{ThetaX: 0.2, ThetaY: -0.3})
	require.NoError(t, err)

	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			v := out.At(x, y)
			assert.False(t, math.IsNaN(v) || math.IsInf(v, 0), "pixel (%d,%d) = %v", x, y, v)
			assert.GreaterOrEqual(t, v, 0.0, "pixel (%d,%d)", x, y)
		}
	}
}

func TestApply_LensCenterFails(t *testing.T) {
	lt := mustTransform(t, 0.1, 0.1, 0.2, 0)
	img, err := NewImageFilled(4, 4, 1)
	require.NoError(t, err)

	_, err = lt.Apply(img, AngularPosition{})
	assert.ErrorIs(t, err, ErrDomain)
}

func TestApply_ConvergencePoleFailsBeforePixelWork(t *testing.T) {
	// Bypass the constructor to simulate parameters drifting to the pole;
	// Apply still refuses before touching any pixel.
	lt := &LensTransform{
		params: LensParameters{EinsteinRadius: 0.1, Convergence: 1},
		field:  &DeflectionField{params: LensParameters{EinsteinRadius: 0.1, Convergence: 1}},
	}
	img, err := NewImageFilled(4, 4, 1)
	require.NoError(t, err)

	_, err = lt.Apply(img, AngularPosition{ThetaX: 0.5, ThetaY: 0.5})
	assert.ErrorIs(t, err, ErrDomain)
}

func TestApply_NilImage(t *testing.T) {
	lt := mustTransform(t, 0.1, 0.1, 0.2, 0)
	_, err := lt.Apply(nil, AngularPosition{ThetaX: 0.5, ThetaY: 0.5})
	assert.ErrorIs(t, err, ErrShape)
}

func TestTransformSpectrum(t *testing.T) {
	const z = 0.00436
	lt := mustTransform(t, 0.1, 0.1, 0.2, z)

	t.Run("exact elementwise scaling", func(t *testing.T) {
		in := Spectrum{
			Wavelengths: []float64{200, 650, 1400, 2000},
			Intensity:   []float64{1, 0.3, 0.7, 2},
		}

		out, err := lt.TransformSpectrum(in)
		require.NoError(t, err)
		require.Equal(t, in.Len(), out.Len())

		scale := 1 + z
		for i := range in.Wavelengths {
			assert.Equal(t, in.Wavelengths[i]*scale, out.Wavelengths[i], "wavelength %d", i)
			assert.Equal(t, in.Intensity[i]*1.2, out.Intensity[i], "intensity %d", i)
		}
	})

	t.Run("preserves strict wavelength ordering", func(t *testing.T) {
		in := Spectrum{
			Wavelengths: []float64{200.0, 200.1, 200.2},
			Intensity:   []float64{1, 1, 1},
		}
		out, err := lt.TransformSpectrum(in)
		require.NoError(t, err)
		for i := 1; i < out.Len(); i++ {
			assert.Greater(t, out.Wavelengths[i], out.Wavelengths[i-1])
		}
	})

	t.Run("input is not mutated", func(t *testing.T) {
		in := Spectrum{Wavelengths: []float64{500}, Intensity: []float64{3}}
		_, err := lt.TransformSpectrum(in)
		require.NoError(t, err)
		assert.Equal(t, 500.0, in.Wavelengths[0])
		assert.Equal(t, 3.0, in.Intensity[0])
	})

	t.Run("empty spectrum passes through", func(t *testing.T) {
		out, err := lt.TransformSpectrum(Spectrum{})
		require.NoError(t, err)
		assert.Zero(t, out.Len())
	})

	t.Run("length mismatch fails", func(t *testing.T) {
		_, err := lt.TransformSpectrum(Spectrum{
			Wavelengths: []float64{500, 600},
			Intensity:   []float64{1},
		})
		assert.ErrorIs(t, err, ErrDomain)
	})

	t.Run("non-increasing wavelengths fail", func(t *testing.T) {
		_, err := lt.TransformSpectrum(Spectrum{
			Wavelengths: []float64{500, 500},
			Intensity:   []float64{1, 1},
		})
		assert.ErrorIs(t, err, ErrDomain)
	})

	t.Run("non-positive wavelength fails", func(t *testing.T) {
		_, err := lt.TransformSpectrum(Spectrum{
			Wavelengths: []float64{0, 500},
			Intensity:   []float64{1, 1},
		})
		assert.ErrorIs(t, err, ErrDomain)
	})

	t.Run("negative intensity fails", func(t *testing.T) {
		_, err := lt.TransformSpectrum(Spectrum{
			Wavelengths: []float64{500},
			Intensity:   []float64{-1},
		})
		assert.ErrorIs(t, err, ErrDomain)
	})
}

func TestSpectrumClone(t *testing.T) {
	in := Spectrum{Wavelengths: []float64{500, 600}, Intensity: []float64{1, 2}}
	clone := in.Clone()
	clone.Wavelengths[0] = 999
	clone.Intensity[0] = 999

	assert.Equal(t, 500.0, in.Wavelengths[0])
	assert.Equal(t, 1.0, in.Intensity[0])
}
