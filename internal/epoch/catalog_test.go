package epoch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/john-holland/heycern-m87hey/internal/lensing"
	"github.com/john-holland/heycern-m87hey/pkg/domain"
	"github.com/john-holland/heycern-m87hey/pkg/platform/sentinel"
)

func TestCatalogGet(t *testing.T) {
	c := NewCatalog()

	t.Run("every supported period resolves", func(t *testing.T) {
		for _, p := range domain.Periods() {
			rec, err := c.Get(p)
			require.NoError(t, err, "period %s", p)
			assert.Equal(t, p, rec.Period)
			assert.NotEmpty(t, rec.Description)
			assert.NotEmpty(t, rec.Atmosphere)
			assert.Negative(t, rec.TimeYears)
		}
	})

	t.Run("unknown period is not found", func(t *testing.T) {
		_, err := c.Get(domain.Period("jurassic"))
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("reference record values", func(t *testing.T) {
		rec, err := c.Get(domain.PeriodEarlyEarth)
		require.NoError(t, err)
		assert.Equal(t, -4.5e9, rec.TimeYears)
		assert.Equal(t, 4.5e9, rec.Lookback())
		assert.Equal(t, "Early Earth, shortly after formation, with intense volcanic activity and no atmosphere", rec.Description)
		require.Len(t, rec.Atmosphere, 3)
		assert.Equal(t, GasFraction{Gas: "CO2", Fraction: 0.98}, rec.Atmosphere[0])
		assert.Equal(t, GasFraction{Gas: "N2", Fraction: 0.01}, rec.Atmosphere[1])
		assert.Equal(t, GasFraction{Gas: "H2O", Fraction: 0.01}, rec.Atmosphere[2])
	})

	t.Run("atmosphere fractions sum to one", func(t *testing.T) {
		for _, rec := range c.All() {
			total := 0.0
			for _, gf := range rec.Atmosphere {
				total += gf.Fraction
			}
			assert.InDelta(t, 1.0, total, 1e-9, "period %s", rec.Period)
		}
	})
}

func TestCatalogAll_ChronologicalOrder(t *testing.T) {
	c := NewCatalog()
	all := c.All()
	require.Len(t, all, 6)

	assert.Equal(t, domain.PeriodEarlyEarth, all[0].Period)
	assert.Equal(t, domain.PeriodCretaceous, all[5].Period)
	for i := 1; i < len(all); i++ {
		assert.Greater(t, all[i].TimeYears, all[i-1].TimeYears,
			"catalog must run oldest to newest")
	}
}

func TestCatalogSpectrum(t *testing.T) {
	c := NewCatalog()

	t.Run("shape and range", func(t *testing.T) {
		for _, p := range domain.Periods() {
			s, err := c.Spectrum(p)
			require.NoError(t, err)
			require.Equal(t, 1000, s.Len(), "period %s", p)
			assert.Equal(t, 200.0, s.Wavelengths[0])
			assert.Equal(t, 2000.0, s.Wavelengths[999])
			require.NoError(t, s.Validate(), "period %s", p)
		}
	})

	t.Run("early earth band edits", func(t *testing.T) {
		s, err := c.Spectrum(domain.PeriodEarlyEarth)
		require.NoError(t, err)

		assert.InDelta(t, 0.3, intensityAt(t, s, 450), 1e-9, "CO2 absorption window")
		assert.InDelta(t, 0.7, intensityAt(t, s, 700), 1e-9, "volcanic ash window")
		assert.InDelta(t, 2.0, intensityAt(t, s, 1500), 1e-9, "thermal emission above 1000nm")
		assert.InDelta(t, 1.0, intensityAt(t, s, 550), 1e-9, "untouched window")
	})

	t.Run("overlapping cambrian windows compose", func(t *testing.T) {
		s, err := c.Spectrum(domain.PeriodCambrian)
		require.NoError(t, err)

		// 500-700 x1.4 then 600-700 x0.9.
		assert.InDelta(t, 1.4, intensityAt(t, s, 550), 1e-9)
		assert.InDelta(t, 1.4*0.9, intensityAt(t, s, 650), 1e-9)
		assert.InDelta(t, 1.2, intensityAt(t, s, 450), 1e-9)
	})

	t.Run("band bounds are exclusive", func(t *testing.T) {
		s, err := c.Spectrum(domain.PeriodArchaean)
		require.NoError(t, err)

		// 700 itself sits on the methane band's lower bound; the grid has
		// no sample at exactly 700, so check the neighbors instead.
		below := nearestIndex(s.Wavelengths, 699)
		inside := nearestIndex(s.Wavelengths, 750)
		assert.InDelta(t, 1.0, s.Intensity[below], 1e-9)
		assert.InDelta(t, 0.6, s.Intensity[inside], 1e-9)
	})

	t.Run("returned spectrum is a copy", func(t *testing.T) {
		s1, err := c.Spectrum(domain.PeriodTriassic)
		require.NoError(t, err)
		s1.Intensity[0] = 999

		s2, err := c.Spectrum(domain.PeriodTriassic)
		require.NoError(t, err)
		assert.NotEqual(t, 999.0, s2.Intensity[0])
	})
}

// intensityAt returns the intensity of the sample nearest the wavelength.
func intensityAt(t *testing.T, s lensing.Spectrum, wavelength float64) float64 {
	t.Helper()
	return s.Intensity[nearestIndex(s.Wavelengths, wavelength)]
}

func nearestIndex(wavelengths []float64, target float64) int {
	best := 0
	for i, w := range wavelengths {
		if abs(w-target) < abs(wavelengths[best]-target) {
			best = i
		}
	}
	return best
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
