package lensing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinspace(t *testing.T) {
	t.Run("exact endpoints", func(t *testing.T) {
		w := Linspace(200, 2000, 1000)
		require.Len(t, w, 1000)
		assert.Equal(t, 200.0, w[0])
		assert.Equal(t, 2000.0, w[999])
	})

	t.Run("strictly increasing", func(t *testing.T) {
		w := Linspace(200, 2000, 1000)
		for i := 1; i < len(w); i++ {
			assert.Greater(t, w[i], w[i-1], "index %d", i)
		}
	})

	t.Run("degenerate sizes", func(t *testing.T) {
		assert.Nil(t, Linspace(0, 1, 0))
		assert.Equal(t, []float64{5}, Linspace(5, 9, 1))
		assert.Equal(t, []float64{1, 2}, Linspace(1, 2, 2))
	})
}

func TestSpectrumValidate_LengthAndOrder(t *testing.T) {
	s := Spectrum{
		Wavelengths: Linspace(200, 2000, 50),
		Intensity:   make([]float64, 50),
	}
	require.NoError(t, s.Validate())

	s.Intensity = s.Intensity[:49]
	assert.ErrorIs(t, s.Validate(), ErrDomain)
}
