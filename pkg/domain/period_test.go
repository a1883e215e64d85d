package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "github.com/john-holland/heycern-m87hey/pkg/domain-errors"
)

func TestParsePeriod(t *testing.T) {
	t.Run("accepts every supported period", func(t *testing.T) {
		for _, want := range Periods() {
			got, err := ParsePeriod(want.String())
			require.NoError(t, err)
			assert.Equal(t, want, got)
		}
	})

	t.Run("rejects empty input", func(t *testing.T) {
		_, err := ParsePeriod("")
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects unknown period", func(t *testing.T) {
		_, err := ParsePeriod("jurassic")
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeInvalidInput))
	})

	t.Run("is case sensitive", func(t *testing.T) {
		_, err := ParsePeriod("Cretaceous")
		require.Error(t, err)
	})
}

func TestPeriods_ChronologicalOrder(t *testing.T) {
	want := []Period{
		PeriodEarlyEarth,
		PeriodArchaean,
		PeriodProterozoic,
		PeriodCambrian,
		PeriodTriassic,
		PeriodCretaceous,
	}
	assert.Equal(t, want, Periods())
}
