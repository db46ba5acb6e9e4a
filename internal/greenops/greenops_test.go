package greenops

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimate(t *testing.T) {
	impact, err := Estimate(13804, DefaultGridIntensityKgPerKwh)
	require.NoError(t, err)

	assert.InDelta(t, 5148.892, impact.AvoidedKg, 1e-6)
	require.Len(t, impact.Equivalencies, 3)
	assert.Equal(t, EquivalencyMilesDriven, impact.Equivalencies[0].Type)
	assert.Equal(t, "26,817", impact.Equivalencies[0].FormattedValue)
	assert.Equal(t, "86", impact.Equivalencies[1].FormattedValue)
	assert.Equal(t, "281", impact.Equivalencies[2].FormattedValue)
	assert.Equal(t, "like not driving ~26,817 miles or growing ~86 tree seedlings for 10 years", impact.DisplayText)
}

func TestEstimate_BelowThreshold(t *testing.T) {
	impact, err := Estimate(2, 0.373)
	require.NoError(t, err)
	assert.InDelta(t, 0.746, impact.AvoidedKg, 1e-9)
	assert.Empty(t, impact.Equivalencies)
	assert.Empty(t, impact.DisplayText)
}

func TestEstimate_Errors(t *testing.T) {
	_, err := Estimate(-1, 0.373)
	require.ErrorIs(t, err, ErrNegativeValue)

	for _, v := range []float64{0, -0.2, math.NaN(), math.Inf(1)} {
		_, err = Estimate(100, v)
		require.ErrorIs(t, err, ErrInvalidIntensity, "intensity %v", v)
	}
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "5,149 kg", FormatKg(5148.892))
	assert.Equal(t, "25.0 t", FormatKg(25000))
	assert.Equal(t, "18,248", FormatNumber(18248))
	assert.Equal(t, "~1.5 million", FormatLarge(1_500_000))
	assert.Equal(t, "~1.5 billion", FormatLarge(1_500_000_000))
	assert.Equal(t, "999", FormatLarge(999.4))
}

func TestEquivalencyType_String(t *testing.T) {
	assert.Equal(t, "MilesDriven", EquivalencyMilesDriven.String())
	assert.Equal(t, "HomeDays", EquivalencyHomeDays.String())
	assert.Equal(t, "EquivalencyType(9)", EquivalencyType(9).String())
}
