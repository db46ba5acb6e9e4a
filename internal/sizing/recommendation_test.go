package sizing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecommendation(t *testing.T) {
	target := referenceTarget(t)
	chosen := &PanelConfig{PanelsCount: 28, YearlyEnergyDcKwh: 16240}

	rec, ok := NewRecommendation(chosen, DefaultPanelWatts, PerformanceRatio, target)
	require.True(t, ok)

	assert.InDelta(t, 11.2, rec.SystemSizeKw, 1e-9)
	assert.Equal(t, 28, rec.PanelCount)
	assert.Equal(t, DefaultPanelWatts, rec.PanelWattage)
	assert.Equal(t, 16240.0, rec.DcProductionKwh)
	assert.InDelta(t, 13804, rec.AcProductionKwh, 1e-6)
	assert.InDelta(t, 100.654, rec.OffsetPercentage, 0.001)
	assert.Equal(t, 13804.0, rec.DisplayAcProductionKwh())
	assert.Equal(t, 100.7, rec.DisplayOffsetPercentage())
}

func TestNewRecommendation_None(t *testing.T) {
	rec, ok := NewRecommendation(nil, DefaultPanelWatts, PerformanceRatio, 1000)
	assert.False(t, ok)
	assert.Equal(t, Recommendation{}, rec)
}

func TestNewRecommendation_ZeroUsage(t *testing.T) {
	chosen := &PanelConfig{PanelsCount: 10, YearlyEnergyDcKwh: 5800}
	rec, ok := NewRecommendation(chosen, DefaultPanelWatts, PerformanceRatio, 0)
	require.True(t, ok)
	assert.Zero(t, rec.OffsetPercentage)
	assert.InDelta(t, 4930, rec.AcProductionKwh, 1e-6)
}

func TestSize(t *testing.T) {
	potential := SolarPotential{PanelCapacityWatts: DefaultPanelWatts, Configs: homesteadConfigs()}

	t.Run("reference scenario", func(t *testing.T) {
		out, err := Size(BillingInput{MonthlyBill: 160, RatePerKwh: 0.14}, potential, PerformanceRatio)
		require.NoError(t, err)
		assert.True(t, out.Found)
		assert.True(t, out.Matched)
		assert.Equal(t, 28, out.Recommendation.PanelCount)
		assert.InDelta(t, 13714.29, out.AnnualKwh, 0.01)
		assert.Len(t, out.Evaluations, 5)
	})

	t.Run("undersized roof", func(t *testing.T) {
		capped := SolarPotential{PanelCapacityWatts: 400, Configs: homesteadConfigs()[:2]}
		out, err := Size(BillingInput{MonthlyBill: 160, RatePerKwh: 0.14}, capped, PerformanceRatio)
		require.NoError(t, err)
		assert.True(t, out.Found)
		assert.False(t, out.Matched)
		assert.Equal(t, 15, out.Recommendation.PanelCount)
	})

	t.Run("no configs", func(t *testing.T) {
		out, err := Size(BillingInput{MonthlyBill: 160, RatePerKwh: 0.14}, SolarPotential{PanelCapacityWatts: 400}, PerformanceRatio)
		require.NoError(t, err)
		assert.False(t, out.Found)
		assert.False(t, out.Matched)
	})

	t.Run("invalid rate", func(t *testing.T) {
		_, err := Size(BillingInput{MonthlyBill: 160, RatePerKwh: 0}, potential, PerformanceRatio)
		assert.ErrorIs(t, err, ErrInvalidRate)
	})
}
