package calculator

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kcalvin/solarsizer/internal/provider"
	"github.com/kcalvin/solarsizer/internal/sizing"
)

func ptr[T any](v T) *T { return &v }

func homesteadInsights() *provider.BuildingInsights {
	return &provider.BuildingInsights{
		SolarPotential: &provider.SolarPotential{
			PanelCapacityWatts: ptr(400.0),
			SolarPanelConfigs: []provider.PanelConfig{
				{PanelsCount: 10, YearlyEnergyDcKwh: 5800},
				{PanelsCount: 20, YearlyEnergyDcKwh: 11600},
				{PanelsCount: 28, YearlyEnergyDcKwh: 16240},
				{PanelsCount: 35, YearlyEnergyDcKwh: 20300},
			},
		},
	}
}

func TestRequest_Rate(t *testing.T) {
	assert.InDelta(t, 0.14, Request{}.Rate(0.14), 1e-12)
	assert.InDelta(t, 0.2, Request{RatePerKwh: ptr(0.2)}.Rate(0.14), 1e-12)
	assert.InDelta(t, 0.3, Request{ElectricityRate: ptr(0.3), RatePerKwh: ptr(0.2)}.Rate(0.14), 1e-12)
}

func TestCalculate_Matched(t *testing.T) {
	res, err := Calculate(Request{
		MonthlyBill:         160,
		ElectricityRate:     ptr(0.14),
		GoogleSolarResponse: homesteadInsights(),
	}, DefaultOptions())
	require.NoError(t, err)

	assert.InDelta(t, 160.0, res.InputBill, 1e-9)
	assert.InDelta(t, 13714.0, res.AnnualUsageKwh, 1e-9)
	assert.True(t, res.FoundSolution)
	assert.True(t, res.Matched)
	assert.Equal(t, OutcomeMatched, res.Outcome())
	require.NotNil(t, res.Recommendation)
	assert.Equal(t, 28, res.Recommendation.PanelCount)
	assert.InDelta(t, 11.2, res.Recommendation.SystemSizeKw, 1e-9)
	assert.InDelta(t, 400.0, res.Recommendation.PanelWattage, 1e-9)
	assert.InDelta(t, 13804.0, res.Recommendation.AcProductionKwh, 1e-9)
	assert.InDelta(t, 100.7, res.Recommendation.OffsetPercentage, 1e-9)
	assert.Len(t, res.Evaluations, 3)
}

func TestCalculate_Fallback(t *testing.T) {
	bi := homesteadInsights()
	bi.SolarPotential.SolarPanelConfigs = []provider.PanelConfig{
		{PanelsCount: 15, YearlyEnergyDcKwh: 8700},
		{PanelsCount: 10, YearlyEnergyDcKwh: 5800},
	}
	res, err := Calculate(Request{MonthlyBill: 160, GoogleSolarResponse: bi}, DefaultOptions())
	require.NoError(t, err)

	assert.True(t, res.FoundSolution)
	assert.False(t, res.Matched)
	assert.Equal(t, OutcomeFallback, res.Outcome())
	assert.Equal(t, 15, res.Recommendation.PanelCount)
	assert.InDelta(t, 53.9, res.Recommendation.OffsetPercentage, 1e-9)
}

func TestCalculate_NoConfigs(t *testing.T) {
	res, err := Calculate(Request{MonthlyBill: 100}, DefaultOptions())
	require.NoError(t, err)
	assert.False(t, res.FoundSolution)
	assert.Nil(t, res.Recommendation)
	assert.Equal(t, OutcomeNone, res.Outcome())

	data, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"input_bill": 100,
		"appx_annual_usage_kwh": 8571,
		"found_solution": false,
		"recommendation": {}
	}`, string(data))
}

func TestCalculate_DefaultWatts(t *testing.T) {
	bi := homesteadInsights()
	bi.SolarPotential.PanelCapacityWatts = nil
	opts := DefaultOptions()
	opts.DefaultPanelWatts = 350

	res, err := Calculate(Request{MonthlyBill: 160, GoogleSolarResponse: bi}, opts)
	require.NoError(t, err)
	assert.InDelta(t, 350.0, res.Recommendation.PanelWattage, 1e-9)
	assert.InDelta(t, 9.8, res.Recommendation.SystemSizeKw, 1e-9)
}

func TestCalculate_ZeroBill(t *testing.T) {
	res, err := Calculate(Request{MonthlyBill: 0, GoogleSolarResponse: homesteadInsights()}, DefaultOptions())
	require.NoError(t, err)
	assert.True(t, res.Matched)
	assert.Equal(t, 10, res.Recommendation.PanelCount)
	assert.Zero(t, res.Recommendation.OffsetPercentage)
}

func TestCalculate_Errors(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want error
	}{
		{"zero rate", Request{MonthlyBill: 100, ElectricityRate: ptr(0.0)}, sizing.ErrInvalidRate},
		{"negative alias rate", Request{MonthlyBill: 100, RatePerKwh: ptr(-0.1)}, sizing.ErrInvalidRate},
		{"negative bill", Request{MonthlyBill: -1}, sizing.ErrInvalidBill},
		{"infinite bill", Request{MonthlyBill: math.Inf(1)}, sizing.ErrInvalidBill},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Calculate(tt.req, DefaultOptions())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestResult_MarshalJSON(t *testing.T) {
	res, err := Calculate(Request{MonthlyBill: 160, GoogleSolarResponse: homesteadInsights()}, DefaultOptions())
	require.NoError(t, err)

	data, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"input_bill": 160,
		"appx_annual_usage_kwh": 13714,
		"found_solution": true,
		"recommendation": {
			"system_size_kw": 11.2,
			"panel_count": 28,
			"panel_wattage": 400,
			"est_annual_production_ac_kwh": 13804,
			"offset_percentage": 100.7
		}
	}`, string(data))
}

func TestOptions_Validate(t *testing.T) {
	require.NoError(t, DefaultOptions().Validate())

	o := DefaultOptions()
	o.PerformanceRatio = 1.5
	assert.ErrorIs(t, o.Validate(), sizing.ErrInvalidPerformanceRatio)

	o = DefaultOptions()
	o.DefaultPanelWatts = 0
	assert.Error(t, o.Validate())
}
