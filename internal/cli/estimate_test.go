package cli_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kcalvin/solarsizer/internal/greenops"
	"github.com/kcalvin/solarsizer/internal/sizing"
)

func TestEstimate_SampleRoofPlain(t *testing.T) {
	setupCLITest(t)

	out, err := runCLI(t, "estimate", "--bill", "160")
	require.NoError(t, err)

	assert.Contains(t, out, "Roof data:          built-in sample")
	assert.Contains(t, out, "Annual usage:       13,714 kWh")
	assert.Contains(t, out, "Recommended system: 28 panels x 400 W = 11.2 kW")
	assert.Contains(t, out, "100.7% offset")
	assert.Contains(t, out, "Avoided emissions:  5,149 kg CO2e/yr, like not driving ~26,817 miles")
	assert.NotContains(t, out, "[WARN]")
}

func TestEstimate_InvalidGridIntensity(t *testing.T) {
	setupCLITest(t)

	_, err := runCLI(t, "estimate", "--bill", "160", "--grid-intensity", "0")
	require.ErrorIs(t, err, greenops.ErrInvalidIntensity)
}

func TestEstimate_JSON(t *testing.T) {
	setupCLITest(t)

	out, err := runCLI(t, "estimate", "--bill", "160", "--output", "json")
	require.NoError(t, err)

	var got struct {
		InputBill      float64 `json:"input_bill"`
		AnnualUsage    float64 `json:"appx_annual_usage_kwh"`
		FoundSolution  bool    `json:"found_solution"`
		Recommendation struct {
			SystemSizeKw float64 `json:"system_size_kw"`
			PanelCount   int     `json:"panel_count"`
			Offset       float64 `json:"offset_percentage"`
		} `json:"recommendation"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.InDelta(t, 160.0, got.InputBill, 1e-9)
	assert.InDelta(t, 13714.0, got.AnnualUsage, 1e-9)
	assert.True(t, got.FoundSolution)
	assert.Equal(t, 28, got.Recommendation.PanelCount)
	assert.InDelta(t, 11.2, got.Recommendation.SystemSizeKw, 1e-9)
	assert.InDelta(t, 100.7, got.Recommendation.Offset, 1e-9)
}

func TestEstimate_FallbackWarning(t *testing.T) {
	setupCLITest(t)

	out, err := runCLI(t, "estimate", "--bill", "400")
	require.NoError(t, err)
	assert.Contains(t, out, "[WARN] No configuration fully meets 100% usage. Selecting largest available.")
	assert.Contains(t, out, "35 panels")
}

func TestEstimate_InsightsFile(t *testing.T) {
	setupCLITest(t)

	path := filepath.Join(t.TempDir(), "insights.json")
	data := `{"solarPotential": {"panelCapacityWatts": 250, "solarPanelConfigs": [
		{"panelsCount": 4, "yearlyEnergyDcKwh": 2000},
		{"panelsCount": 8, "yearlyEnergyDcKwh": 4000}]}}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	out, err := runCLI(t, "estimate", "--bill", "15", "--rate", "0.12", "--insights", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Roof data:          "+path)
	assert.Contains(t, out, "Recommended system: 4 panels x 250 W = 1.0 kW")
}

func TestEstimate_InvalidRate(t *testing.T) {
	setupCLITest(t)

	_, err := runCLI(t, "estimate", "--bill", "160", "--rate", "0")
	require.Error(t, err)
	assert.ErrorIs(t, err, sizing.ErrInvalidRate)
}

func TestEstimate_RequiresBill(t *testing.T) {
	setupCLITest(t)

	_, err := runCLI(t, "estimate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bill")
}

func TestEstimate_UnsupportedOutput(t *testing.T) {
	setupCLITest(t)

	_, err := runCLI(t, "estimate", "--bill", "160", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}
