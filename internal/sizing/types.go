// Package sizing provides residential solar system sizing calculations.
//
// It converts a monthly electric bill into an estimated annual consumption
// and selects, from a list of candidate panel configurations, the smallest
// configuration whose derated (AC) annual production covers that
// consumption. When no configuration is large enough the largest one is
// returned as an undersized fallback.
//
// Everything in this package is pure and safe for concurrent use with
// independent inputs.
package sizing

// BillingInput is the customer-supplied billing information.
type BillingInput struct {
	// MonthlyBill is the average monthly electricity bill in currency units.
	MonthlyBill float64 `json:"monthly_bill"`

	// RatePerKwh is the electricity price in currency units per kWh.
	// Must be greater than zero.
	RatePerKwh float64 `json:"rate_per_kwh"`
}

// PanelConfig is one candidate system size offered by the solar provider.
type PanelConfig struct {
	// PanelsCount is the number of panels in the configuration.
	PanelsCount int `json:"panelsCount"`

	// YearlyEnergyDcKwh is the DC-rated yearly yield of the configuration.
	YearlyEnergyDcKwh float64 `json:"yearlyEnergyDcKwh"`
}

// AcProductionKwh returns the derated yearly AC production of the config.
func (c PanelConfig) AcProductionKwh(performanceRatio float64) float64 {
	return c.YearlyEnergyDcKwh * performanceRatio
}

// SystemSizeKw returns the nameplate size of the config in kilowatts.
func (c PanelConfig) SystemSizeKw(panelWattage float64) float64 {
	return float64(c.PanelsCount) * panelWattage / wattsPerKilowatt
}

// SolarPotential is the roof potential reported by the provider, with
// defaults already applied.
type SolarPotential struct {
	// PanelCapacityWatts is the rated wattage of a single panel.
	PanelCapacityWatts float64 `json:"panelCapacityWatts"`

	// Configs lists the candidate configurations. Uniqueness of
	// PanelsCount is not enforced.
	Configs []PanelConfig `json:"solarPanelConfigs"`
}

// Recommendation is the recommended system derived from a chosen config.
// Values keep full precision; use the Display helpers for rounded output.
type Recommendation struct {
	// SystemSizeKw is PanelsCount * PanelWattage / 1000.
	SystemSizeKw float64 `json:"system_size_kw"`

	// PanelCount is the number of panels in the chosen config.
	PanelCount int `json:"panel_count"`

	// PanelWattage is the per-panel rating used for the size calculation.
	PanelWattage float64 `json:"panel_wattage"`

	// DcProductionKwh is the provider's DC yearly yield for the config.
	DcProductionKwh float64 `json:"-"`

	// AcProductionKwh is DcProductionKwh after derating.
	AcProductionKwh float64 `json:"est_annual_production_ac_kwh"`

	// OffsetPercentage is AcProductionKwh / annual usage * 100, or 0 when
	// the annual usage is zero.
	OffsetPercentage float64 `json:"offset_percentage"`
}

// DisplayAcProductionKwh returns AC production rounded to whole kWh.
func (r Recommendation) DisplayAcProductionKwh() float64 {
	return RoundTo(r.AcProductionKwh, 0)
}

// DisplayOffsetPercentage returns the offset rounded to one decimal place.
func (r Recommendation) DisplayOffsetPercentage() float64 {
	return RoundTo(r.OffsetPercentage, 1)
}

// Evaluation is one row of a selection scan, used for tabular output.
type Evaluation struct {
	PanelsCount     int     `json:"panels_count"`
	SystemSizeKw    float64 `json:"system_size_kw"`
	AcProductionKwh float64 `json:"ac_production_kwh"`
	CoveragePercent float64 `json:"coverage_percent"`
	MeetsTarget     bool    `json:"meets_target"`
}
