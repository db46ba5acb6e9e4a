// Package greenops estimates the carbon emissions a solar system avoids and
// expresses them as relatable equivalencies using EPA-published factors.
package greenops

import "fmt"

// EquivalencyType represents a category of carbon emission equivalency.
type EquivalencyType int

const (
	// EquivalencyMilesDriven converts CO2e to miles driven in an average passenger vehicle.
	EquivalencyMilesDriven EquivalencyType = iota

	// EquivalencyTreeSeedlings converts CO2e to tree seedlings grown for 10 years.
	EquivalencyTreeSeedlings

	// EquivalencyHomeDays converts CO2e to days of average US home electricity use.
	EquivalencyHomeDays
)

// String returns a human-readable representation of the EquivalencyType.
func (e EquivalencyType) String() string {
	switch e {
	case EquivalencyMilesDriven:
		return "MilesDriven"
	case EquivalencyTreeSeedlings:
		return "TreeSeedlings"
	case EquivalencyHomeDays:
		return "HomeDays"
	default:
		return fmt.Sprintf("EquivalencyType(%d)", e)
	}
}

// Equivalency is a single calculated equivalency.
type Equivalency struct {
	Type           EquivalencyType `json:"type"`
	Value          float64         `json:"value"`
	FormattedValue string          `json:"formatted_value"`
	Label          string          `json:"label"`
}

// Impact is the yearly emissions avoided by a system's AC production.
type Impact struct {
	AnnualProductionKwh   float64       `json:"annual_production_kwh"`
	GridIntensityKgPerKwh float64       `json:"grid_intensity_kg_per_kwh"`
	AvoidedKg             float64       `json:"avoided_kg_co2e"`
	Equivalencies         []Equivalency `json:"equivalencies,omitempty"`

	// DisplayText is the prose form for CLI output, empty below
	// MinEquivalencyThresholdKg.
	// Example: "like not driving ~26,817 miles or growing ~86 tree seedlings for 10 years"
	DisplayText string `json:"display_text,omitempty"`
}
