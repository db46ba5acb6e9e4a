package greenops

import (
	"fmt"
	"math"
)

// ValidateIntensity reports whether kgPerKwh is a usable grid emission rate.
func ValidateIntensity(kgPerKwh float64) error {
	if !(kgPerKwh > 0) || math.IsInf(kgPerKwh, 0) {
		return ErrInvalidIntensity
	}
	return nil
}

// Estimate computes the emissions avoided per year by annualKwh of solar
// production displacing grid power at kgPerKwh.
//
// Example:
//
//	impact, err := Estimate(13804, DefaultGridIntensityKgPerKwh)
//	// impact.AvoidedKg ≈ 5148.9
func Estimate(annualKwh, kgPerKwh float64) (Impact, error) {
	if annualKwh < 0 || math.IsNaN(annualKwh) {
		return Impact{}, ErrNegativeValue
	}
	if err := ValidateIntensity(kgPerKwh); err != nil {
		return Impact{}, err
	}

	kg := annualKwh * kgPerKwh
	impact := Impact{
		AnnualProductionKwh:   annualKwh,
		GridIntensityKgPerKwh: kgPerKwh,
		AvoidedKg:             kg,
	}
	if kg < MinEquivalencyThresholdKg {
		return impact, nil
	}

	miles := equivalency(EquivalencyMilesDriven, kg/EPAMilesDrivenFactor, "miles driven")
	trees := equivalency(EquivalencyTreeSeedlings, kg/EPATreeSeedlingFactor, "tree seedlings grown for 10 years")
	homes := equivalency(EquivalencyHomeDays, kg/EPAHomeDayFactor, "days of home electricity")

	impact.Equivalencies = []Equivalency{miles, trees, homes}
	impact.DisplayText = fmt.Sprintf("like not driving ~%s miles or growing ~%s tree seedlings for 10 years",
		miles.FormattedValue, trees.FormattedValue)
	return impact, nil
}

func equivalency(t EquivalencyType, v float64, label string) Equivalency {
	return Equivalency{Type: t, Value: v, FormattedValue: formatEquivalencyValue(v), Label: label}
}

// formatEquivalencyValue uses large-number scaling at or above one million
// and a comma-separated integer otherwise.
func formatEquivalencyValue(v float64) string {
	if v >= LargeNumberThreshold {
		return FormatLarge(v)
	}
	return FormatNumber(int64(math.Round(v)))
}
