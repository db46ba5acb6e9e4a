package sizing

import (
	"cmp"
	"slices"
)

// sortedByPanels returns a copy of configs stably sorted ascending by
// PanelsCount. The caller's slice is left untouched.
func sortedByPanels(configs []PanelConfig) []PanelConfig {
	sorted := slices.Clone(configs)
	slices.SortStableFunc(sorted, func(a, b PanelConfig) int {
		return cmp.Compare(a.PanelsCount, b.PanelsCount)
	})
	return sorted
}

// SelectConfig picks the smallest configuration whose derated production
// meets targetAnnualKwh.
//
// Configurations are scanned in ascending PanelsCount order (stable on
// ties) and the first one with YearlyEnergyDcKwh*performanceRatio >= target
// is returned with matched = true. If none qualifies the largest
// configuration is returned with matched = false. An empty list returns
// (nil, false).
//
// The scan assumes production grows with panel count. Non-monotonic
// provider data is not detected: the first crossing is returned even if a
// larger-count entry later dips below the target.
//
// The second argument is the panel wattage. It does not influence the
// choice and is accepted so callers can pass the full sizing context.
func SelectConfig(
	configs []PanelConfig,
	_, targetAnnualKwh, performanceRatio float64,
) (*PanelConfig, bool) {
	if len(configs) == 0 {
		return nil, false
	}

	sorted := sortedByPanels(configs)
	for i := range sorted {
		if sorted[i].AcProductionKwh(performanceRatio) >= targetAnnualKwh {
			chosen := sorted[i]
			return &chosen, true
		}
	}

	largest := sorted[len(sorted)-1]
	return &largest, false
}

// Evaluate returns one row per configuration in scan order, up to and
// including the first configuration that meets the target. When nothing
// meets the target every configuration is returned.
//
// A zero target yields 0% coverage rather than a division fault.
func Evaluate(
	configs []PanelConfig,
	panelWattage, targetAnnualKwh, performanceRatio float64,
) []Evaluation {
	sorted := sortedByPanels(configs)
	rows := make([]Evaluation, 0, len(sorted))

	for _, c := range sorted {
		ac := c.AcProductionKwh(performanceRatio)
		row := Evaluation{
			PanelsCount:     c.PanelsCount,
			SystemSizeKw:    c.SystemSizeKw(panelWattage),
			AcProductionKwh: ac,
			CoveragePercent: coverage(ac, targetAnnualKwh),
			MeetsTarget:     ac >= targetAnnualKwh,
		}
		rows = append(rows, row)
		if row.MeetsTarget {
			break
		}
	}

	return rows
}

// coverage returns production as a percentage of usage, 0 for zero usage.
func coverage(productionKwh, usageKwh float64) float64 {
	if usageKwh == 0 {
		return 0
	}
	return productionKwh / usageKwh * percent
}
