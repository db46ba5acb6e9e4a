package sizing

// NewRecommendation builds the recommendation for a chosen configuration.
//
// It returns false when chosen is nil, meaning no recommendation could be
// made (the provider offered no configurations). The offset percentage is
// reported as 0 when annualKwh is zero.
func NewRecommendation(
	chosen *PanelConfig,
	panelWattage, performanceRatio, annualKwh float64,
) (Recommendation, bool) {
	if chosen == nil {
		return Recommendation{}, false
	}

	ac := chosen.AcProductionKwh(performanceRatio)
	return Recommendation{
		SystemSizeKw:     chosen.SystemSizeKw(panelWattage),
		PanelCount:       chosen.PanelsCount,
		PanelWattage:     panelWattage,
		DcProductionKwh:  chosen.YearlyEnergyDcKwh,
		AcProductionKwh:  ac,
		OffsetPercentage: coverage(ac, annualKwh),
	}, true
}

// Outcome is the full result of sizing one billing input against a solar
// potential.
type Outcome struct {
	AnnualKwh      float64
	Matched        bool
	Found          bool
	Recommendation Recommendation
	Evaluations    []Evaluation
}

// Size runs the estimate, selection and recommendation steps in order.
// It fails only when the rate is invalid.
func Size(bill BillingInput, potential SolarPotential, performanceRatio float64) (Outcome, error) {
	annualKwh, err := EstimateAnnualUsage(bill.MonthlyBill, bill.RatePerKwh)
	if err != nil {
		return Outcome{}, err
	}

	watts := potential.PanelCapacityWatts
	chosen, matched := SelectConfig(potential.Configs, watts, annualKwh, performanceRatio)
	rec, found := NewRecommendation(chosen, watts, performanceRatio, annualKwh)

	return Outcome{
		AnnualKwh:      annualKwh,
		Matched:        matched,
		Found:          found,
		Recommendation: rec,
		Evaluations:    Evaluate(potential.Configs, watts, annualKwh, performanceRatio),
	}, nil
}
