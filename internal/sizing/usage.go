package sizing

import "math"

// EstimateAnnualUsage converts a monthly bill and a per-kWh rate into an
// estimated annual consumption in kWh:
//
//	annualKwh = (monthlyBill / ratePerKwh) * 12
//
// The result is not rounded. A rate of zero or below (or NaN) returns
// ErrInvalidRate without attempting the computation.
func EstimateAnnualUsage(monthlyBill, ratePerKwh float64) (float64, error) {
	if !(ratePerKwh > 0) || math.IsInf(ratePerKwh, 0) {
		return 0, ErrInvalidRate
	}

	monthlyKwh := monthlyBill / ratePerKwh
	return monthlyKwh * MonthsPerYear, nil
}

// Validate checks the billing input at the request boundary.
func (b BillingInput) Validate() error {
	if math.IsNaN(b.MonthlyBill) || math.IsInf(b.MonthlyBill, 0) || b.MonthlyBill < 0 {
		return ErrInvalidBill
	}
	if !(b.RatePerKwh > 0) || math.IsInf(b.RatePerKwh, 0) {
		return ErrInvalidRate
	}
	return nil
}

// AnnualUsage is a convenience wrapper around EstimateAnnualUsage.
func (b BillingInput) AnnualUsage() (float64, error) {
	return EstimateAnnualUsage(b.MonthlyBill, b.RatePerKwh)
}

// ValidatePerformanceRatio reports whether ratio is usable as a derate factor.
func ValidatePerformanceRatio(ratio float64) error {
	if !(ratio > 0) || ratio > 1 {
		return ErrInvalidPerformanceRatio
	}
	return nil
}
