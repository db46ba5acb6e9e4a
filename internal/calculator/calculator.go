// Package calculator turns caller requests (a monthly bill, an optional
// electricity rate and provider building insights) into sizing results in
// the JSON shape consumed by workflow automation tools.
package calculator

import (
	"encoding/json"
	"errors"

	"github.com/kcalvin/solarsizer/internal/provider"
	"github.com/kcalvin/solarsizer/internal/sizing"
)

// Options holds the defaults applied at the request boundary.
type Options struct {
	DefaultRate       float64
	DefaultPanelWatts float64
	PerformanceRatio  float64
}

// DefaultOptions returns the built-in defaults.
func DefaultOptions() Options {
	return Options{
		DefaultRate:       sizing.DefaultRatePerKwh,
		DefaultPanelWatts: sizing.DefaultPanelWatts,
		PerformanceRatio:  sizing.PerformanceRatio,
	}
}

// Validate checks the options themselves.
func (o Options) Validate() error {
	if err := sizing.ValidatePerformanceRatio(o.PerformanceRatio); err != nil {
		return err
	}
	if !(o.DefaultPanelWatts > 0) {
		return errors.New("default panel watts must be greater than 0")
	}
	return nil
}

// kwPrecision is the number of decimals reported for system size.
const kwPrecision = 2

// Request is one calculation request. ElectricityRate takes precedence over
// its alias RatePerKwh; when both are absent the default rate applies.
type Request struct {
	MonthlyBill         float64                    `json:"monthly_bill"`
	ElectricityRate     *float64                   `json:"electricity_rate,omitempty"`
	RatePerKwh          *float64                   `json:"rate_per_kwh,omitempty"`
	GoogleSolarResponse *provider.BuildingInsights `json:"google_solar_response,omitempty"`
}

// Rate resolves the effective electricity rate.
func (r Request) Rate(defaultRate float64) float64 {
	switch {
	case r.ElectricityRate != nil:
		return *r.ElectricityRate
	case r.RatePerKwh != nil:
		return *r.RatePerKwh
	default:
		return defaultRate
	}
}

// Recommendation is the display form of sizing.Recommendation.
type Recommendation struct {
	SystemSizeKw     float64 `json:"system_size_kw"`
	PanelCount       int     `json:"panel_count"`
	PanelWattage     float64 `json:"panel_wattage"`
	AcProductionKwh  float64 `json:"est_annual_production_ac_kwh"`
	OffsetPercentage float64 `json:"offset_percentage"`
}

// Result is the outcome of one calculation. Recommendation is nil when the
// provider offered no configurations and is then encoded as {}.
type Result struct {
	InputBill      float64
	AnnualUsageKwh float64
	FoundSolution  bool
	Matched        bool
	Recommendation *Recommendation
	Evaluations    []sizing.Evaluation
}

type resultJSON struct {
	InputBill      float64 `json:"input_bill"`
	AnnualUsageKwh float64 `json:"appx_annual_usage_kwh"`
	FoundSolution  bool    `json:"found_solution"`
	Recommendation any     `json:"recommendation"`
}

// MarshalJSON encodes the result in its external form.
func (r Result) MarshalJSON() ([]byte, error) {
	out := resultJSON{
		InputBill:      r.InputBill,
		AnnualUsageKwh: r.AnnualUsageKwh,
		FoundSolution:  r.FoundSolution,
		Recommendation: struct{}{},
	}
	if r.Recommendation != nil {
		out.Recommendation = r.Recommendation
	}
	return json.Marshal(out)
}

// Calculate sizes a single request.
func Calculate(req Request, opts Options) (Result, error) {
	bill := sizing.BillingInput{
		MonthlyBill: req.MonthlyBill,
		RatePerKwh:  req.Rate(opts.DefaultRate),
	}
	if err := bill.Validate(); err != nil {
		return Result{}, err
	}

	potential := req.GoogleSolarResponse.ToPotential(opts.DefaultPanelWatts)
	outcome, err := sizing.Size(bill, potential, opts.PerformanceRatio)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		InputBill:      req.MonthlyBill,
		AnnualUsageKwh: sizing.RoundTo(outcome.AnnualKwh, 0),
		FoundSolution:  outcome.Found,
		Matched:        outcome.Matched,
		Evaluations:    outcome.Evaluations,
	}
	if outcome.Found {
		rec := outcome.Recommendation
		res.Recommendation = &Recommendation{
			SystemSizeKw:     sizing.RoundTo(rec.SystemSizeKw, kwPrecision),
			PanelCount:       rec.PanelCount,
			PanelWattage:     rec.PanelWattage,
			AcProductionKwh:  rec.DisplayAcProductionKwh(),
			OffsetPercentage: rec.DisplayOffsetPercentage(),
		}
	}
	return res, nil
}

// Outcome classifies a result for metrics and logs.
func (r Result) Outcome() string {
	switch {
	case !r.FoundSolution:
		return OutcomeNone
	case r.Matched:
		return OutcomeMatched
	default:
		return OutcomeFallback
	}
}

// Outcome labels.
const (
	OutcomeMatched  = "matched"
	OutcomeFallback = "fallback"
	OutcomeNone     = "none"
	OutcomeInvalid  = "invalid"
)
