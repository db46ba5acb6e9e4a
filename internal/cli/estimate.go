package cli

import (
	"github.com/spf13/cobra"

	"github.com/kcalvin/solarsizer/internal/calculator"
	"github.com/kcalvin/solarsizer/internal/config"
	"github.com/kcalvin/solarsizer/internal/greenops"
)

// EstimateParams holds the flags of the estimate command.
type EstimateParams struct {
	Bill             float64
	Rate             float64
	InsightsFile     string
	Lat              float64
	Lng              float64
	Output           string
	PerformanceRatio float64
	PanelWatts       float64
	GridIntensity    float64
}

// NewEstimateCmd creates the estimate command.
func NewEstimateCmd() *cobra.Command {
	var params EstimateParams

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Recommend a system size for a monthly electric bill",
		Long: `Estimates annual consumption from a monthly bill and electricity rate, then
picks the smallest panel configuration whose derated AC production covers it.
When no configuration is large enough the largest one is recommended.

Roof data comes from --insights (a saved buildingInsights JSON response), from
the Solar API when --lat/--lng are given, or from a built-in sample roof.`,
		Example: `  # Built-in sample roof
  solarsizer estimate --bill 160

  # Saved provider response with a custom rate
  solarsizer estimate --bill 210 --rate 0.18 --insights insights.json

  # JSON output for scripting
  solarsizer estimate --bill 160 --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeEstimate(cmd, params)
		},
	}

	cmd.Flags().Float64Var(&params.Bill, "bill", 0, "average monthly electricity bill (required)")
	cmd.Flags().Float64Var(&params.Rate, "rate", 0, "electricity rate per kWh (default from config, 0.14)")
	cmd.Flags().StringVar(&params.InsightsFile, "insights", "", "path to a buildingInsights JSON file")
	cmd.Flags().Float64Var(&params.Lat, "lat", 0, "latitude for a Solar API lookup")
	cmd.Flags().Float64Var(&params.Lng, "lng", 0, "longitude for a Solar API lookup")
	cmd.Flags().StringVarP(&params.Output, "output", "o", "", "output format: table or json")
	cmd.Flags().Float64Var(&params.PerformanceRatio, "performance-ratio", 0, "DC to AC derate factor (default 0.85)")
	cmd.Flags().Float64Var(&params.PanelWatts, "panel-watts", 0, "panel wattage when the roof data omits it (default 400)")
	cmd.Flags().Float64Var(&params.GridIntensity, "grid-intensity", greenops.DefaultGridIntensityKgPerKwh,
		"grid emission rate in kg CO2e/kWh used for avoided emissions")
	_ = cmd.MarkFlagRequired("bill")
	cmd.MarkFlagsMutuallyExclusive("insights", "lat")
	cmd.MarkFlagsMutuallyExclusive("insights", "lng")

	return cmd
}

func executeEstimate(cmd *cobra.Command, params EstimateParams) error {
	ctx := cmd.Context()
	cfg := config.GetGlobalConfig()

	format, err := resolveOutputFormat(cmd, params.Output)
	if err != nil {
		return err
	}
	if err = greenops.ValidateIntensity(params.GridIntensity); err != nil {
		return err
	}
	opts, err := calculatorOptions(cmd, cfg)
	if err != nil {
		return err
	}

	bi, source, err := fetchInsights(ctx, cmd, cfg, params.InsightsFile, params.Lat, params.Lng)
	if err != nil {
		return err
	}

	req := calculator.Request{MonthlyBill: params.Bill, GoogleSolarResponse: bi}
	if cmd.Flags().Changed("rate") {
		req.ElectricityRate = &params.Rate
	}

	result, err := calculator.Calculate(req, opts)
	if err != nil {
		return err
	}

	logger.Debug().Ctx(ctx).
		Str("source", source).
		Str("outcome", result.Outcome()).
		Float64("annual_kwh", result.AnnualUsageKwh).
		Msg("estimate calculated")

	var impact *greenops.Impact
	if result.Recommendation != nil {
		est, impactErr := greenops.Estimate(result.Recommendation.AcProductionKwh, params.GridIntensity)
		if impactErr != nil {
			return impactErr
		}
		impact = &est
	}

	return renderEstimate(cmd.OutOrStdout(), format, estimateView{
		Source:           source,
		MonthlyBill:      params.Bill,
		Rate:             req.Rate(opts.DefaultRate),
		PerformanceRatio: opts.PerformanceRatio,
		Precision:        cfg.Output.Precision,
		Result:           result,
		Impact:           impact,
	})
}
