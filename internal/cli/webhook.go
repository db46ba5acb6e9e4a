package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kcalvin/solarsizer/internal/agent"
	"github.com/kcalvin/solarsizer/internal/config"
)

// NewWebhookEstimateCmd creates the webhook estimate command.
func NewWebhookEstimateCmd() *cobra.Command {
	var (
		args     agent.EstimateArgs
		zip      string
		roofType string
		roofAge  float64
		ev       bool
		battery  bool
	)

	cmd := &cobra.Command{
		Use:     "estimate",
		Short:   "Request a solar estimate from the estimate webhook",
		Example: `  solarsizer webhook estimate --zip 33033 --bill 160 --roof-type Shingles --roof-age 8 --battery`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			args.ZipCode = agent.FlexString(zip)
			if cmd.Flags().Changed("roof-type") {
				args.RoofType = &roofType
			}
			if cmd.Flags().Changed("roof-age") {
				args.RoofAge = &roofAge
			}
			if cmd.Flags().Changed("ev") {
				args.HasEVPlans = &ev
			}
			if cmd.Flags().Changed("battery") {
				args.WantsBattery = &battery
			}

			tools := agent.NewTools(newWebhookClient(config.GetGlobalConfig()))
			reply, err := tools.GetSolarEstimate(cmd.Context(), args)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), reply)
			return err
		},
	}

	cmd.Flags().StringVar(&zip, "zip", "", "ZIP code of the home (required)")
	cmd.Flags().Float64Var(&args.MonthlyBill, "bill", 0, "average monthly electricity bill (required)")
	cmd.Flags().StringVar(&roofType, "roof-type", "", "Shingles, Flat, Metal, Zinc or Wood Shakes")
	cmd.Flags().Float64Var(&roofAge, "roof-age", 0, "roof age in years")
	cmd.Flags().BoolVar(&ev, "ev", false, "customer plans to own an electric vehicle")
	cmd.Flags().BoolVar(&battery, "battery", false, "customer wants battery backup")
	_ = cmd.MarkFlagRequired("zip")
	_ = cmd.MarkFlagRequired("bill")

	return cmd
}

// NewWebhookLeadCmd creates the webhook lead command.
func NewWebhookLeadCmd() *cobra.Command {
	var (
		args             agent.LeadArgs
		phone, zip, bill string
	)

	cmd := &cobra.Command{
		Use:   "lead",
		Short: "Send a captured lead to the lead webhook",
		Example: `  solarsizer webhook lead --name "Jane Roe" --phone 5551234567 --email jane@example.com \
    --zip 33033 --bill 160 --battery --date-time 2026-02-10T14:00:00-05:00`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			args.Phone = agent.FlexString(phone)
			args.ZipCode = agent.FlexString(zip)
			args.MonthlyBill = agent.FlexString(bill)

			tools := agent.NewTools(newWebhookClient(config.GetGlobalConfig()))
			reply, err := tools.SaveLead(cmd.Context(), args)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), reply)
			return err
		},
	}

	cmd.Flags().StringVar(&args.Name, "name", "", "full name (required)")
	cmd.Flags().StringVar(&phone, "phone", "", "callback phone number (required)")
	cmd.Flags().StringVar(&args.Email, "email", "", "email address")
	cmd.Flags().StringVar(&args.Street, "street", "", "street address")
	cmd.Flags().StringVar(&args.City, "city", "", "city")
	cmd.Flags().StringVar(&args.State, "state", "", "state")
	cmd.Flags().StringVar(&zip, "zip", "", "ZIP code")
	cmd.Flags().StringVar(&args.RoofType, "roof-type", "", "roof type")
	cmd.Flags().StringVar(&bill, "bill", "", "monthly bill as stated")
	cmd.Flags().BoolVar(&args.InterestBattery, "battery", false, "interested in battery backup")
	cmd.Flags().BoolVar(&args.InterestEV, "ev", false, "interested in EV charging")
	cmd.Flags().StringVar(&args.DateTime, "date-time", "", "consultation time, RFC 3339 (default now)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("phone")

	return cmd
}
