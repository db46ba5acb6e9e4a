// Package agent exposes the voice agent's tools: requesting a solar estimate
// and saving a qualified lead. Both forward to the workflow webhooks.
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kcalvin/solarsizer/internal/logging"
	"github.com/kcalvin/solarsizer/internal/webhook"
)

// Tool names.
const (
	ToolGetSolarEstimate = "get_solar_estimate"
	ToolSaveLead         = "save_lead"
)

// Errors returned by Invoke.
var (
	ErrUnknownTool      = errors.New("unknown tool")
	ErrInvalidArguments = errors.New("invalid tool arguments")
)

// Sender delivers payloads to the workflow webhooks.
type Sender interface {
	RequestEstimate(ctx context.Context, req webhook.EstimateRequest) (string, error)
	SaveLead(ctx context.Context, lead webhook.Lead) (string, error)
}

// Tools implements the agent tools on top of a Sender.
type Tools struct {
	sender Sender
	now    func() time.Time
}

// Option configures Tools.
type Option func(*Tools)

// WithClock overrides the clock used to stamp leads without a date.
func WithClock(now func() time.Time) Option {
	return func(t *Tools) { t.now = now }
}

// NewTools returns the tool set.
func NewTools(sender Sender, opts ...Option) *Tools {
	t := &Tools{sender: sender, now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// GetSolarEstimate requests a rough system size estimate.
func (t *Tools) GetSolarEstimate(ctx context.Context, args EstimateArgs) (string, error) {
	log := logging.ComponentLogger(*logging.FromContext(ctx), "agent")

	if args.RoofType != nil && !webhook.IsKnownRoofType(*args.RoofType) {
		log.Warn().Ctx(ctx).
			Str("roof_type", *args.RoofType).
			Strs("accepted", webhook.RoofTypes).
			Msg("unrecognized roof type, forwarding as given")
	}

	return t.sender.RequestEstimate(ctx, webhook.EstimateRequest{
		ZipCode:      args.ZipCode.ZipCode(),
		MonthlyBill:  args.MonthlyBill,
		RoofType:     args.RoofType,
		RoofAge:      args.RoofAge,
		HasEVPlans:   args.HasEVPlans,
		WantsBattery: args.WantsBattery,
	})
}

// SaveLead records a qualified lead. A missing date_time is stamped with
// the current time.
func (t *Tools) SaveLead(ctx context.Context, args LeadArgs) (string, error) {
	dateTime := strings.TrimSpace(args.DateTime)
	if dateTime == "" {
		dateTime = t.now().Format(time.RFC3339)
	}

	return t.sender.SaveLead(ctx, webhook.Lead{
		Name:            strings.TrimSpace(args.Name),
		Phone:           strings.TrimSpace(args.Phone.String()),
		Email:           strings.TrimSpace(args.Email),
		Street:          args.Street,
		City:            args.City,
		State:           args.State,
		ZipCode:         args.ZipCode.ZipCode(),
		RoofType:        args.RoofType,
		MonthlyBill:     args.MonthlyBill.String(),
		InterestBattery: args.InterestBattery,
		InterestEV:      args.InterestEV,
		DateTime:        dateTime,
	})
}

// Invoke dispatches a tool call by name with JSON-encoded arguments.
func (t *Tools) Invoke(ctx context.Context, name string, rawArgs json.RawMessage) (string, error) {
	logging.FromContext(ctx).Debug().Ctx(ctx).Str("tool", name).Msg("invoking tool")

	switch name {
	case ToolGetSolarEstimate:
		var args EstimateArgs
		if err := decodeArgs(rawArgs, &args); err != nil {
			return "", err
		}
		return t.GetSolarEstimate(ctx, args)
	case ToolSaveLead:
		var args LeadArgs
		if err := decodeArgs(rawArgs, &args); err != nil {
			return "", err
		}
		return t.SaveLead(ctx, args)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTool, name)
	}
}

func decodeArgs(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArguments, err)
	}
	return nil
}
