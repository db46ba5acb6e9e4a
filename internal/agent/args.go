package agent

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexString accepts a JSON string or number. Speech models often send
// ZIP codes, phone numbers and amounts as numbers.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", data)
	}
	// Drop a trailing ".0" that float-typed callers add to integers.
	if v, err := strconv.ParseFloat(n.String(), 64); err == nil && v == float64(int64(v)) {
		*f = FlexString(strconv.FormatInt(int64(v), 10))
		return nil
	}
	*f = FlexString(n.String())
	return nil
}

// String returns the value.
func (f FlexString) String() string { return string(f) }

const zipDigits = 5

// ZipCode returns the value as a ZIP code. Numeric input loses leading
// zeros ("02134" spoken as 2134), so short all-digit values are
// left-padded to five digits.
func (f FlexString) ZipCode() string {
	s := strings.TrimSpace(string(f))
	if s == "" || len(s) >= zipDigits {
		return s
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return s
		}
	}
	return strings.Repeat("0", zipDigits-len(s)) + s
}

// EstimateArgs are the arguments of get_solar_estimate.
type EstimateArgs struct {
	ZipCode      FlexString `json:"zip_code"`
	MonthlyBill  float64    `json:"monthly_bill"`
	RoofType     *string    `json:"roof_type,omitempty"`
	RoofAge      *float64   `json:"roof_age,omitempty"`
	HasEVPlans   *bool      `json:"has_ev_plans,omitempty"`
	WantsBattery *bool      `json:"wants_battery,omitempty"`
}

// LeadArgs are the arguments of save_lead.
type LeadArgs struct {
	Name            string     `json:"name"`
	Phone           FlexString `json:"phone"`
	Email           string     `json:"email"`
	Street          string     `json:"street"`
	City            string     `json:"city"`
	State           string     `json:"state"`
	ZipCode         FlexString `json:"zip_code"`
	RoofType        string     `json:"roof_type"`
	MonthlyBill     FlexString `json:"monthly_bill"`
	InterestBattery bool       `json:"interest_battery"`
	InterestEV      bool       `json:"interest_ev"`
	DateTime        string     `json:"date_time"`
}
