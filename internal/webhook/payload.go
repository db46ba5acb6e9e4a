package webhook

import "strings"

// Roof types the estimate workflow understands.
var RoofTypes = []string{"Shingles", "Flat", "Metal", "Zinc", "Wood Shakes"}

// IsKnownRoofType reports whether t is one of RoofTypes, ignoring case.
func IsKnownRoofType(t string) bool {
	for _, rt := range RoofTypes {
		if strings.EqualFold(rt, strings.TrimSpace(t)) {
			return true
		}
	}
	return false
}

// EstimateRequest asks the estimate workflow for a rough system size.
// Optional fields are sent as null when unset.
type EstimateRequest struct {
	ZipCode      string   `json:"zip_code" validate:"required,zipcode"`
	MonthlyBill  float64  `json:"monthly_bill" validate:"gte=0"`
	RoofType     *string  `json:"roof_type"`
	RoofAge      *float64 `json:"roof_age" validate:"omitempty,gte=0"`
	HasEVPlans   *bool    `json:"has_ev_plans"`
	WantsBattery *bool    `json:"wants_battery"`
}

// Lead is a qualified prospect captured at the end of a call. Values are
// forwarded as spoken, so MonthlyBill stays a string.
type Lead struct {
	Name            string `json:"name" validate:"required"`
	Phone           string `json:"phone" validate:"required,phone"`
	Email           string `json:"email" validate:"omitempty,email"`
	Street          string `json:"street"`
	City            string `json:"city"`
	State           string `json:"state"`
	ZipCode         string `json:"zip_code" validate:"omitempty,zipcode"`
	RoofType        string `json:"roof_type"`
	MonthlyBill     string `json:"monthly_bill"`
	InterestBattery bool   `json:"interest_battery"`
	InterestEV      bool   `json:"interest_ev"`
	DateTime        string `json:"date_time" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}
