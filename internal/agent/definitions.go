package agent

// Definition describes a tool to an LLM agent framework. Parameters is a
// JSON Schema object.
type Definition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

func prop(typ, desc string) map[string]any {
	p := map[string]any{"type": typ}
	if desc != "" {
		p["description"] = desc
	}
	return p
}

// Definitions returns the descriptors of every tool.
func Definitions() []Definition {
	roofType := prop("string", "Accept either Shingles, Flat, Metal, Zinc, Wood Shakes")

	return []Definition{
		{
			Name:        ToolGetSolarEstimate,
			Description: "Calculates a rough solar system size estimate based on usage and home details.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"zip_code":      prop("string", "Five digit ZIP code of the home"),
					"monthly_bill":  prop("number", "Average monthly electricity bill in dollars"),
					"roof_type":     roofType,
					"roof_age":      prop("number", "How long you have the roof, in years"),
					"has_ev_plans":  prop("boolean", "If customer plan to own an Electric Vehicle"),
					"wants_battery": prop("boolean", "If customer wants battery backup"),
				},
				"required": []string{"zip_code", "monthly_bill"},
			},
		},
		{
			Name:        ToolSaveLead,
			Description: "Saves a qualified lead and the agreed consultation time.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name":             prop("string", "Full name"),
					"phone":            prop("string", "Callback phone number"),
					"email":            prop("string", "Email address"),
					"street":           prop("string", ""),
					"city":             prop("string", ""),
					"state":            prop("string", ""),
					"zip_code":         prop("string", ""),
					"roof_type":        roofType,
					"monthly_bill":     prop("string", "Average monthly bill as stated by the caller"),
					"interest_battery": prop("boolean", ""),
					"interest_ev":      prop("boolean", ""),
					"date_time":        prop("string", "Consultation time in RFC 3339 format"),
				},
				"required": []string{"name", "phone"},
			},
		},
	}
}
