package agent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kcalvin/solarsizer/internal/webhook"
)

type fakeSender struct {
	estimate webhook.EstimateRequest
	lead     webhook.Lead
	reply    string
	err      error
}

func (f *fakeSender) RequestEstimate(_ context.Context, req webhook.EstimateRequest) (string, error) {
	f.estimate = req
	return f.reply, f.err
}

func (f *fakeSender) SaveLead(_ context.Context, lead webhook.Lead) (string, error) {
	f.lead = lead
	return f.reply, f.err
}

func TestInvoke_GetSolarEstimate(t *testing.T) {
	s := &fakeSender{reply: "Estimate received"}
	tools := NewTools(s)

	out, err := tools.Invoke(context.Background(), ToolGetSolarEstimate, json.RawMessage(
		`{"zip_code": 90210, "monthly_bill": 150.0, "roof_type": "Composite", "roof_age": 10.0, "has_ev_plans": true, "wants_battery": false}`,
	))
	require.NoError(t, err)
	assert.Equal(t, "Estimate received", out)
	assert.Equal(t, "90210", s.estimate.ZipCode)
	assert.InDelta(t, 150.0, s.estimate.MonthlyBill, 1e-9)
	require.NotNil(t, s.estimate.RoofType)
	assert.Equal(t, "Composite", *s.estimate.RoofType)
	require.NotNil(t, s.estimate.HasEVPlans)
	assert.True(t, *s.estimate.HasEVPlans)
	require.NotNil(t, s.estimate.WantsBattery)
	assert.False(t, *s.estimate.WantsBattery)
}

func TestInvoke_SaveLead(t *testing.T) {
	s := &fakeSender{reply: "Lead saved"}
	fixed := time.Date(2026, 2, 10, 14, 0, 0, 0, time.FixedZone("EST", -5*3600))
	tools := NewTools(s, WithClock(func() time.Time { return fixed }))

	out, err := tools.Invoke(context.Background(), ToolSaveLead, json.RawMessage(
		`{"name": " John Doe ", "phone": 5551234567, "email": "john@example.com", "zip_code": "90000", "monthly_bill": 200, "interest_battery": true}`,
	))
	require.NoError(t, err)
	assert.Equal(t, "Lead saved", out)
	assert.Equal(t, "John Doe", s.lead.Name)
	assert.Equal(t, "5551234567", s.lead.Phone)
	assert.Equal(t, "200", s.lead.MonthlyBill)
	assert.True(t, s.lead.InterestBattery)
	assert.Equal(t, "2026-02-10T14:00:00-05:00", s.lead.DateTime)
}

func TestInvoke_NumericZipKeepsLeadingZeros(t *testing.T) {
	s := &fakeSender{reply: "ok"}
	tools := NewTools(s)

	_, err := tools.Invoke(context.Background(), ToolGetSolarEstimate, json.RawMessage(
		`{"zip_code": 2134, "monthly_bill": 150}`,
	))
	require.NoError(t, err)
	assert.Equal(t, "02134", s.estimate.ZipCode)

	_, err = tools.Invoke(context.Background(), ToolSaveLead, json.RawMessage(
		`{"name": "Ann", "phone": "5551234567", "zip_code": 501.0}`,
	))
	require.NoError(t, err)
	assert.Equal(t, "00501", s.lead.ZipCode)
}

func TestFlexString_ZipCode(t *testing.T) {
	tests := []struct {
		in   FlexString
		want string
	}{
		{"2134", "02134"},
		{" 90210 ", "90210"},
		{"02134-1234", "02134-1234"},
		{"12a", "12a"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.ZipCode())
		})
	}
}

func TestInvoke_Errors(t *testing.T) {
	tools := NewTools(&fakeSender{})

	_, err := tools.Invoke(context.Background(), "book_flight", nil)
	require.ErrorIs(t, err, ErrUnknownTool)

	_, err = tools.Invoke(context.Background(), ToolGetSolarEstimate, json.RawMessage(`{"monthly_bill": "a lot"}`))
	require.ErrorIs(t, err, ErrInvalidArguments)

	_, err = tools.Invoke(context.Background(), ToolSaveLead, json.RawMessage(`{"phone": true}`))
	require.ErrorIs(t, err, ErrInvalidArguments)
}

func TestInvoke_PropagatesToolError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	tools := NewTools(webhook.NewClient(srv.URL, srv.URL, time.Second))
	_, err := tools.Invoke(context.Background(), ToolGetSolarEstimate, json.RawMessage(`{"zip_code": "33033", "monthly_bill": 160}`))

	var te *webhook.ToolError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, "error: HTTP 502", te.Error())
}

func TestFlexString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`"02134"`, "02134"},
		{`90210`, "90210"},
		{`90210.0`, "90210"},
		{`149.5`, "149.5"},
		{`null`, ""},
	}
	for _, tt := range tests {
		var f FlexString
		require.NoError(t, json.Unmarshal([]byte(tt.in), &f), tt.in)
		assert.Equal(t, tt.want, f.String(), tt.in)
	}

	var f FlexString
	assert.Error(t, json.Unmarshal([]byte(`{}`), &f))
}

func TestDefinitions(t *testing.T) {
	defs := Definitions()
	require.Len(t, defs, 2)
	assert.Equal(t, ToolGetSolarEstimate, defs[0].Name)
	assert.Equal(t, ToolSaveLead, defs[1].Name)

	data, err := json.Marshal(defs)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"required":["zip_code","monthly_bill"]`)

	props := defs[1].Parameters["properties"].(map[string]any)
	assert.Len(t, props, 12)
}

func TestLoadInstructions(t *testing.T) {
	text, err := LoadInstructions("")
	require.NoError(t, err)
	assert.Equal(t, DefaultInstructions(), text)
	assert.Contains(t, text, "get_solar_estimate")

	dir := t.TempDir()
	path := filepath.Join(dir, "prompt.md")
	require.NoError(t, os.WriteFile(path, []byte("Be brief."), 0o600))
	text, err = LoadInstructions(path)
	require.NoError(t, err)
	assert.Equal(t, "Be brief.", text)

	empty := filepath.Join(dir, "empty.md")
	require.NoError(t, os.WriteFile(empty, []byte("  \n"), 0o600))
	_, err = LoadInstructions(empty)
	assert.Error(t, err)

	_, err = LoadInstructions(filepath.Join(dir, "missing.md"))
	assert.Error(t, err)
}
