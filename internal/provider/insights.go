// Package provider parses solar potential data in the shape of the Google
// Solar API buildingInsights response and fetches it over HTTP.
//
// Defaults for optional provider fields are applied here, at the boundary,
// so the sizing package always receives complete values.
package provider

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/kcalvin/solarsizer/internal/sizing"
)

// Provider data errors.
var (
	ErrMalformedInsights = errors.New("malformed building insights")
	ErrInvalidConfig     = errors.New("invalid solar panel config")
)

// BuildingInsights is the subset of a buildingInsights response used for sizing.
type BuildingInsights struct {
	Name           string          `json:"name,omitempty"`
	Center         *LatLng         `json:"center,omitempty"`
	SolarPotential *SolarPotential `json:"solarPotential,omitempty"`
}

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// SolarPotential holds the roof-level potential. PanelCapacityWatts is a
// pointer so an absent value can be told apart from an explicit one.
type SolarPotential struct {
	PanelCapacityWatts      *float64      `json:"panelCapacityWatts,omitempty"`
	MaxArrayPanelsCount     int           `json:"maxArrayPanelsCount,omitempty"`
	MaxSunshineHoursPerYear float64       `json:"maxSunshineHoursPerYear,omitempty"`
	SolarPanelConfigs       []PanelConfig `json:"solarPanelConfigs"`
}

// PanelConfig is one entry of solarPanelConfigs. Missing fields decode as 0.
type PanelConfig struct {
	PanelsCount       int     `json:"panelsCount"`
	YearlyEnergyDcKwh float64 `json:"yearlyEnergyDcKwh"`
}

// Parse decodes a buildingInsights JSON document and validates it.
func Parse(r io.Reader) (*BuildingInsights, error) {
	var bi BuildingInsights
	if err := json.NewDecoder(r).Decode(&bi); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedInsights, err)
	}
	if err := bi.Validate(); err != nil {
		return nil, err
	}
	return &bi, nil
}

// LoadFile reads and parses a buildingInsights JSON file.
func LoadFile(path string) (*BuildingInsights, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening insights file: %w", err)
	}
	defer f.Close()

	bi, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return bi, nil
}

// Validate rejects negative counts or yields and non-positive wattage.
// A missing solarPotential is valid and yields no configurations.
func (b *BuildingInsights) Validate() error {
	if b == nil || b.SolarPotential == nil {
		return nil
	}
	sp := b.SolarPotential
	if w := sp.PanelCapacityWatts; w != nil && (!(*w > 0) || math.IsInf(*w, 0)) {
		return fmt.Errorf("%w: panelCapacityWatts must be positive, got %v", ErrInvalidConfig, *w)
	}
	for i, c := range sp.SolarPanelConfigs {
		if c.PanelsCount < 0 {
			return fmt.Errorf("%w: config %d has negative panelsCount %d", ErrInvalidConfig, i, c.PanelsCount)
		}
		if c.YearlyEnergyDcKwh < 0 || math.IsNaN(c.YearlyEnergyDcKwh) {
			return fmt.Errorf("%w: config %d has invalid yearlyEnergyDcKwh %v", ErrInvalidConfig, i, c.YearlyEnergyDcKwh)
		}
	}
	return nil
}

// ToPotential converts the response into sizing input, applying
// defaultWatts when panelCapacityWatts is absent. A nil receiver or missing
// solarPotential produces an empty potential.
func (b *BuildingInsights) ToPotential(defaultWatts float64) sizing.SolarPotential {
	out := sizing.SolarPotential{PanelCapacityWatts: defaultWatts}
	if b == nil || b.SolarPotential == nil {
		return out
	}

	sp := b.SolarPotential
	if sp.PanelCapacityWatts != nil {
		out.PanelCapacityWatts = *sp.PanelCapacityWatts
	}
	out.Configs = make([]sizing.PanelConfig, 0, len(sp.SolarPanelConfigs))
	for _, c := range sp.SolarPanelConfigs {
		out.Configs = append(out.Configs, sizing.PanelConfig{
			PanelsCount:       c.PanelsCount,
			YearlyEnergyDcKwh: c.YearlyEnergyDcKwh,
		})
	}
	return out
}
