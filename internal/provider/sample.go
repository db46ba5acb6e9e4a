package provider

// SampleInsights returns a representative response for a single-family
// roof in Homestead, FL (zip 33033). It is used when the estimate command
// is run without provider data.
func SampleInsights() *BuildingInsights {
	watts := 400.0
	return &BuildingInsights{
		Name:   "buildings/sample-33033",
		Center: &LatLng{Latitude: 25.4687, Longitude: -80.4776},
		SolarPotential: &SolarPotential{
			PanelCapacityWatts:  &watts,
			MaxArrayPanelsCount: 35,
			SolarPanelConfigs: []PanelConfig{
				{PanelsCount: 10, YearlyEnergyDcKwh: 5800},
				{PanelsCount: 15, YearlyEnergyDcKwh: 8700},
				{PanelsCount: 20, YearlyEnergyDcKwh: 11600},
				{PanelsCount: 25, YearlyEnergyDcKwh: 14500},
				{PanelsCount: 28, YearlyEnergyDcKwh: 16240},
				{PanelsCount: 30, YearlyEnergyDcKwh: 17400},
				{PanelsCount: 35, YearlyEnergyDcKwh: 20300},
			},
		},
	}
}
