package sizing

// Sizing defaults applied at the boundary where provider or caller data is
// parsed. The selection routines themselves never substitute defaults.
const (
	// PerformanceRatio is the DC-to-AC derate factor. It accounts for
	// inverter efficiency, wiring, soiling and shading not captured by the
	// provider. PVWatts uses about 0.86; 0.85 is the conservative choice.
	PerformanceRatio = 0.85

	// DefaultPanelWatts is used when the provider omits panelCapacityWatts.
	DefaultPanelWatts = 400.0

	// DefaultRatePerKwh is used when the caller omits the electricity rate.
	DefaultRatePerKwh = 0.14

	// MonthsPerYear converts monthly consumption to annual consumption.
	MonthsPerYear = 12
)

// wattsPerKilowatt converts panel wattage totals to kW.
const wattsPerKilowatt = 1000.0

// percent scales ratios to percentages.
const percent = 100.0
