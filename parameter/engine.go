// Package parameter holds the fixed tunables of the simulation: track layout,
// prediction horizons, internal goal weights, agent profiles and timings
package parameter

import "time"

// Simulation Loop Timing
const (
	// TickInterval is the frame clock period driving Advance (~60 FPS)
	TickInterval = 16667 * time.Microsecond

	// TickSeconds is TickInterval as a simulation delta
	TickSeconds = 1.0 / 60.0

	// MaxTickSeconds caps a single delta after host stalls
	MaxTickSeconds = 0.1
)

// Capture effect timings (seconds of simulated time)
const (
	// EffectFadeDelay is the time a capture marker stays solid
	EffectFadeDelay = 2.0

	// EffectRemoveDelay is the time from fade start until removal
	EffectRemoveDelay = 0.5
)

// Default seed for intercept target selection
const DefaultSeed uint64 = 0x9E3779B97F4A7C15

// Telemetry
const (
	// TelemetryInterval is the simulated time between recorded samples
	TelemetryInterval = 0.25

	// PlotWidthInch and PlotHeightInch size the saved run chart
	PlotWidthInch  = 10
	PlotHeightInch = 5
)
