package parameter

// Prediction horizons (seconds)
const (
	PathPredictionTime      = 2.0
	ObstaclePredictionTime  = 30.0
	MedianPredictionTime    = 30.0
	PolicePredictionTime    = 10.0
	InterceptPredictionTime = 3.0
)

// Internal goal weights, not exposed as configuration
const (
	ReachSpeedWeight   = 50.0
	CarMedianWeight    = 140.0
	PoliceMedianWeight = 200.0
)

// PoliceCruiseSpeed is the police target speed while no car is on the track
const PoliceCruiseSpeed = 40.0

// Goal shaping
const (
	// SpeedBand is the speed error (units/s) giving a full ReachSpeed intent
	SpeedBand = 10.0

	// FollowTurnGain scales the heading error of FollowPath before clamping
	FollowTurnGain = 2.0

	// AvoidClearance inflates the combined radii when testing for a threat
	AvoidClearance = 1.25

	// AvoidUrgencyTime is the closest-approach time giving a unit avoidance
	// intent; the intent scales as AvoidUrgencyTime / t
	AvoidUrgencyTime = 2.0
)
