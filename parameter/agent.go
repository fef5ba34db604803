package parameter

// Normal car profile
const (
	CarMass            = 1.0
	CarMaxSpeed        = 70.0
	CarMaxAcceleration = 95.0
	CarRadius          = 40.0
)

// Police car profile
const (
	PoliceMass            = 1.0
	PoliceMaxSpeed        = 75.0
	PoliceMaxAcceleration = 120.0
	PoliceRadius          = 40.0
)

// Obstacle (traffic cone) profile, stationary
const (
	ObstacleMass   = 0.001
	ObstacleRadius = 15.0
)
