// Package event carries contact reports from the physics layer into the
// simulation and notifications from the simulation out to collaborators
package event

import "github.com/lixenwraith/pursuit/agent"

// Kind is the type of a simulation notification
type Kind int

const (
	// KindSpawned: a car or police agent entered the track
	// Trigger: SpawnCar, SpawnPolice, deferred spawns | Consumer: audio, HUD
	KindSpawned Kind = iota

	// KindCaptured: a police contact removed a car
	// Trigger: ContactResolver | Consumer: audio (siren), effects, HUD
	KindCaptured

	// KindRemoved: a car or police agent left without capture
	// Trigger: Remove, ClearAllCarsAndPolice
	KindRemoved

	// KindObstacleAdded: an obstacle was placed
	// Trigger: SpawnObstacle | Consumer: audio
	KindObstacleAdded

	// KindObstacleHit: a moving agent touched an obstacle; no mutation
	// Trigger: ContactResolver | Consumer: audio
	KindObstacleHit

	// KindCleared: every car and police agent was removed
	// Trigger: ClearAllCarsAndPolice, Reset
	KindCleared
)

func (k Kind) String() string {
	switch k {
	case KindSpawned:
		return "spawned"
	case KindCaptured:
		return "captured"
	case KindRemoved:
		return "removed"
	case KindObstacleAdded:
		return "obstacle-added"
	case KindObstacleHit:
		return "obstacle-hit"
	case KindCleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// Body is one side of a contact
type Body struct {
	Role   agent.Role
	Handle agent.Handle
}

// ContactEvent reports that two bodies started touching; order of A and B is arbitrary
type ContactEvent struct {
	A, B Body
}
