// Package physics detects contacts between agents with a Chipmunk2D space
//
// Steering owns the kinematics: moving agents are sensor bodies teleported to
// their integrated pose every tick, so the space only reports overlaps
package physics

import (
	"github.com/jakecoffman/cp"

	"github.com/lixenwraith/pursuit/agent"
)

// Collision types registered with the space
const (
	TypeNone cp.CollisionType = iota
	TypeCar
	TypePolice
	TypeObstacle
	TypeWall
)

// Profile describes how an agent role is represented in the space
type Profile struct {
	Type   cp.CollisionType
	Static bool // static body, never synced
	Sensor bool // reports contacts without collision response
}

// Profiles - pre-defined per role
var (
	CarProfile      = Profile{Type: TypeCar, Sensor: true}
	PoliceProfile   = Profile{Type: TypePolice, Sensor: true}
	ObstacleProfile = Profile{Type: TypeObstacle, Static: true, Sensor: true}
	WallProfile     = Profile{Type: TypeWall, Static: true, Sensor: true}
)

// ProfileFor returns the profile of role; ok is false for roles kept out of the space
func ProfileFor(role agent.Role) (Profile, bool) {
	switch role {
	case agent.RoleNormalCar:
		return CarProfile, true
	case agent.RolePoliceCar:
		return PoliceProfile, true
	case agent.RoleObstacle:
		return ObstacleProfile, true
	case agent.RoleWall:
		return WallProfile, true
	default:
		return Profile{}, false
	}
}

// contactPairs are the type pairs that produce ContactEvents
var contactPairs = [][2]cp.CollisionType{
	{TypePolice, TypeCar},
	{TypeCar, TypeObstacle},
	{TypePolice, TypeObstacle},
	{TypeCar, TypeWall},
	{TypePolice, TypeWall},
}
