// Package agent defines the kinematic entities of the simulation: cars,
// police, obstacles and the median zone, with their integration step
package agent

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/pursuit/vmath"
)

// Handle identifies an agent for its lifetime; 0 is never issued
type Handle uint64

// Role classifies an agent (and contact bodies) for behavior and contact policy
type Role uint8

const (
	RoleNone Role = iota
	RoleNormalCar
	RolePoliceCar
	RoleObstacle
	RoleMedian
	RoleWall
)

func (r Role) String() string {
	switch r {
	case RoleNormalCar:
		return "car"
	case RolePoliceCar:
		return "police"
	case RoleObstacle:
		return "obstacle"
	case RoleMedian:
		return "median"
	case RoleWall:
		return "wall"
	default:
		return "none"
	}
}

// Moving reports whether agents of this role are advanced each tick
func (r Role) Moving() bool {
	return r == RoleNormalCar || r == RolePoliceCar
}

// Spec is the physical profile an agent is created with
type Spec struct {
	Mass            float64 `toml:"mass"`
	MaxSpeed        float64 `toml:"max_speed"`
	MaxAcceleration float64 `toml:"max_acceleration"`
	Radius          float64 `toml:"radius"`
}

// Agent is a point-mass vehicle with speed and acceleration limits
type Agent struct {
	Handle      Handle
	Role        Role
	Position    r2.Vec
	Velocity    r2.Vec
	Orientation float64 // radians, heading of the last non-zero velocity

	Mass            float64
	MaxSpeed        float64
	MaxAcceleration float64
	Radius          float64
}

// New creates an agent at rest at pos facing orientation
func New(h Handle, role Role, pos r2.Vec, orientation float64, spec Spec) *Agent {
	return &Agent{
		Handle:          h,
		Role:            role,
		Position:        pos,
		Orientation:     orientation,
		Mass:            spec.Mass,
		MaxSpeed:        spec.MaxSpeed,
		MaxAcceleration: spec.MaxAcceleration,
		Radius:          spec.Radius,
	}
}

// Speed returns |velocity|
func (a *Agent) Speed() float64 {
	return r2.Norm(a.Velocity)
}

// Heading returns the unit facing vector
func (a *Agent) Heading() r2.Vec {
	return vmath.FromAngle(a.Orientation)
}

// Predict returns the linearly extrapolated position after t seconds
func (a *Agent) Predict(t float64) r2.Vec {
	return r2.Add(a.Position, r2.Scale(t, a.Velocity))
}

// State returns a value snapshot of the agent
func (a *Agent) State() State {
	return State{
		Handle:          a.Handle,
		Role:            a.Role,
		Position:        a.Position,
		Velocity:        a.Velocity,
		Orientation:     a.Orientation,
		MaxSpeed:        a.MaxSpeed,
		MaxAcceleration: a.MaxAcceleration,
		Radius:          a.Radius,
	}
}

// Pose returns what a presentation layer needs to draw the agent
func (a *Agent) Pose() Pose {
	return Pose{
		Handle:      a.Handle,
		Role:        a.Role,
		Position:    a.Position,
		Orientation: a.Orientation,
		Radius:      a.Radius,
	}
}

// State is an immutable copy of an agent's kinematics taken at tick start
type State struct {
	Handle          Handle
	Role            Role
	Position        r2.Vec
	Velocity        r2.Vec
	Orientation     float64
	MaxSpeed        float64
	MaxAcceleration float64
	Radius          float64
}

// Speed returns |velocity|
func (s State) Speed() float64 {
	return r2.Norm(s.Velocity)
}

// Heading returns the unit direction of travel, falling back to the
// orientation when at rest
func (s State) Heading() r2.Vec {
	if speed := r2.Norm(s.Velocity); speed > vmath.Epsilon {
		return r2.Scale(1/speed, s.Velocity)
	}
	return vmath.FromAngle(s.Orientation)
}

// Predict returns the linearly extrapolated position after t seconds
func (s State) Predict(t float64) r2.Vec {
	return r2.Add(s.Position, r2.Scale(t, s.Velocity))
}

// Pose is the render-facing view of an agent
type Pose struct {
	Handle      Handle
	Role        Role
	Position    r2.Vec
	Orientation float64
	Radius      float64
}
