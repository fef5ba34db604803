// Package steer turns weighted goals into per-tick steering accelerations
//
// Goals return dimensionless intents (roughly unit magnitude each); a Behavior
// scales them by their weights and the agent clamps the sum on integration
package steer

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/pursuit/agent"
	"github.com/lixenwraith/pursuit/parameter"
	"github.com/lixenwraith/pursuit/track"
	"github.com/lixenwraith/pursuit/vmath"
)

// World resolves handles against the tick-start snapshot
type World interface {
	Agent(h agent.Handle) (agent.State, bool)
}

// Snapshot is a World backed by a state map
type Snapshot map[agent.Handle]agent.State

func (s Snapshot) Agent(h agent.Handle) (agent.State, bool) {
	st, ok := s[h]
	return st, ok
}

// Kind names a goal family
type Kind uint8

const (
	KindStayOnPath Kind = iota
	KindFollowPath
	KindReachSpeed
	KindAvoid
	KindIntercept
)

func (k Kind) String() string {
	switch k {
	case KindStayOnPath:
		return "stay-on-path"
	case KindFollowPath:
		return "follow-path"
	case KindReachSpeed:
		return "reach-speed"
	case KindAvoid:
		return "avoid"
	case KindIntercept:
		return "intercept"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Goal is a stateless steering rule evaluated once per tick per agent
type Goal interface {
	Kind() Kind
	Evaluate(self agent.State, w World) r2.Vec
}

// --- StayOnPath ---

// StayOnPath pulls an agent whose predicted position leaves the corridor back
// toward the centerline
type StayOnPath struct {
	Path    *track.Track
	Horizon float64
}

func NewStayOnPath(path *track.Track, horizon float64) StayOnPath {
	return StayOnPath{Path: path, Horizon: horizon}
}

func (StayOnPath) Kind() Kind { return KindStayOnPath }

func (g StayOnPath) Evaluate(self agent.State, _ World) r2.Vec {
	predicted := self.Predict(g.Horizon)
	toPath := r2.Sub(g.Path.NearestPoint(predicted), predicted)
	dist := r2.Norm(toPath)
	radius := g.Path.Radius()

	excess := dist - radius
	if excess <= 0 {
		return r2.Vec{}
	}

	strength := vmath.Clamp(excess/(radius/2), 0, 1)
	dir := r2.Scale(1/dist, toPath)

	// Steer only, throttle belongs to ReachSpeed
	if self.Speed() > vmath.Epsilon {
		if lateral := vmath.Reject(dir, self.Heading()); !vmath.IsZero(lateral) {
			dir = lateral
		}
	}
	return r2.Scale(strength, dir)
}

// --- FollowPath ---

// FollowPath turns the heading toward the path tangent at the predicted position
type FollowPath struct {
	Path    *track.Track
	Horizon float64
	Forward bool
}

func NewFollowPath(path *track.Track, horizon float64, forward bool) FollowPath {
	return FollowPath{Path: path, Horizon: horizon, Forward: forward}
}

func (FollowPath) Kind() Kind { return KindFollowPath }

func (g FollowPath) Evaluate(self agent.State, _ World) r2.Vec {
	tangent := g.Path.Tangent(self.Predict(g.Horizon))
	if !g.Forward {
		tangent = r2.Scale(-1, tangent)
	}

	if self.Speed() <= vmath.Epsilon {
		return tangent
	}

	heading := self.Heading()
	turn := vmath.Reject(r2.Sub(tangent, heading), heading)
	if vmath.IsZero(turn) {
		if r2.Dot(tangent, heading) < 0 {
			return vmath.Perpendicular(heading)
		}
		return r2.Vec{}
	}
	return vmath.ClampMagnitude(r2.Scale(parameter.FollowTurnGain, turn), 1)
}

// --- ReachSpeed ---

// ReachSpeed accelerates or brakes along the heading toward a target speed
type ReachSpeed struct {
	Target float64
}

func NewReachSpeed(target float64) ReachSpeed {
	return ReachSpeed{Target: target}
}

func (ReachSpeed) Kind() Kind { return KindReachSpeed }

func (g ReachSpeed) Evaluate(self agent.State, _ World) r2.Vec {
	heading := self.Heading()
	along := r2.Dot(self.Velocity, heading)
	return r2.Scale(vmath.Clamp((g.Target-along)/parameter.SpeedBand, -1, 1), heading)
}

// --- Avoid ---

// Avoid steers away from targets whose closest approach within the horizon
// would come inside the inflated combined radius
type Avoid struct {
	Targets []agent.Handle
	Horizon float64
}

// NewAvoid panics on an empty target list; callers omit the goal instead
func NewAvoid(targets []agent.Handle, horizon float64) Avoid {
	if len(targets) == 0 {
		panic("steer: Avoid requires at least one target")
	}
	ts := make([]agent.Handle, len(targets))
	copy(ts, targets)
	return Avoid{Targets: ts, Horizon: horizon}
}

func (Avoid) Kind() Kind { return KindAvoid }

func (g Avoid) Evaluate(self agent.State, w World) r2.Vec {
	var sum r2.Vec
	for _, h := range g.Targets {
		if h == self.Handle {
			continue
		}
		other, ok := w.Agent(h)
		if !ok {
			continue
		}
		sum = r2.Add(sum, avoidOne(self, other, g.Horizon))
	}
	return sum
}

func avoidOne(self, other agent.State, horizon float64) r2.Vec {
	d := r2.Sub(other.Position, self.Position)
	contact := self.Radius + other.Radius

	// Already touching
	if r2.Norm(d) < contact {
		if away := vmath.Normalize(r2.Scale(-1, d)); !vmath.IsZero(away) {
			return away
		}
		return vmath.Perpendicular(self.Heading())
	}

	u := r2.Sub(other.Velocity, self.Velocity)
	t, c := vmath.ClosestApproach(d, u)
	if t <= 0 || t > horizon {
		return r2.Vec{}
	}
	sep := r2.Norm(c)
	if sep >= contact*parameter.AvoidClearance {
		return r2.Vec{}
	}

	// Inverse in the time to closest approach, unbounded so a near threat
	// outweighs the path terms
	urgency := parameter.AvoidUrgencyTime / t
	if sep < vmath.Epsilon {
		return r2.Scale(urgency, vmath.Perpendicular(self.Heading()))
	}
	return r2.Scale(-urgency/sep, c)
}

// --- Intercept ---

// Intercept pursues a target's predicted position
type Intercept struct {
	Target  agent.Handle
	Horizon float64
}

// NewIntercept panics on the zero handle; callers substitute ReachSpeed when
// there is nothing to chase
func NewIntercept(target agent.Handle, horizon float64) Intercept {
	if target == 0 {
		panic("steer: Intercept requires a target")
	}
	return Intercept{Target: target, Horizon: horizon}
}

func (Intercept) Kind() Kind { return KindIntercept }

func (g Intercept) Evaluate(self agent.State, w World) r2.Vec {
	target, ok := w.Agent(g.Target)
	if !ok || self.MaxSpeed <= 0 {
		return r2.Vec{}
	}
	aim := target.Predict(g.Horizon)
	desired := r2.Scale(self.MaxSpeed, vmath.Normalize(r2.Sub(aim, self.Position)))
	return vmath.ClampMagnitude(r2.Scale(1/self.MaxSpeed, r2.Sub(desired, self.Velocity)), 1)
}
