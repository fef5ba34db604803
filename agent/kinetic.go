package agent

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/pursuit/vmath"
)

// Integrate performs one semi-implicit Euler step under acceleration accel:
// a is clamped to MaxAcceleration, v = v + a*dt clamped to MaxSpeed, p = p + v*dt
// Orientation follows velocity unless the agent is at rest. dt <= 0 is a no-op
func (a *Agent) Integrate(dt float64, accel r2.Vec) {
	if !(dt > 0) {
		return
	}

	accel = vmath.ClampMagnitude(accel, a.MaxAcceleration)
	a.Velocity = vmath.ClampMagnitude(r2.Add(a.Velocity, r2.Scale(dt, accel)), a.MaxSpeed)
	a.Position = r2.Add(a.Position, r2.Scale(dt, a.Velocity))

	if r2.Norm(a.Velocity) > vmath.Epsilon {
		a.Orientation = vmath.Angle(a.Velocity)
	}
}
