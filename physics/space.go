package physics

import (
	"fmt"

	"github.com/jakecoffman/cp"

	"github.com/lixenwraith/pursuit/agent"
	"github.com/lixenwraith/pursuit/config"
	"github.com/lixenwraith/pursuit/event"
	"github.com/lixenwraith/pursuit/parameter"
)

type entry struct {
	body    *cp.Body
	shape   *cp.Shape
	profile Profile
}

// Space wraps a cp.Space and turns collision begin callbacks into ContactEvents
// Not safe for concurrent use
type Space struct {
	space   *cp.Space
	entries map[agent.Handle]*entry
	walls   []*cp.Shape
	pending []event.ContactEvent
}

// NewSpace creates a space with static walls along frame
func NewSpace(frame config.Frame) *Space {
	s := &Space{
		space:   cp.NewSpace(),
		entries: make(map[agent.Handle]*entry),
	}

	for _, pair := range contactPairs {
		handler := s.space.NewCollisionHandler(pair[0], pair[1])
		handler.BeginFunc = s.begin
	}

	corners := []cp.Vector{
		{X: frame.MinX, Y: frame.MinY},
		{X: frame.MaxX, Y: frame.MinY},
		{X: frame.MaxX, Y: frame.MaxY},
		{X: frame.MinX, Y: frame.MaxY},
	}
	for i := range corners {
		a, b := corners[i], corners[(i+1)%len(corners)]
		wall := cp.NewSegment(s.space.StaticBody, a, b, parameter.WallThickness)
		wall.SetSensor(WallProfile.Sensor)
		wall.SetCollisionType(WallProfile.Type)
		wall.UserData = event.Body{Role: agent.RoleWall}
		s.walls = append(s.walls, s.space.AddShape(wall))
	}

	return s
}

// begin records the contact and lets cp keep tracking the pair
func (s *Space) begin(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
	a, b := arb.Shapes()
	ba, okA := a.UserData.(event.Body)
	bb, okB := b.UserData.(event.Body)
	if okA && okB {
		s.pending = append(s.pending, event.ContactEvent{A: ba, B: bb})
	}
	return true
}

// Add inserts a body for the agent at pose; roles without a profile are ignored
func (s *Space) Add(p agent.Pose) error {
	profile, ok := ProfileFor(p.Role)
	if !ok {
		return nil
	}
	if _, exists := s.entries[p.Handle]; exists {
		return fmt.Errorf("physics: handle %d already in space", p.Handle)
	}
	if !(p.Radius > 0) {
		return fmt.Errorf("physics: handle %d radius %v", p.Handle, p.Radius)
	}

	var body *cp.Body
	if profile.Static {
		body = cp.NewStaticBody()
	} else {
		// Mass only matters to cp's solver; sensors never receive impulses
		body = cp.NewBody(1, cp.MomentForCircle(1, 0, p.Radius, cp.Vector{}))
	}
	body.SetPosition(toCP(p))
	body.SetAngle(p.Orientation)
	s.space.AddBody(body)

	shape := cp.NewCircle(body, p.Radius, cp.Vector{})
	shape.SetSensor(profile.Sensor)
	shape.SetCollisionType(profile.Type)
	shape.UserData = event.Body{Role: p.Role, Handle: p.Handle}
	s.space.AddShape(shape)

	s.entries[p.Handle] = &entry{body: body, shape: shape, profile: profile}
	return nil
}

// Remove drops the agent's body; absent handles are a no-op
func (s *Space) Remove(h agent.Handle) {
	e, ok := s.entries[h]
	if !ok {
		return
	}
	s.space.RemoveShape(e.shape)
	s.space.RemoveBody(e.body)
	delete(s.entries, h)
}

// Sync moves dynamic bodies to the given poses
func (s *Space) Sync(poses []agent.Pose) {
	for _, p := range poses {
		e, ok := s.entries[p.Handle]
		if !ok || e.profile.Static {
			continue
		}
		e.body.SetPosition(toCP(p))
		e.body.SetAngle(p.Orientation)
		e.body.SetVelocity(0, 0)
	}
}

// Step advances the space and returns contacts begun during the step, in report order
func (s *Space) Step(dt float64) []event.ContactEvent {
	if !(dt > 0) {
		return nil
	}
	s.pending = s.pending[:0]
	s.space.Step(dt)

	if len(s.pending) == 0 {
		return nil
	}
	out := make([]event.ContactEvent, len(s.pending))
	copy(out, s.pending)
	return out
}

// Len returns the number of agent bodies, walls excluded
func (s *Space) Len() int {
	return len(s.entries)
}

// Has reports whether h has a body
func (s *Space) Has(h agent.Handle) bool {
	_, ok := s.entries[h]
	return ok
}

func toCP(p agent.Pose) cp.Vector {
	return cp.Vector{X: p.Position.X, Y: p.Position.Y}
}
