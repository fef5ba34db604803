package engine

import (
	"github.com/lixenwraith/pursuit/agent"
	"github.com/lixenwraith/pursuit/event"
)

// Outcome is the result of resolving one contact
type Outcome uint8

const (
	OutcomeIgnored Outcome = iota
	OutcomeObstacleHit
	OutcomeCaptured
	OutcomeStale // capture whose car or police is already gone
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeObstacleHit:
		return "obstacle-hit"
	case OutcomeCaptured:
		return "captured"
	case OutcomeStale:
		return "stale"
	default:
		return "unknown"
	}
}

// contact is a ContactEvent normalized by role, independent of A/B order
type contact struct {
	police, car, obstacle event.Body

	hasPolice, hasCar, hasObstacle, hasWall bool
}

func normalize(ev event.ContactEvent) contact {
	var c contact
	for _, b := range [2]event.Body{ev.A, ev.B} {
		switch b.Role {
		case agent.RolePoliceCar:
			if !c.hasPolice {
				c.police, c.hasPolice = b, true
			}
		case agent.RoleNormalCar:
			if !c.hasCar {
				c.car, c.hasCar = b, true
			}
		case agent.RoleObstacle:
			c.obstacle, c.hasObstacle = b, true
		case agent.RoleWall:
			c.hasWall = true
		}
	}
	return c
}

// mover returns the moving side of the contact, car first
func (c contact) mover() (event.Body, bool) {
	switch {
	case c.hasCar:
		return c.car, true
	case c.hasPolice:
		return c.police, true
	}
	return event.Body{}, false
}

// ContactResolver applies the contact policy to the simulation it belongs to
//
//	wall involved      -> ignored
//	obstacle involved  -> ObstacleHit notification, population untouched
//	police + car       -> car removed, Captured notification, effect started
//	anything else      -> ignored
type ContactResolver struct {
	sim *Simulation
}

// Resolve handles one contact; duplicates of a capture resolve to OutcomeStale
func (r *ContactResolver) Resolve(ev event.ContactEvent) Outcome {
	c := normalize(ev)
	s := r.sim

	switch {
	case c.hasWall:
		return OutcomeIgnored

	case c.hasObstacle:
		body, ok := c.mover()
		if !ok {
			return OutcomeIgnored
		}
		mover, ok := s.pop.get(body.Handle)
		if !ok {
			return OutcomeStale
		}
		s.log.Debug("obstacle hit", "role", mover.Role, "handle", mover.Handle, "obstacle", c.obstacle.Handle, "t", s.now)
		s.publish(event.Notification{
			Kind:     event.KindObstacleHit,
			Role:     mover.Role,
			Handle:   mover.Handle,
			Position: mover.Position,
			Partner:  c.obstacle.Handle,
		})
		return OutcomeObstacleHit

	case c.hasPolice && c.hasCar:
		return r.capture(c.police.Handle, c.car.Handle)

	default:
		return OutcomeIgnored
	}
}

func (r *ContactResolver) capture(policeH, carH agent.Handle) Outcome {
	s := r.sim
	car, ok := s.pop.get(carH)
	if !ok || car.Role != agent.RoleNormalCar {
		return OutcomeStale
	}
	if _, ok := s.pop.get(policeH); !ok {
		return OutcomeStale
	}

	s.drop(car)
	s.captures++
	s.log.Info("car captured", "car", carH, "police", policeH, "t", s.now,
		"cars", s.pop.count(agent.RoleNormalCar), "captures", s.captures)
	s.publish(event.Notification{
		Kind:     event.KindCaptured,
		Role:     agent.RoleNormalCar,
		Handle:   carH,
		Position: car.Position,
		Partner:  policeH,
	})
	s.startEffect(car.Position)
	s.rebuild()
	return OutcomeCaptured
}
