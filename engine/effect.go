package engine

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/pursuit/parameter"
)

// Effect is a capture marker left where a car was taken
type Effect struct {
	ID       uint64
	Position r2.Vec
	Started  float64
	Fading   bool
}

type effectSet struct {
	next  uint64
	items []Effect
}

func newEffectSet() *effectSet {
	return &effectSet{}
}

func (e *effectSet) start(at r2.Vec, now float64) uint64 {
	e.next++
	e.items = append(e.items, Effect{ID: e.next, Position: at, Started: now})
	return e.next
}

// fade marks id as fading; false when it is already gone
func (e *effectSet) fade(id uint64) bool {
	for i := range e.items {
		if e.items[i].ID == id {
			e.items[i].Fading = true
			return true
		}
	}
	return false
}

func (e *effectSet) remove(id uint64) {
	for i := range e.items {
		if e.items[i].ID == id {
			e.items = append(e.items[:i], e.items[i+1:]...)
			return
		}
	}
}

func (e *effectSet) list() []Effect {
	out := make([]Effect, len(e.items))
	copy(out, e.items)
	return out
}

func (e *effectSet) reset() {
	e.items = nil
}

// startEffect adds a capture marker that fades and is then removed on
// simulated time
func (s *Simulation) startEffect(at r2.Vec) {
	id := s.effects.start(at, s.now)
	s.sched.After(parameter.EffectFadeDelay, func() {
		if !s.effects.fade(id) {
			return
		}
		s.sched.After(parameter.EffectRemoveDelay, func() {
			s.effects.remove(id)
		})
	})
}
