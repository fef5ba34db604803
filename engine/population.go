package engine

import (
	"github.com/lixenwraith/pursuit/agent"
	"github.com/lixenwraith/pursuit/steer"
)

// Population owns the live agents: ordered cars, police and obstacles plus
// the median singleton
type Population struct {
	cars      []*agent.Agent
	police    []*agent.Agent
	obstacles []*agent.Agent
	median    *agent.Agent
	index     map[agent.Handle]*agent.Agent
}

func newPopulation() *Population {
	return &Population{index: make(map[agent.Handle]*agent.Agent)}
}

func (p *Population) list(role agent.Role) *[]*agent.Agent {
	switch role {
	case agent.RoleNormalCar:
		return &p.cars
	case agent.RolePoliceCar:
		return &p.police
	case agent.RoleObstacle:
		return &p.obstacles
	default:
		return nil
	}
}

func (p *Population) add(a *agent.Agent) {
	if a.Role == agent.RoleMedian {
		p.median = a
	} else if l := p.list(a.Role); l != nil {
		*l = append(*l, a)
	} else {
		return
	}
	p.index[a.Handle] = a
}

// remove drops h preserving order of the rest; absent handles report false
func (p *Population) remove(h agent.Handle) (*agent.Agent, bool) {
	a, ok := p.index[h]
	if !ok {
		return nil, false
	}
	delete(p.index, h)

	if a.Role == agent.RoleMedian {
		p.median = nil
		return a, true
	}
	l := p.list(a.Role)
	for i, x := range *l {
		if x.Handle == h {
			*l = append((*l)[:i], (*l)[i+1:]...)
			break
		}
	}
	return a, true
}

func (p *Population) get(h agent.Handle) (*agent.Agent, bool) {
	a, ok := p.index[h]
	return a, ok
}

func (p *Population) handles(role agent.Role) []agent.Handle {
	l := p.list(role)
	if l == nil {
		return nil
	}
	out := make([]agent.Handle, len(*l))
	for i, a := range *l {
		out[i] = a.Handle
	}
	return out
}

func (p *Population) count(role agent.Role) int {
	if l := p.list(role); l != nil {
		return len(*l)
	}
	return 0
}

// movers returns cars then police
func (p *Population) movers() []*agent.Agent {
	out := make([]*agent.Agent, 0, len(p.cars)+len(p.police))
	out = append(out, p.cars...)
	return append(out, p.police...)
}

// snapshot copies every agent state for logically simultaneous evaluation
func (p *Population) snapshot() steer.Snapshot {
	snap := make(steer.Snapshot, len(p.index))
	for h, a := range p.index {
		snap[h] = a.State()
	}
	return snap
}

// poses lists obstacles, cars, police, in that draw order; the median is excluded
func (p *Population) poses() []agent.Pose {
	out := make([]agent.Pose, 0, len(p.obstacles)+len(p.cars)+len(p.police))
	for _, group := range [][]*agent.Agent{p.obstacles, p.cars, p.police} {
		for _, a := range group {
			out = append(out, a.Pose())
		}
	}
	return out
}
