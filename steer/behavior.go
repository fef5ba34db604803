package steer

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/pursuit/agent"
)

// Tag labels a behavior term by purpose
type Tag string

const (
	TagRoadStay   Tag = "road-stay"
	TagRoadFollow Tag = "road-follow"
	TagSpeed      Tag = "speed"
	TagObstacles  Tag = "obstacles"
	TagMedian     Tag = "median"
	TagPolice     Tag = "police"
	TagChase      Tag = "chase"
)

// Term is one weighted goal of a behavior
type Term struct {
	Goal   Goal
	Weight float64
	Tag    Tag
}

// Behavior is a weighted sum of goals. It is never patched: population
// changes produce a new Behavior
type Behavior struct {
	terms []Term
}

func NewBehavior(terms ...Term) *Behavior {
	b := &Behavior{terms: make([]Term, 0, len(terms))}
	for _, t := range terms {
		b.Add(t.Goal, t.Weight, t.Tag)
	}
	return b
}

// Add appends a term; a nil goal or non-positive weight is a caller bug
func (b *Behavior) Add(goal Goal, weight float64, tag Tag) *Behavior {
	if goal == nil {
		panic("steer: nil goal")
	}
	if !(weight > 0) {
		panic(fmt.Sprintf("steer: non-positive weight %v for %s", weight, tag))
	}
	b.terms = append(b.terms, Term{Goal: goal, Weight: weight, Tag: tag})
	return b
}

// Evaluate returns Σ weight·goal for self against the snapshot w
func (b *Behavior) Evaluate(self agent.State, w World) r2.Vec {
	var sum r2.Vec
	for _, t := range b.terms {
		sum = r2.Add(sum, r2.Scale(t.Weight, t.Goal.Evaluate(self, w)))
	}
	return sum
}

// Terms returns a copy of the term list
func (b *Behavior) Terms() []Term {
	out := make([]Term, len(b.terms))
	copy(out, b.terms)
	return out
}

// Term returns the first term carrying tag
func (b *Behavior) Term(tag Tag) (Term, bool) {
	for _, t := range b.terms {
		if t.Tag == tag {
			return t, true
		}
	}
	return Term{}, false
}

// Has reports whether any term carries tag
func (b *Behavior) Has(tag Tag) bool {
	_, ok := b.Term(tag)
	return ok
}

// Len returns the number of terms
func (b *Behavior) Len() int {
	return len(b.terms)
}
