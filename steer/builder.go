package steer

import (
	"github.com/lixenwraith/pursuit/agent"
	"github.com/lixenwraith/pursuit/config"
	"github.com/lixenwraith/pursuit/parameter"
	"github.com/lixenwraith/pursuit/track"
	"github.com/lixenwraith/pursuit/vmath"
)

// Scene is the population composition behaviors are built from
type Scene struct {
	Path      *track.Track
	Cars      []agent.Handle
	Police    []agent.Handle
	Obstacles []agent.Handle
	Median    agent.Handle // 0 when absent
}

// CarBehavior builds the normal car behavior for the current scene
func CarBehavior(t config.CarTuning, s Scene) *Behavior {
	road := t.StayOnRoad.Weight()
	b := NewBehavior().
		Add(NewStayOnPath(s.Path, parameter.PathPredictionTime), road, TagRoadStay).
		Add(NewFollowPath(s.Path, parameter.PathPredictionTime, true), road, TagRoadFollow).
		Add(NewReachSpeed(t.ReachSpeed), parameter.ReachSpeedWeight, TagSpeed)

	if len(s.Obstacles) > 0 {
		b.Add(NewAvoid(s.Obstacles, parameter.ObstaclePredictionTime), t.AvoidObstacles.Weight(), TagObstacles)
	}
	if s.Median != 0 {
		b.Add(NewAvoid([]agent.Handle{s.Median}, parameter.MedianPredictionTime), parameter.CarMedianWeight, TagMedian)
	}
	if len(s.Police) > 0 {
		b.Add(NewAvoid(s.Police, parameter.PolicePredictionTime), t.AvoidPolice.Weight(), TagPolice)
	}
	return b
}

// PoliceBehavior builds the police behavior and returns the chased car, 0 when
// no car exists. The target is drawn from rng on every call
func PoliceBehavior(t config.PoliceTuning, s Scene, rng *vmath.FastRand) (*Behavior, agent.Handle) {
	road := t.StayOnRoad.Weight()
	b := NewBehavior().
		Add(NewStayOnPath(s.Path, parameter.PathPredictionTime), road, TagRoadStay).
		Add(NewFollowPath(s.Path, parameter.PathPredictionTime, true), road, TagRoadFollow)

	if len(s.Obstacles) > 0 {
		b.Add(NewAvoid(s.Obstacles, parameter.ObstaclePredictionTime), t.AvoidObstacles.Weight(), TagObstacles)
	}
	if s.Median != 0 {
		b.Add(NewAvoid([]agent.Handle{s.Median}, parameter.MedianPredictionTime), parameter.PoliceMedianWeight, TagMedian)
	}

	if len(s.Cars) == 0 {
		b.Add(NewReachSpeed(parameter.PoliceCruiseSpeed), parameter.ReachSpeedWeight, TagSpeed)
		return b, 0
	}

	target := s.Cars[rng.Intn(len(s.Cars))]
	b.Add(NewReachSpeed(t.ReachSpeed), parameter.ReachSpeedWeight, TagSpeed).
		Add(NewIntercept(target, parameter.InterceptPredictionTime), t.ChaseCars.Weight(), TagChase)
	return b, target
}
