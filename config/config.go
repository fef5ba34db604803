// Package config holds the immutable simulation configuration: per-role
// tuning (target speeds and weight levels) and the world layout
package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/lixenwraith/pursuit/agent"
	"github.com/lixenwraith/pursuit/parameter"
)

var (
	// ErrInvalid marks a rejected tuning value; the previous value is kept
	ErrInvalid = errors.New("invalid tuning value")

	// ErrWorld marks an unusable world layout
	ErrWorld = errors.New("invalid world")
)

// CarTuning configures the normal car behavior
type CarTuning struct {
	ReachSpeed     float64 `toml:"reach_speed"`
	StayOnRoad     Level   `toml:"stay_on_road"`
	AvoidObstacles Level   `toml:"avoid_obstacles"`
	AvoidPolice    Level   `toml:"avoid_police"`
}

// PoliceTuning configures the police behavior
type PoliceTuning struct {
	ReachSpeed     float64 `toml:"reach_speed"`
	StayOnRoad     Level   `toml:"stay_on_road"`
	AvoidObstacles Level   `toml:"avoid_obstacles"`
	ChaseCars      Level   `toml:"chase_cars"`
}

// Tuning is the reconfigurable part of Config
type Tuning struct {
	Car    CarTuning
	Police PoliceTuning
}

// Median describes the non-traversable interior zone
type Median struct {
	X      float64 `toml:"x"`
	Y      float64 `toml:"y"`
	Radius float64 `toml:"radius"`
	Mass   float64 `toml:"mass"`
}

// Frame is the walled scene rectangle
type Frame struct {
	MinX float64 `toml:"min_x"`
	MinY float64 `toml:"min_y"`
	MaxX float64 `toml:"max_x"`
	MaxY float64 `toml:"max_y"`
}

// World is the fixed scene layout, set once at construction
type World struct {
	TrackPoints [][2]float64 `toml:"track_points"`
	TrackRadius float64      `toml:"track_radius"`
	Spawn       [2]float64   `toml:"spawn"`
	Median      Median       `toml:"median"`
	Frame       Frame        `toml:"frame"`
	Car         agent.Spec   `toml:"car"`
	Police      agent.Spec   `toml:"police"`
	Obstacle    agent.Spec   `toml:"obstacle"`
	Seed        uint64       `toml:"seed"`
}

// Config is passed by value into the simulation; nothing holds it globally
type Config struct {
	Car    CarTuning    `toml:"car"`
	Police PoliceTuning `toml:"police"`
	World  World        `toml:"world"`
}

// DefaultTuning returns the stock scene tuning
func DefaultTuning() Tuning {
	return Tuning{
		Car: CarTuning{
			ReachSpeed:     60,
			StayOnRoad:     LevelCritical,
			AvoidObstacles: LevelHigh,
			AvoidPolice:    LevelHigh,
		},
		Police: PoliceTuning{
			ReachSpeed:     80,
			StayOnRoad:     LevelHigh,
			AvoidObstacles: LevelHigh,
			ChaseCars:      LevelCritical,
		},
	}
}

// DefaultWorld returns the reference track layout and agent profiles
func DefaultWorld() World {
	points := make([][2]float64, len(parameter.TrackPoints))
	copy(points, parameter.TrackPoints)

	return World{
		TrackPoints: points,
		TrackRadius: parameter.TrackRadius,
		Spawn:       [2]float64{parameter.SpawnX, parameter.SpawnY},
		Median: Median{
			X:      parameter.MedianX,
			Y:      parameter.MedianY,
			Radius: parameter.MedianRadius,
			Mass:   parameter.MedianMass,
		},
		Frame: Frame{
			MinX: parameter.FrameMinX,
			MinY: parameter.FrameMinY,
			MaxX: parameter.FrameMaxX,
			MaxY: parameter.FrameMaxY,
		},
		Car: agent.Spec{
			Mass:            parameter.CarMass,
			MaxSpeed:        parameter.CarMaxSpeed,
			MaxAcceleration: parameter.CarMaxAcceleration,
			Radius:          parameter.CarRadius,
		},
		Police: agent.Spec{
			Mass:            parameter.PoliceMass,
			MaxSpeed:        parameter.PoliceMaxSpeed,
			MaxAcceleration: parameter.PoliceMaxAcceleration,
			Radius:          parameter.PoliceRadius,
		},
		Obstacle: agent.Spec{
			Mass:   parameter.ObstacleMass,
			Radius: parameter.ObstacleRadius,
		},
		Seed: parameter.DefaultSeed,
	}
}

// Default returns the complete stock configuration
func Default() Config {
	t := DefaultTuning()
	return Config{Car: t.Car, Police: t.Police, World: DefaultWorld()}
}

// Tuning extracts the reconfigurable part
func (c Config) Tuning() Tuning {
	return Tuning{Car: c.Car, Police: c.Police}
}

// WithTuning returns a copy of c carrying t
func (c Config) WithTuning(t Tuning) Config {
	c.Car = t.Car
	c.Police = t.Police
	return c
}

// Validate reports every invalid tuning field
func (t Tuning) Validate() error {
	_, err := DefaultTuning().Merge(t)
	return err
}

// Merge applies next over t field by field. Invalid fields keep the value
// from t and are reported, joined, as ErrInvalid
func (t Tuning) Merge(next Tuning) (Tuning, error) {
	var errs []error
	out := t

	speed := func(name string, dst *float64, v float64) {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, fmt.Errorf("%w: %s=%v, keeping %v", ErrInvalid, name, v, *dst))
			return
		}
		*dst = v
	}
	level := func(name string, dst *Level, v Level) {
		if !v.Valid() {
			errs = append(errs, fmt.Errorf("%w: %s=%v, keeping %v", ErrInvalid, name, v, *dst))
			return
		}
		*dst = v
	}

	speed("car.reach_speed", &out.Car.ReachSpeed, next.Car.ReachSpeed)
	level("car.stay_on_road", &out.Car.StayOnRoad, next.Car.StayOnRoad)
	level("car.avoid_obstacles", &out.Car.AvoidObstacles, next.Car.AvoidObstacles)
	level("car.avoid_police", &out.Car.AvoidPolice, next.Car.AvoidPolice)

	speed("police.reach_speed", &out.Police.ReachSpeed, next.Police.ReachSpeed)
	level("police.stay_on_road", &out.Police.StayOnRoad, next.Police.StayOnRoad)
	level("police.avoid_obstacles", &out.Police.AvoidObstacles, next.Police.AvoidObstacles)
	level("police.chase_cars", &out.Police.ChaseCars, next.Police.ChaseCars)

	return out, errors.Join(errs...)
}

// Validate checks the world layout strictly; track geometry itself is
// checked on construction
func (w World) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrWorld}, args...)...))
	}

	if len(w.TrackPoints) < 3 {
		bad("track needs at least 3 points, got %d", len(w.TrackPoints))
	}
	if !(w.TrackRadius > 0) {
		bad("track_radius=%v", w.TrackRadius)
	}
	if !(w.Median.Radius > 0) || !(w.Median.Mass > 0) {
		bad("median radius=%v mass=%v", w.Median.Radius, w.Median.Mass)
	}
	if !(w.Frame.MinX < w.Frame.MaxX) || !(w.Frame.MinY < w.Frame.MaxY) {
		bad("frame %+v", w.Frame)
	}
	for _, s := range []struct {
		name string
		spec agent.Spec
	}{{"car", w.Car}, {"police", w.Police}, {"obstacle", w.Obstacle}} {
		if !(s.spec.Mass > 0) || !(s.spec.Radius > 0) || s.spec.MaxSpeed < 0 || s.spec.MaxAcceleration < 0 {
			bad("%s profile %+v", s.name, s.spec)
		}
	}

	return errors.Join(errs...)
}
