// Package engine owns the simulation: population, per-tick advance, deferred
// work on simulated time and the contact resolution policy
package engine

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/pursuit/agent"
	"github.com/lixenwraith/pursuit/config"
	"github.com/lixenwraith/pursuit/event"
	"github.com/lixenwraith/pursuit/physics"
	"github.com/lixenwraith/pursuit/steer"
	"github.com/lixenwraith/pursuit/track"
	"github.com/lixenwraith/pursuit/vmath"
)

var (
	// ErrObstacleRemoval is returned when Remove targets an obstacle or the median
	ErrObstacleRemoval = errors.New("only cars and police can be removed")
)

// ContactDetector is the physics layer: it mirrors agent poses and reports
// contacts that began during a step
type ContactDetector interface {
	Add(p agent.Pose) error
	Remove(h agent.Handle)
	Sync(poses []agent.Pose)
	Step(dt float64) []event.ContactEvent
}

// Option configures a Simulation at construction
type Option func(*Simulation)

// WithLogger sets the structured logger; the default discards
func WithLogger(l *log.Logger) Option {
	return func(s *Simulation) { s.log = l }
}

// WithBus publishes notifications on b instead of a private bus
func WithBus(b *event.Bus) Option {
	return func(s *Simulation) { s.bus = b }
}

// WithDetector replaces the default cp-backed contact detector
func WithDetector(d ContactDetector) Option {
	return func(s *Simulation) { s.detector = d }
}

// WithSeed overrides the configured intercept target seed
func WithSeed(seed uint64) Option {
	return func(s *Simulation) { s.seed = seed }
}

// Simulation advances cars and police around the track. Single-threaded:
// every method must be called from the goroutine driving Advance
//
// Tick policy: all behaviors are evaluated against a snapshot taken at the
// start of the tick, then all agents integrate (compute-all-then-apply)
type Simulation struct {
	cfg   config.Config
	track *track.Track
	pop   *Population

	behaviors map[agent.Handle]*steer.Behavior
	targets   map[agent.Handle]agent.Handle // police -> chased car

	sched    *Scheduler
	detector ContactDetector
	resolver *ContactResolver
	bus      *event.Bus
	log      *log.Logger
	rng      *vmath.FastRand
	seed     uint64
	runID    uuid.UUID

	nextHandle agent.Handle
	effects    *effectSet

	now      float64
	ticks    uint64
	captures int
}

// New validates cfg and creates an empty simulation holding only the median
func New(cfg config.Config, opts ...Option) (*Simulation, error) {
	if err := cfg.World.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Tuning().Validate(); err != nil {
		return nil, err
	}
	tr, err := track.FromPairs(cfg.World.TrackPoints, cfg.World.TrackRadius)
	if err != nil {
		return nil, fmt.Errorf("world track: %w", err)
	}

	s := &Simulation{
		cfg:       cfg,
		track:     tr,
		pop:       newPopulation(),
		behaviors: make(map[agent.Handle]*steer.Behavior),
		targets:   make(map[agent.Handle]agent.Handle),
		sched:     NewScheduler(),
		seed:      cfg.World.Seed,
		runID:     uuid.New(),
		effects:   newEffectSet(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.log == nil {
		s.log = log.NewWithOptions(io.Discard, log.Options{})
	}
	s.log = s.log.With("run", s.runID.String())
	if s.bus == nil {
		s.bus = event.NewBus()
	}
	if s.detector == nil {
		s.detector = physics.NewSpace(cfg.World.Frame)
	}
	s.rng = vmath.NewFastRand(s.seed)
	s.resolver = &ContactResolver{sim: s}

	s.addMedian()
	s.log.Info("simulation created",
		"track_length", tr.Length(), "track_radius", tr.Radius(), "seed", s.seed)
	return s, nil
}

func (s *Simulation) addMedian() {
	m := s.cfg.World.Median
	spec := agent.Spec{Mass: m.Mass, Radius: m.Radius}
	s.pop.add(agent.New(s.issue(), agent.RoleMedian, vmath.Vec(m.X, m.Y), 0, spec))
}

func (s *Simulation) issue() agent.Handle {
	s.nextHandle++
	return s.nextHandle
}

// Advance runs one tick of dt simulated seconds; dt <= 0 is a no-op
func (s *Simulation) Advance(dt float64) {
	if !(dt > 0) {
		return
	}
	s.now += dt
	s.ticks++

	// Tick boundary: deferred spawns and effect cleanup
	s.sched.Advance(s.now)

	movers := s.pop.movers()
	if len(movers) > 0 {
		snap := s.pop.snapshot()
		accel := make([]r2.Vec, len(movers))
		for i, a := range movers {
			if b, ok := s.behaviors[a.Handle]; ok {
				accel[i] = b.Evaluate(snap[a.Handle], snap)
			}
		}
		poses := make([]agent.Pose, len(movers))
		for i, a := range movers {
			a.Integrate(dt, accel[i])
			poses[i] = a.Pose()
		}
		s.detector.Sync(poses)
	}

	for _, ev := range s.detector.Step(dt) {
		s.resolver.Resolve(ev)
	}
}

// --- Population operations ---

// SpawnCar adds a normal car at the spawn point
func (s *Simulation) SpawnCar() agent.Handle {
	return s.spawnMover(agent.RoleNormalCar, s.cfg.World.Car)
}

// SpawnPolice adds a police car at the spawn point
func (s *Simulation) SpawnPolice() agent.Handle {
	return s.spawnMover(agent.RolePoliceCar, s.cfg.World.Police)
}

// SpawnCarAfter schedules SpawnCar delay simulated seconds from now
func (s *Simulation) SpawnCarAfter(delay float64) {
	s.sched.After(delay, func() { s.SpawnCar() })
}

// SpawnPoliceAfter schedules SpawnPolice delay simulated seconds from now
func (s *Simulation) SpawnPoliceAfter(delay float64) {
	s.sched.After(delay, func() { s.SpawnPolice() })
}

func (s *Simulation) spawnMover(role agent.Role, spec agent.Spec) agent.Handle {
	at := vmath.Vec(s.cfg.World.Spawn[0], s.cfg.World.Spawn[1])
	heading := vmath.Angle(s.track.Tangent(at))
	a := agent.New(s.issue(), role, at, heading, spec)
	s.insert(a)

	s.log.Info("agent spawned", "role", role, "handle", a.Handle, "t", s.now,
		"cars", s.pop.count(agent.RoleNormalCar), "police", s.pop.count(agent.RolePoliceCar))
	s.publish(event.Notification{Kind: event.KindSpawned, Role: role, Handle: a.Handle, Position: at})
	s.rebuild()
	return a.Handle
}

// SpawnObstacle places a stationary obstacle at the given point
func (s *Simulation) SpawnObstacle(at r2.Vec) agent.Handle {
	a := agent.New(s.issue(), agent.RoleObstacle, at, 0, s.cfg.World.Obstacle)
	a.MaxSpeed, a.MaxAcceleration = 0, 0
	s.insert(a)

	s.log.Info("obstacle added", "handle", a.Handle, "x", at.X, "y", at.Y, "t", s.now)
	s.publish(event.Notification{Kind: event.KindObstacleAdded, Role: agent.RoleObstacle, Handle: a.Handle, Position: at})
	s.rebuild()
	return a.Handle
}

func (s *Simulation) insert(a *agent.Agent) {
	s.pop.add(a)
	if err := s.detector.Add(a.Pose()); err != nil {
		// Handles are never reused, so this is a detector fault; steering still runs
		s.log.Error("detector add failed", "handle", a.Handle, "err", err)
	}
}

// Remove takes a car or police agent out of the simulation. Absent handles are
// a no-op; obstacles and the median are refused
func (s *Simulation) Remove(h agent.Handle) error {
	a, ok := s.pop.get(h)
	if !ok {
		return nil
	}
	if !a.Role.Moving() {
		return fmt.Errorf("remove %s %d: %w", a.Role, h, ErrObstacleRemoval)
	}
	s.drop(a)
	s.log.Info("agent removed", "role", a.Role, "handle", h, "t", s.now)
	s.publish(event.Notification{Kind: event.KindRemoved, Role: a.Role, Handle: h, Position: a.Position})
	s.rebuild()
	return nil
}

func (s *Simulation) drop(a *agent.Agent) {
	s.pop.remove(a.Handle)
	s.detector.Remove(a.Handle)
	delete(s.behaviors, a.Handle)
	delete(s.targets, a.Handle)
}

// ClearAllCarsAndPolice removes every moving agent; obstacles persist
func (s *Simulation) ClearAllCarsAndPolice() {
	movers := s.pop.movers()
	for _, a := range movers {
		s.drop(a)
		s.publish(event.Notification{Kind: event.KindRemoved, Role: a.Role, Handle: a.Handle, Position: a.Position})
	}
	s.log.Info("cleared", "removed", len(movers), "t", s.now)
	s.publish(event.Notification{Kind: event.KindCleared})
	s.rebuild()
}

// ResetScene tears the scene down to the median alone: cars, police,
// obstacles, effects and pending deferred spawns are all discarded
func (s *Simulation) ResetScene() {
	s.sched.Cancel()
	for _, a := range s.pop.movers() {
		s.drop(a)
	}
	for _, h := range s.pop.handles(agent.RoleObstacle) {
		s.pop.remove(h)
		s.detector.Remove(h)
	}
	s.effects.reset()
	s.log.Info("scene reset", "t", s.now)
	s.publish(event.Notification{Kind: event.KindCleared})
	s.rebuild()
}

// Reconfigure applies new tuning field by field; rejected fields keep their
// current value and are returned as config.ErrInvalid
func (s *Simulation) Reconfigure(t config.Tuning) error {
	merged, err := s.cfg.Tuning().Merge(t)
	s.cfg = s.cfg.WithTuning(merged)
	if err != nil {
		s.log.Warn("tuning rejected", "err", err)
	} else {
		s.log.Info("reconfigured", "car_speed", merged.Car.ReachSpeed, "police_speed", merged.Police.ReachSpeed)
	}
	s.rebuild()
	return err
}

// rebuild replaces every behavior from the current configuration and population
func (s *Simulation) rebuild() {
	scene := steer.Scene{
		Path:      s.track,
		Cars:      s.pop.handles(agent.RoleNormalCar),
		Police:    s.pop.handles(agent.RolePoliceCar),
		Obstacles: s.pop.handles(agent.RoleObstacle),
	}
	if s.pop.median != nil {
		scene.Median = s.pop.median.Handle
	}

	clear(s.behaviors)
	clear(s.targets)
	for _, h := range scene.Cars {
		s.behaviors[h] = steer.CarBehavior(s.cfg.Car, scene)
	}
	for _, h := range scene.Police {
		b, target := steer.PoliceBehavior(s.cfg.Police, scene, s.rng)
		s.behaviors[h] = b
		if target != 0 {
			s.targets[h] = target
		}
	}

	s.log.Debug("behaviors rebuilt", "cars", len(scene.Cars), "police", len(scene.Police),
		"obstacles", len(scene.Obstacles), "t", s.now)
}

func (s *Simulation) publish(n event.Notification) {
	n.Time = s.now
	s.bus.Publish(n)
}

// --- Accessors ---

func (s *Simulation) Cars() []agent.Handle      { return s.pop.handles(agent.RoleNormalCar) }
func (s *Simulation) Police() []agent.Handle    { return s.pop.handles(agent.RolePoliceCar) }
func (s *Simulation) Obstacles() []agent.Handle { return s.pop.handles(agent.RoleObstacle) }

// Median returns the median agent handle
func (s *Simulation) Median() agent.Handle {
	if s.pop.median == nil {
		return 0
	}
	return s.pop.median.Handle
}

// Agent returns the current state of h
func (s *Simulation) Agent(h agent.Handle) (agent.State, bool) {
	a, ok := s.pop.get(h)
	if !ok {
		return agent.State{}, false
	}
	return a.State(), true
}

// Poses returns draw data for obstacles, cars and police
func (s *Simulation) Poses() []agent.Pose { return s.pop.poses() }

// Effects returns live capture effects
func (s *Simulation) Effects() []Effect { return s.effects.list() }

// Behavior returns the current behavior of a car or police agent
func (s *Simulation) Behavior(h agent.Handle) (*steer.Behavior, bool) {
	b, ok := s.behaviors[h]
	return b, ok
}

// Target returns the car a police agent is chasing, 0 if none
func (s *Simulation) Target(police agent.Handle) agent.Handle { return s.targets[police] }

func (s *Simulation) Now() float64          { return s.now }
func (s *Simulation) Ticks() uint64         { return s.ticks }
func (s *Simulation) Captures() int         { return s.captures }
func (s *Simulation) Track() *track.Track   { return s.track }
func (s *Simulation) Config() config.Config { return s.cfg }
func (s *Simulation) RunID() uuid.UUID      { return s.runID }
func (s *Simulation) Bus() *event.Bus       { return s.bus }
func (s *Simulation) Resolver() *ContactResolver {
	return s.resolver
}

// Pending returns the number of deferred callbacks not yet run
func (s *Simulation) Pending() int { return s.sched.Pending() }
