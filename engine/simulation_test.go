package engine

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/pursuit/agent"
	"github.com/lixenwraith/pursuit/config"
	"github.com/lixenwraith/pursuit/event"
	"github.com/lixenwraith/pursuit/steer"
)

const tick = 1.0 / 60.0

// recorder collects every published notification
type recorder struct {
	got []event.Notification
}

func (r *recorder) handle(n event.Notification) { r.got = append(r.got, n) }

func (r *recorder) count(k event.Kind) int {
	n := 0
	for _, x := range r.got {
		if x.Kind == k {
			n++
		}
	}
	return n
}

func newSim(t *testing.T, cfg config.Config) (*Simulation, *recorder) {
	t.Helper()
	rec := &recorder{}
	bus := event.NewBus()
	bus.Subscribe(rec.handle)

	sim, err := New(cfg, WithBus(bus), WithSeed(1))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return sim, rec
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := config.Default()
	cfg.World.TrackRadius = 0
	if _, err := New(cfg); !errors.Is(err, config.ErrWorld) {
		t.Errorf("Expected ErrWorld, got %v", err)
	}

	cfg = config.Default()
	cfg.Car.ReachSpeed = -1
	if _, err := New(cfg); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("Expected ErrInvalid, got %v", err)
	}

	cfg = config.Default()
	cfg.World.TrackPoints = [][2]float64{{0, 0}, {0, 0}, {0, 0}}
	if _, err := New(cfg); err == nil {
		t.Error("Expected degenerate track error")
	}
}

func TestNewHoldsOnlyMedian(t *testing.T) {
	sim, _ := newSim(t, config.Default())

	if sim.Median() == 0 {
		t.Fatal("Expected a median agent")
	}
	m, ok := sim.Agent(sim.Median())
	if !ok || m.Role != agent.RoleMedian || m.Radius != config.DefaultWorld().Median.Radius {
		t.Errorf("Unexpected median %+v", m)
	}
	if len(sim.Cars())+len(sim.Police())+len(sim.Obstacles()) != 0 || len(sim.Poses()) != 0 {
		t.Error("Expected empty population")
	}
	if sim.RunID().String() == "" {
		t.Error("Expected a run id")
	}
}

func TestAdvanceNonPositiveIsNoop(t *testing.T) {
	sim, _ := newSim(t, config.Default())
	h := sim.SpawnCar()
	before, _ := sim.Agent(h)

	sim.Advance(0)
	sim.Advance(-1)

	after, _ := sim.Agent(h)
	if sim.Now() != 0 || sim.Ticks() != 0 || after != before {
		t.Errorf("Expected no change, now %f ticks %d", sim.Now(), sim.Ticks())
	}
}

func TestSpawnOrientation(t *testing.T) {
	sim, rec := newSim(t, config.Default())
	h := sim.SpawnCar()

	st, _ := sim.Agent(h)
	tangent := sim.Track().Tangent(st.Position)
	if d := r2.Dot(st.Heading(), tangent); d < 0.999 {
		t.Errorf("Expected spawn heading along track, dot %f", d)
	}
	if rec.count(event.KindSpawned) != 1 {
		t.Errorf("Expected one spawn notification, got %d", rec.count(event.KindSpawned))
	}
}

// TestRebuildOnPopulationChange verifies the police avoid term follows the police population
func TestRebuildOnPopulationChange(t *testing.T) {
	sim, _ := newSim(t, config.Default())
	car := sim.SpawnCar()

	b, ok := sim.Behavior(car)
	if !ok || b.Has(steer.TagPolice) || b.Has(steer.TagObstacles) {
		t.Fatalf("Expected car behavior without police or obstacle terms")
	}

	police := sim.SpawnPolice()
	b, _ = sim.Behavior(car)
	term, ok := b.Term(steer.TagPolice)
	if !ok || term.Weight <= 0 {
		t.Fatalf("Expected police avoid term after police spawn, got %+v", term)
	}
	if avoid := term.Goal.(steer.Avoid); len(avoid.Targets) != 1 || avoid.Targets[0] != police {
		t.Errorf("Expected avoid target %d, got %v", police, avoid.Targets)
	}
	if sim.Target(police) != car {
		t.Errorf("Expected police to chase %d, got %d", car, sim.Target(police))
	}

	sim.SpawnObstacle(r2.Vec{X: 300, Y: 0})
	b, _ = sim.Behavior(car)
	if !b.Has(steer.TagObstacles) {
		t.Error("Expected obstacle term after obstacle spawn")
	}

	if err := sim.Remove(police); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	b, _ = sim.Behavior(car)
	if b.Has(steer.TagPolice) {
		t.Error("Expected police avoid term gone after last police removed")
	}
	if _, ok := sim.Behavior(police); ok {
		t.Error("Expected removed police to have no behavior")
	}
}

func TestPoliceCruisesWithoutCars(t *testing.T) {
	sim, _ := newSim(t, config.Default())
	police := sim.SpawnPolice()

	b, _ := sim.Behavior(police)
	if b.Has(steer.TagChase) || sim.Target(police) != 0 {
		t.Fatal("Expected no chase term without cars")
	}

	car := sim.SpawnCar()
	b, _ = sim.Behavior(police)
	if !b.Has(steer.TagChase) || sim.Target(police) != car {
		t.Error("Expected chase term once a car exists")
	}
}

func TestRemove(t *testing.T) {
	sim, rec := newSim(t, config.Default())
	car := sim.SpawnCar()
	cone := sim.SpawnObstacle(r2.Vec{X: 100, Y: 200})

	if err := sim.Remove(cone); !errors.Is(err, ErrObstacleRemoval) {
		t.Errorf("Expected ErrObstacleRemoval, got %v", err)
	}
	if err := sim.Remove(sim.Median()); !errors.Is(err, ErrObstacleRemoval) {
		t.Errorf("Expected median removal refused, got %v", err)
	}
	if err := sim.Remove(car); err != nil {
		t.Fatalf("Remove car: %v", err)
	}
	if err := sim.Remove(car); err != nil {
		t.Errorf("Expected repeated remove to be a no-op, got %v", err)
	}
	if err := sim.Remove(999); err != nil {
		t.Errorf("Expected unknown handle to be a no-op, got %v", err)
	}

	if len(sim.Cars()) != 0 || len(sim.Obstacles()) != 1 {
		t.Errorf("Unexpected population cars %v obstacles %v", sim.Cars(), sim.Obstacles())
	}
	if rec.count(event.KindRemoved) != 1 {
		t.Errorf("Expected one removal notification, got %d", rec.count(event.KindRemoved))
	}
}

func TestClearAllKeepsObstacles(t *testing.T) {
	sim, rec := newSim(t, config.Default())
	car := sim.SpawnCar()
	sim.SpawnCar()
	sim.SpawnPolice()
	sim.SpawnObstacle(r2.Vec{X: 300, Y: 0})

	sim.ClearAllCarsAndPolice()

	if len(sim.Cars()) != 0 || len(sim.Police()) != 0 {
		t.Error("Expected no cars or police after clear")
	}
	if len(sim.Obstacles()) != 1 {
		t.Errorf("Expected obstacle to persist, got %d", len(sim.Obstacles()))
	}
	if _, ok := sim.Behavior(car); ok {
		t.Error("Expected behaviors of cleared agents dropped")
	}
	if rec.count(event.KindRemoved) != 3 || rec.count(event.KindCleared) != 1 {
		t.Errorf("Expected 3 removals and 1 clear, got %d and %d",
			rec.count(event.KindRemoved), rec.count(event.KindCleared))
	}

	// Ticks after a clear evaluate nothing stale
	for i := 0; i < 10; i++ {
		sim.Advance(tick)
	}
}

func TestResetScene(t *testing.T) {
	sim, _ := newSim(t, config.Default())
	sim.SpawnCar()
	sim.SpawnObstacle(r2.Vec{X: 300, Y: 0})
	sim.SpawnPoliceAfter(0.5)

	sim.ResetScene()

	if len(sim.Obstacles()) != 0 || len(sim.Cars()) != 0 || len(sim.Effects()) != 0 {
		t.Error("Expected everything but the median removed")
	}
	if sim.Median() == 0 {
		t.Error("Expected median to survive reset")
	}
	if sim.Pending() != 0 {
		t.Errorf("Expected deferred spawns cancelled, got %d pending", sim.Pending())
	}

	now := sim.Now()
	for i := 0; i < 60; i++ {
		sim.Advance(tick)
	}
	if len(sim.Police()) != 0 {
		t.Error("Expected no spawn after the scene reset")
	}
	if sim.Now() <= now {
		t.Errorf("Expected the clock to keep running, got %f after %f", sim.Now(), now)
	}

	// Scheduling after a reset is relative to the running clock
	sim.SpawnCarAfter(0.5)
	sim.Advance(0.25)
	if len(sim.Cars()) != 0 {
		t.Error("Expected the spawn still pending a quarter second later")
	}
	sim.Advance(0.3)
	if len(sim.Cars()) != 1 {
		t.Errorf("Expected the deferred car after 0.55s, got %d cars", len(sim.Cars()))
	}
}

// TestDeferredSpawnSurvivesClear verifies spawns scheduled before a clear are still delivered
func TestDeferredSpawnSurvivesClear(t *testing.T) {
	sim, rec := newSim(t, config.Default())
	sim.SpawnCarAfter(0.5)
	sim.SpawnCarAfter(1)
	sim.ClearAllCarsAndPolice()

	if sim.Pending() != 2 {
		t.Fatalf("Expected 2 pending spawns, got %d", sim.Pending())
	}

	for sim.Now() < 1.2 {
		sim.Advance(0.1)
	}
	if got := len(sim.Cars()); got != 2 {
		t.Errorf("Expected 2 cars delivered after clear, got %d", got)
	}
	if got := rec.count(event.KindSpawned); got != 2 {
		t.Errorf("Expected 2 spawn notifications, got %d", got)
	}
	if sim.Pending() != 0 {
		t.Errorf("Expected no pending callbacks, got %d", sim.Pending())
	}
}

// TestDeferredCaptureLeavesEffectPending spawns police onto a deferred car;
// the capture marker keeps a scheduled callback until it expires
func TestDeferredCaptureLeavesEffectPending(t *testing.T) {
	sim, _ := newSim(t, config.Default())
	sim.SpawnCarAfter(0.5)
	sim.SpawnPoliceAfter(1)

	for sim.Now() < 1.2 {
		sim.Advance(0.1)
	}
	if sim.Captures() != 1 || len(sim.Effects()) != 1 {
		t.Fatalf("Expected one capture with its marker, got %d captures, %d effects", sim.Captures(), len(sim.Effects()))
	}
	if sim.Pending() != 1 {
		t.Errorf("Expected the fade callback pending, got %d", sim.Pending())
	}

	for sim.Now() < 4 {
		sim.Advance(0.1)
	}
	if len(sim.Effects()) != 0 || sim.Pending() != 0 {
		t.Errorf("Expected marker expired and nothing pending, got %d effects, %d pending", len(sim.Effects()), sim.Pending())
	}
}

func TestReconfigure(t *testing.T) {
	sim, _ := newSim(t, config.Default())
	car := sim.SpawnCar()

	next := sim.Config().Tuning()
	next.Car.ReachSpeed = 45
	next.Car.StayOnRoad = config.Level(3)

	err := sim.Reconfigure(next)
	if !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("Expected ErrInvalid, got %v", err)
	}

	got := sim.Config().Car
	if got.ReachSpeed != 45 || got.StayOnRoad != config.DefaultTuning().Car.StayOnRoad {
		t.Errorf("Expected speed applied and stay level kept, got %+v", got)
	}

	b, _ := sim.Behavior(car)
	term, _ := b.Term(steer.TagSpeed)
	if term.Goal.(steer.ReachSpeed).Target != 45 {
		t.Errorf("Expected rebuilt behavior with target 45, got %+v", term.Goal)
	}
}

func TestHandleInput(t *testing.T) {
	sim, _ := newSim(t, config.Default())

	sim.HandleInput(InputEvent{Kind: InputAddCar})
	sim.HandleInput(InputEvent{Kind: InputAddPolice})
	sim.HandleInput(InputEvent{Kind: InputAddObstacle, Point: r2.Vec{X: -300, Y: 0}})

	if len(sim.Cars()) != 1 || len(sim.Police()) != 1 || len(sim.Obstacles()) != 1 {
		t.Fatalf("Unexpected population %d/%d/%d", len(sim.Cars()), len(sim.Police()), len(sim.Obstacles()))
	}
	cone, _ := sim.Agent(sim.Obstacles()[0])
	if cone.Position != (r2.Vec{X: -300, Y: 0}) || cone.MaxSpeed != 0 {
		t.Errorf("Unexpected obstacle %+v", cone)
	}

	sim.HandleInput(InputEvent{Kind: InputClearAll})
	if len(sim.Cars())+len(sim.Police()) != 0 || len(sim.Obstacles()) != 1 {
		t.Error("Expected clear to keep the obstacle")
	}

	sim.HandleInput(InputEvent{Kind: InputReset})
	if len(sim.Obstacles()) != 0 {
		t.Error("Expected reset to drop the obstacle")
	}
}

func TestPosesDrawOrder(t *testing.T) {
	sim, _ := newSim(t, config.Default())
	police := sim.SpawnPolice()
	car := sim.SpawnCar()
	cone := sim.SpawnObstacle(r2.Vec{X: 300, Y: 0})

	poses := sim.Poses()
	if len(poses) != 3 {
		t.Fatalf("Expected 3 poses, got %d", len(poses))
	}
	want := []agent.Handle{cone, car, police}
	for i, p := range poses {
		if p.Handle != want[i] {
			t.Errorf("Pose %d: expected %d, got %d", i, want[i], p.Handle)
		}
	}
}
