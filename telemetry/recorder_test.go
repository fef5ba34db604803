package telemetry

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/pursuit/agent"
	"github.com/lixenwraith/pursuit/config"
	"github.com/lixenwraith/pursuit/engine"
	"github.com/lixenwraith/pursuit/parameter"
)

type fakeSource struct {
	now      float64
	captures int
	states   map[agent.Handle]agent.State
	cars     []agent.Handle
	police   []agent.Handle
	cones    []agent.Handle
}

func (f *fakeSource) Now() float64              { return f.now }
func (f *fakeSource) Captures() int             { return f.captures }
func (f *fakeSource) Cars() []agent.Handle      { return f.cars }
func (f *fakeSource) Police() []agent.Handle    { return f.police }
func (f *fakeSource) Obstacles() []agent.Handle { return f.cones }
func (f *fakeSource) Agent(h agent.Handle) (agent.State, bool) {
	s, ok := f.states[h]
	return s, ok
}

func moving(speed float64) agent.State {
	return agent.State{Velocity: r2.Vec{X: speed}}
}

func TestObserveInterval(t *testing.T) {
	r := NewRecorder(uuid.New())
	src := &fakeSource{states: map[agent.Handle]agent.State{}}

	times := []float64{0, 0.1, 0.2, 0.25, 0.3, 0.5, 0.76}
	var recorded int
	for _, now := range times {
		src.now = now
		if r.Observe(src) {
			recorded++
		}
	}
	// 0, 0.25, 0.5, 0.76
	if recorded != 4 || r.Len() != 4 {
		t.Errorf("Expected 4 samples, got %d (len %d)", recorded, r.Len())
	}

	// clock restart
	src.now = 0.05
	if !r.Observe(src) {
		t.Error("Expected a sample after the clock moved backwards")
	}
}

func TestSampleContents(t *testing.T) {
	src := &fakeSource{
		now:      3,
		captures: 2,
		states: map[agent.Handle]agent.State{
			2: moving(80),
			3: moving(100),
			4: moving(120),
		},
		cars:   []agent.Handle{2, 3, 99}, // 99 is stale
		police: []agent.Handle{4},
		cones:  []agent.Handle{7, 8},
	}
	r := NewRecorder(uuid.New())
	r.Observe(src)

	s := r.Samples()[0]
	if s.Cars != 2 || s.Police != 1 || s.Obstacles != 2 || s.Captures != 2 {
		t.Errorf("Expected counts 2/1/2/2, got %d/%d/%d/%d", s.Cars, s.Police, s.Obstacles, s.Captures)
	}
	if s.MeanCarSpeed != 90 {
		t.Errorf("Expected mean car speed 90, got %v", s.MeanCarSpeed)
	}
	if s.MeanPoliceSpeed != 120 || s.MaxSpeed != 120 {
		t.Errorf("Expected police speed and max 120, got %v and %v", s.MeanPoliceSpeed, s.MaxSpeed)
	}
}

func TestSummary(t *testing.T) {
	id := uuid.New()
	r := NewRecorder(id)
	r.SetInterval(0)

	if sum := r.Summary(); sum.Samples != 0 || sum.RunID != id {
		t.Errorf("Expected empty summary for run %s, got %+v", id, sum)
	}

	src := &fakeSource{states: map[agent.Handle]agent.State{2: moving(60), 3: moving(100)}}
	src.cars = []agent.Handle{2}
	r.Observe(src)

	src.now, src.captures = 2, 1
	src.cars = []agent.Handle{3}
	src.police = []agent.Handle{2}
	r.Observe(src)

	src.now = 4
	src.cars = nil
	r.Observe(src)

	sum := r.Summary()
	if sum.Samples != 3 {
		t.Fatalf("Expected 3 samples, got %d", sum.Samples)
	}
	if sum.Duration != 4*time.Second {
		t.Errorf("Expected 4s duration, got %v", sum.Duration)
	}
	if sum.PeakCars != 1 || sum.PeakPolice != 1 || sum.Captures != 1 {
		t.Errorf("Expected peaks 1/1 and 1 capture, got %+v", sum)
	}
	// samples without cars are excluded from the car mean
	if sum.MeanCarSpeed != 80 {
		t.Errorf("Expected mean car speed 80, got %v", sum.MeanCarSpeed)
	}
	if sum.MaxSpeed != 100 {
		t.Errorf("Expected max speed 100, got %v", sum.MaxSpeed)
	}
	if kv := sum.KeyVals(); len(kv)%2 != 0 {
		t.Errorf("Expected key/value pairs, got %d items", len(kv))
	}
}

func TestSavePlot(t *testing.T) {
	r := NewRecorder(uuid.New())
	path := filepath.Join(t.TempDir(), "run.png")

	if err := r.SavePlot(path); !errors.Is(err, ErrNoSamples) {
		t.Fatalf("Expected ErrNoSamples, got %v", err)
	}

	sim, err := engine.New(config.Default(), engine.WithSeed(1))
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	sim.SpawnCar()
	sim.SpawnPolice()
	for i := 0; i < 180; i++ {
		sim.Advance(parameter.TickSeconds)
		r.Observe(sim)
	}
	if r.Len() < 10 {
		t.Fatalf("Expected at least 10 samples over 3s, got %d", r.Len())
	}

	if err := r.SavePlot(path); err != nil {
		t.Fatalf("SavePlot: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Expected plot file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Expected non-empty plot file")
	}
}
