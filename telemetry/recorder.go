// Package telemetry samples a running simulation and summarizes or plots
// the recorded series after the run
package telemetry

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/lixenwraith/pursuit/agent"
	"github.com/lixenwraith/pursuit/parameter"
)

var ErrNoSamples = errors.New("telemetry: no samples recorded")

// Source is the read side of a simulation the recorder samples
type Source interface {
	Now() float64
	Captures() int
	Cars() []agent.Handle
	Police() []agent.Handle
	Obstacles() []agent.Handle
	Agent(h agent.Handle) (agent.State, bool)
}

// Sample is one observation of the population
type Sample struct {
	Time      float64
	Cars      int
	Police    int
	Obstacles int
	Captures  int

	MeanCarSpeed    float64
	MeanPoliceSpeed float64
	MaxSpeed        float64
}

// Recorder keeps samples at a fixed simulated interval
type Recorder struct {
	runID    uuid.UUID
	interval float64
	samples  []Sample
	last     float64
	started  bool
}

// NewRecorder samples every parameter.TelemetryInterval seconds
func NewRecorder(runID uuid.UUID) *Recorder {
	return &Recorder{runID: runID, interval: parameter.TelemetryInterval}
}

// SetInterval changes the sampling period; non-positive records every call
func (r *Recorder) SetInterval(seconds float64) {
	r.interval = seconds
}

// Observe records a sample when the interval has elapsed since the last one
// A clock that moves backwards (after Reset) restarts the interval
func (r *Recorder) Observe(src Source) bool {
	now := src.Now()
	if r.started && now >= r.last && now-r.last < r.interval {
		return false
	}
	r.started = true
	r.last = now
	r.samples = append(r.samples, r.sample(src, now))
	return true
}

func (r *Recorder) sample(src Source, now float64) Sample {
	s := Sample{Time: now, Captures: src.Captures(), Obstacles: len(src.Obstacles())}

	mean := func(hs []agent.Handle) (float64, int) {
		var sum float64
		var n int
		for _, h := range hs {
			st, ok := src.Agent(h)
			if !ok {
				continue
			}
			v := st.Speed()
			sum += v
			n++
			if v > s.MaxSpeed {
				s.MaxSpeed = v
			}
		}
		if n == 0 {
			return 0, 0
		}
		return sum / float64(n), n
	}
	s.MeanCarSpeed, s.Cars = mean(src.Cars())
	s.MeanPoliceSpeed, s.Police = mean(src.Police())
	return s
}

// Samples returns a copy of the recorded series
func (r *Recorder) Samples() []Sample {
	out := make([]Sample, len(r.samples))
	copy(out, r.samples)
	return out
}

// Len returns the number of samples
func (r *Recorder) Len() int { return len(r.samples) }

// Summary aggregates a run
type Summary struct {
	RunID        uuid.UUID
	Samples      int
	Duration     time.Duration
	Captures     int
	PeakCars     int
	PeakPolice   int
	MeanCarSpeed float64
	MaxSpeed     float64
}

// Summary reduces the recorded series; Duration spans first to last sample
func (r *Recorder) Summary() Summary {
	sum := Summary{RunID: r.runID, Samples: len(r.samples)}
	if len(r.samples) == 0 {
		return sum
	}

	first, last := r.samples[0], r.samples[len(r.samples)-1]
	sum.Duration = time.Duration((last.Time - first.Time) * float64(time.Second))

	var speedTotal float64
	var speedSamples int
	for _, s := range r.samples {
		sum.PeakCars = max(sum.PeakCars, s.Cars)
		sum.PeakPolice = max(sum.PeakPolice, s.Police)
		sum.MaxSpeed = max(sum.MaxSpeed, s.MaxSpeed)
		sum.Captures = max(sum.Captures, s.Captures)
		if s.Cars > 0 {
			speedTotal += s.MeanCarSpeed
			speedSamples++
		}
	}
	if speedSamples > 0 {
		sum.MeanCarSpeed = speedTotal / float64(speedSamples)
	}
	return sum
}

// KeyVals flattens the summary for structured logging
func (s Summary) KeyVals() []any {
	return []any{
		"run", s.RunID,
		"samples", s.Samples,
		"duration", s.Duration,
		"captures", s.Captures,
		"peak_cars", s.PeakCars,
		"peak_police", s.PeakPolice,
		"mean_car_speed", fmt.Sprintf("%.2f", s.MeanCarSpeed),
		"max_speed", fmt.Sprintf("%.2f", s.MaxSpeed),
	}
}

// SavePlot writes the speed and population series as an image; the format
// follows the file extension (png, svg, pdf)
func (r *Recorder) SavePlot(path string) error {
	if len(r.samples) == 0 {
		return ErrNoSamples
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Run %s", r.runID)
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "Speed / Count"

	series := []struct {
		label string
		value func(Sample) float64
	}{
		{"mean car speed", func(s Sample) float64 { return s.MeanCarSpeed }},
		{"mean police speed", func(s Sample) float64 { return s.MeanPoliceSpeed }},
		{"cars", func(s Sample) float64 { return float64(s.Cars) }},
		{"police", func(s Sample) float64 { return float64(s.Police) }},
		{"captures", func(s Sample) float64 { return float64(s.Captures) }},
	}

	for i, sr := range series {
		pts := make(plotter.XYs, 0, len(r.samples))
		for _, s := range r.samples {
			pts = append(pts, plotter.XY{X: s.Time, Y: sr.value(s)})
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("telemetry: %s series: %w", sr.label, err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(sr.label, line)
	}

	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.XOffs = 10
	p.Legend.YOffs = -10

	if err := p.Save(parameter.PlotWidthInch*vg.Inch, parameter.PlotHeightInch*vg.Inch, path); err != nil {
		return fmt.Errorf("telemetry: save plot %s: %w", path, err)
	}
	return nil
}
