// Package audio synthesizes short cues for simulation notifications and mixes
// them through the beep speaker
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/pursuit/parameter"
	"github.com/lixenwraith/pursuit/vmath"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves; freqAt, when set, modulates frequency over time
type oscillator struct {
	freq     float64
	freqAt   func(t float64) float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	noise    *vmath.FastRand
}

// NewOscillator creates a fixed-frequency oscillator
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		noise:    vmath.NewFastRand(uint64(rate) ^ uint64(duration)),
	}
}

// NewSweep creates an oscillator whose frequency follows freqAt(seconds)
func NewSweep(freqAt func(t float64) float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	o := NewOscillator(0, duration, wave, rate).(*oscillator)
	o.freqAt = freqAt
	return o
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.noise.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		freq := o.freq
		if o.freqAt != nil {
			freq = o.freqAt(float64(o.position) / float64(o.rate))
		}
		o.phase += freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/sustain/release envelope
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := max(total-att-rel, 0)

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s in a linear gain; 0 is silent since math.Log2(0) is -Inf
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

func (cfg *Config) gain(c Cue) float64 {
	return cfg.CueVolumes[c] * cfg.MasterVolume
}

// CreateSiren generates a two-tone police wail
func CreateSiren(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	period := parameter.SirenDuration.Seconds() / parameter.SirenSweeps
	mid := (parameter.SirenLowHz + parameter.SirenHighHz) / 2
	depth := (parameter.SirenHighHz - parameter.SirenLowHz) / 2

	wail := NewSweep(func(t float64) float64 {
		return mid + depth*math.Sin(2*math.Pi*t/period)
	}, parameter.SirenDuration, WaveSaw, rate)
	shaped := NewEnvelope(wail, parameter.SirenDuration, parameter.SirenAttack, parameter.SirenRelease, rate)

	return newVolume(shaped, cfg.gain(CueSiren))
}

// CreateEngineStart generates a rising low rumble for a car entering the track
func CreateEngineStart(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	d := parameter.EngineStartDuration.Seconds()

	rev := NewSweep(func(t float64) float64 {
		return parameter.EngineStartHz * (1 + t/d)
	}, parameter.EngineStartDuration, WaveSquare, rate)
	revShaped := NewEnvelope(rev, parameter.EngineStartDuration, parameter.EngineStartAttack, parameter.EngineStartRelease, rate)

	grit := NewOscillator(0, parameter.EngineStartDuration, WaveNoise, rate)
	gritShaped := NewEnvelope(grit, parameter.EngineStartDuration, parameter.EngineStartAttack, parameter.EngineStartRelease, rate)

	mixed := beep.Mix(
		newVolume(revShaped, 0.8),
		newVolume(gritShaped, 0.2),
	)
	return newVolume(mixed, cfg.gain(CueEngineStart))
}

// CreateConeDrop generates a short plastic knock
func CreateConeDrop(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	knock := NewOscillator(parameter.ConeDropHz, parameter.ConeDropDuration, WaveSine, rate)
	shaped := NewEnvelope(knock, parameter.ConeDropDuration, parameter.ConeDropAttack, parameter.ConeDropRelease, rate)

	return newVolume(shaped, cfg.gain(CueConeDrop))
}

// CreateConeHit generates a noise burst for an obstacle contact
func CreateConeHit(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	noise := NewOscillator(0, parameter.ConeHitDuration, WaveNoise, rate)
	shaped := NewEnvelope(noise, parameter.ConeHitDuration, parameter.ConeHitAttack, parameter.ConeHitRelease, rate)

	return newVolume(shaped, cfg.gain(CueConeHit))
}

// GetCue returns the streamer for c, nil for unknown cues
func GetCue(c Cue, cfg *Config) beep.Streamer {
	switch c {
	case CueSiren:
		return CreateSiren(cfg)
	case CueEngineStart:
		return CreateEngineStart(cfg)
	case CueConeDrop:
		return CreateConeDrop(cfg)
	case CueConeHit:
		return CreateConeHit(cfg)
	default:
		return nil
	}
}
