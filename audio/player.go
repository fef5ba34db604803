package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/pursuit/agent"
	"github.com/lixenwraith/pursuit/event"
	"github.com/lixenwraith/pursuit/parameter"
)

// Player turns notifications into cues mixed onto the speaker
// Safe to call from the simulation goroutine while the speaker streams
type Player struct {
	mu       sync.Mutex
	cfg      *Config
	mixer    *beep.Mixer
	started  bool
	lastPlay [cueCount]time.Time
	now      func() time.Time
}

// NewPlayer creates a player; no device is opened until Start
func NewPlayer(cfg *Config) *Player {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Player{
		cfg:   cfg,
		mixer: &beep.Mixer{},
		now:   time.Now,
	}
}

// Start opens the speaker and attaches the mixer
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.cfg.Enabled {
		return ErrDisabled
	}
	if p.started {
		return nil
	}

	rate := beep.SampleRate(p.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.started = true
	return nil
}

// Close silences pending cues and releases the speaker
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		p.mixer.Clear()
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.started = false
}

// Play queues cue c; repeats closer than MinCueGap are dropped
func (p *Player) Play(c Cue) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.cfg.Enabled || c < 0 || c >= cueCount {
		return false
	}
	now := p.now()
	if now.Sub(p.lastPlay[c]) < parameter.MinCueGap {
		return false
	}
	s := GetCue(c, p.cfg)
	if s == nil {
		return false
	}
	p.lastPlay[c] = now

	if p.started {
		speaker.Lock()
		defer speaker.Unlock()
	}
	p.mixer.Add(s)
	return true
}

// CueFor maps a notification to its cue
func CueFor(n event.Notification) (Cue, bool) {
	switch n.Kind {
	case event.KindSpawned:
		if n.Role == agent.RolePoliceCar {
			return CueSiren, true
		}
		return CueEngineStart, true
	case event.KindCaptured:
		return CueSiren, true
	case event.KindObstacleAdded:
		return CueConeDrop, true
	case event.KindObstacleHit:
		return CueConeHit, true
	default:
		return 0, false
	}
}

// Notify is an event.Handler playing the cue for n
func (p *Player) Notify(n event.Notification) {
	if c, ok := CueFor(n); ok {
		p.Play(c)
	}
}

// Active returns the number of cues still sounding
func (p *Player) Active() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		speaker.Lock()
		defer speaker.Unlock()
	}
	return p.mixer.Len()
}
