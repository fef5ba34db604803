package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond

	// MinCueGap drops repeats of the same cue closer than this
	MinCueGap = 80 * time.Millisecond
)

// Siren cue (capture)
const (
	SirenDuration = 900 * time.Millisecond
	SirenLowHz    = 650.0
	SirenHighHz   = 950.0
	SirenSweeps   = 3
	SirenAttack   = 10 * time.Millisecond
	SirenRelease  = 120 * time.Millisecond
	SirenVolume   = 0.35
)

// Engine start cue (car spawn)
const (
	EngineStartDuration = 450 * time.Millisecond
	EngineStartHz       = 70.0
	EngineStartAttack   = 30 * time.Millisecond
	EngineStartRelease  = 150 * time.Millisecond
	EngineStartVolume   = 0.4
)

// Cone drop cue (obstacle added)
const (
	ConeDropDuration = 120 * time.Millisecond
	ConeDropHz       = 520.0
	ConeDropAttack   = 2 * time.Millisecond
	ConeDropRelease  = 80 * time.Millisecond
	ConeDropVolume   = 0.3
)

// Cone hit cue (obstacle contact)
const (
	ConeHitDuration = 90 * time.Millisecond
	ConeHitAttack   = 1 * time.Millisecond
	ConeHitRelease  = 60 * time.Millisecond
	ConeHitVolume   = 0.2
)
