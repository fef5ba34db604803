package audio

import "errors"

// Cue represents a synthesized sound effect
type Cue int

const (
	CueSiren       Cue = iota // Police spawn and capture
	CueEngineStart            // Car spawn
	CueConeDrop               // Obstacle placed
	CueConeHit                // Obstacle touched
	cueCount
)

func (c Cue) String() string {
	switch c {
	case CueSiren:
		return "siren"
	case CueEngineStart:
		return "engine"
	case CueConeDrop:
		return "cone-drop"
	case CueConeHit:
		return "cone-hit"
	default:
		return "unknown"
	}
}

// ErrDisabled is returned by Start when audio is switched off
var ErrDisabled = errors.New("audio disabled")
