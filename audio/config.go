package audio

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/lixenwraith/pursuit/parameter"
)

// Config holds audio output settings
type Config struct {
	Enabled      bool
	MasterVolume float64
	SampleRate   int
	CueVolumes   map[Cue]float64
}

// DefaultConfig returns the stock audio settings
func DefaultConfig() *Config {
	return &Config{
		Enabled:      true,
		MasterVolume: 0.5,
		SampleRate:   parameter.AudioSampleRate,
		CueVolumes: map[Cue]float64{
			CueSiren:       parameter.SirenVolume,
			CueEngineStart: parameter.EngineStartVolume,
			CueConeDrop:    parameter.ConeDropVolume,
			CueConeHit:     parameter.ConeHitVolume,
		},
	}
}

// LoadConfig loads audio configuration from environment variables
func LoadConfig() *Config {
	cfg := DefaultConfig()

	if enabled := os.Getenv("PURSUIT_AUDIO_ENABLED"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// Master volume 0-100 converted to 0.0-1.0
	if volume := os.Getenv("PURSUIT_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.MasterVolume = min(max(float64(val)/100.0, 0), 1)
		}
	}

	// Per-cue volumes from JSON, keyed by cue name
	if cueVols := os.Getenv("PURSUIT_CUE_VOLUMES"); cueVols != "" {
		var volumes map[string]float64
		if err := json.Unmarshal([]byte(cueVols), &volumes); err == nil {
			for c := Cue(0); c < cueCount; c++ {
				if v, ok := volumes[c.String()]; ok && v >= 0 {
					cfg.CueVolumes[c] = v
				}
			}
		}
	}

	if sampleRate := os.Getenv("PURSUIT_SAMPLE_RATE"); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}

	return cfg
}
