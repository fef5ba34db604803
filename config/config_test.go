package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	if cfg.Car.ReachSpeed != 60 || cfg.Car.StayOnRoad != LevelCritical {
		t.Errorf("Unexpected car defaults: %+v", cfg.Car)
	}
	if cfg.Police.ReachSpeed != 80 || cfg.Police.ChaseCars != LevelCritical {
		t.Errorf("Unexpected police defaults: %+v", cfg.Police)
	}
	if err := cfg.Tuning().Validate(); err != nil {
		t.Errorf("Default tuning invalid: %v", err)
	}
	if err := cfg.World.Validate(); err != nil {
		t.Errorf("Default world invalid: %v", err)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"critical", LevelCritical, false},
		{"HIGH", LevelHigh, false},
		{" normal ", LevelNormal, false},
		{"low", LevelLow, false},
		{"75", LevelHigh, false},
		{"30", Level(30), false},
		{"extreme", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

// TestMergeKeepsLastValid verifies rejected fields fall back and are reported
func TestMergeKeepsLastValid(t *testing.T) {
	prev := DefaultTuning()
	next := prev
	next.Car.ReachSpeed = -5
	next.Car.AvoidPolice = LevelLow
	next.Police.ChaseCars = Level(30)
	next.Police.ReachSpeed = 95

	got, err := prev.Merge(next)

	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("Expected ErrInvalid, got %v", err)
	}
	if got.Car.ReachSpeed != prev.Car.ReachSpeed {
		t.Errorf("Expected car speed kept at %v, got %v", prev.Car.ReachSpeed, got.Car.ReachSpeed)
	}
	if got.Police.ChaseCars != prev.Police.ChaseCars {
		t.Errorf("Expected chase level kept at %v, got %v", prev.Police.ChaseCars, got.Police.ChaseCars)
	}
	if got.Car.AvoidPolice != LevelLow || got.Police.ReachSpeed != 95 {
		t.Errorf("Expected valid fields applied, got %+v", got)
	}
}

func TestMergeAllValid(t *testing.T) {
	next := DefaultTuning()
	next.Car.ReachSpeed = 0

	got, err := DefaultTuning().Merge(next)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != next {
		t.Errorf("Expected %+v, got %+v", next, got)
	}
}

func TestWorldValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*World)
	}{
		{"few points", func(w *World) { w.TrackPoints = w.TrackPoints[:2] }},
		{"zero radius", func(w *World) { w.TrackRadius = 0 }},
		{"median", func(w *World) { w.Median.Radius = -1 }},
		{"frame", func(w *World) { w.Frame.MaxX = w.Frame.MinX }},
		{"car mass", func(w *World) { w.Car.Mass = 0 }},
		{"police speed", func(w *World) { w.Police.MaxSpeed = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := DefaultWorld()
			tt.mutate(&w)
			if err := w.Validate(); !errors.Is(err, ErrWorld) {
				t.Errorf("Expected ErrWorld, got %v", err)
			}
		})
	}
}

func TestParse(t *testing.T) {
	cfg, err := Parse(`
[car]
reach_speed = 90
stay_on_road = "low"
avoid_obstacles = 100

[police]
chase_cars = "high"

[world]
seed = 7
track_radius = 70

[world.car]
mass = 1
max_speed = 110
max_acceleration = 95
radius = 40
`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Car.ReachSpeed != 90 || cfg.Car.StayOnRoad != LevelLow || cfg.Car.AvoidObstacles != LevelCritical {
		t.Errorf("Unexpected car tuning: %+v", cfg.Car)
	}
	if cfg.Car.AvoidPolice != LevelHigh {
		t.Errorf("Expected untouched field to keep default, got %v", cfg.Car.AvoidPolice)
	}
	if cfg.Police.ChaseCars != LevelHigh || cfg.Police.ReachSpeed != 80 {
		t.Errorf("Unexpected police tuning: %+v", cfg.Police)
	}
	if cfg.World.Seed != 7 || cfg.World.TrackRadius != 70 || cfg.World.Car.MaxSpeed != 110 {
		t.Errorf("Unexpected world: %+v", cfg.World)
	}
	if len(cfg.World.TrackPoints) != len(DefaultWorld().TrackPoints) {
		t.Errorf("Expected default track points, got %d", len(cfg.World.TrackPoints))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		fatal bool
	}{
		{"syntax", "[car\nreach_speed = 1", true},
		{"unknown key", "[car]\nturbo = true", true},
		{"unknown level", "[car]\nstay_on_road = \"extreme\"", true},
		{"bad world", "[world]\ntrack_radius = -1", true},
		{"bad tuning", "[car]\nreach_speed = -3\n[police]\nchase_cars = 10", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse(tt.data)
			if err == nil {
				t.Fatal("Expected error")
			}
			if Fatal(err) != tt.fatal {
				t.Fatalf("Fatal(%v) = %v, want %v", err, Fatal(err), tt.fatal)
			}
			if !tt.fatal && cfg.Tuning() != DefaultTuning() {
				t.Errorf("Expected rejected fields to fall back to defaults, got %+v", cfg.Tuning())
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pursuit.toml")
	if err := os.WriteFile(path, []byte("[police]\nreach_speed = 85\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Police.ReachSpeed != 85 {
		t.Errorf("Expected police speed 85, got %v", cfg.Police.ReachSpeed)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Expected error for missing file")
	}
}
