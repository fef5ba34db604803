package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Level is a qualitative goal weight
type Level int

const (
	LevelLow      Level = 25
	LevelNormal   Level = 50
	LevelHigh     Level = 75
	LevelCritical Level = 100
)

var levelNames = map[string]Level{
	"low":      LevelLow,
	"normal":   LevelNormal,
	"high":     LevelHigh,
	"critical": LevelCritical,
}

// Valid reports whether l is one of the four named levels
func (l Level) Valid() bool {
	switch l {
	case LevelLow, LevelNormal, LevelHigh, LevelCritical:
		return true
	}
	return false
}

// Weight returns the level as a behavior weight
func (l Level) Weight() float64 {
	return float64(l)
}

func (l Level) String() string {
	switch l {
	case LevelLow:
		return "low"
	case LevelNormal:
		return "normal"
	case LevelHigh:
		return "high"
	case LevelCritical:
		return "critical"
	default:
		return strconv.Itoa(int(l))
	}
}

// ParseLevel accepts a level name (case-insensitive) or its number
// Numbers are returned as-is and left to validation
func ParseLevel(s string) (Level, error) {
	s = strings.TrimSpace(s)
	if l, ok := levelNames[strings.ToLower(s)]; ok {
		return l, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("unknown level %q", s)
	}
	return Level(n), nil
}

// MarshalText implements encoding.TextMarshaler
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler; TOML integers arrive as text
func (l *Level) UnmarshalText(text []byte) error {
	v, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = v
	return nil
}
