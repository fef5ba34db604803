package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Load decodes a TOML file over Default()
// Parse failures, unknown keys and an invalid world are fatal. Rejected tuning
// fields fall back to their defaults and are returned as ErrInvalid together
// with the usable Config
func Load(path string) (Config, error) {
	decoded := Default()
	md, err := toml.DecodeFile(path, &decoded)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return finish(path, md, decoded)
}

// Parse is Load for in-memory TOML
func Parse(data string) (Config, error) {
	decoded := Default()
	md, err := toml.Decode(data, &decoded)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return finish("<inline>", md, decoded)
}

func finish(source string, md toml.MetaData, decoded Config) (Config, error) {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("config %s: unknown keys: %s", source, strings.Join(keys, ", "))
	}

	if err := decoded.World.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", source, err)
	}

	tuning, err := DefaultTuning().Merge(decoded.Tuning())
	cfg := decoded.WithTuning(tuning)
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", source, err)
	}
	return cfg, nil
}

// Fatal reports whether a Load error leaves no usable Config
func Fatal(err error) bool {
	return err != nil && !(errors.Is(err, ErrInvalid) && !errors.Is(err, ErrWorld))
}
