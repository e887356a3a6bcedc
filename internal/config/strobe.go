package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/smazurov/torchnode/internal/strobe"
)

// StrobeSection is the hot-reloadable [strobe] table.
type StrobeSection struct {
	MaxLevel      int `toml:"max_level"`
	StepMs        int `toml:"step_ms"`
	MinIntervalMs int `toml:"min_interval_ms"`
}

// Rate converts the section into a strobe.Rate, defaulting missing keys.
func (s StrobeSection) Rate() strobe.Rate {
	r := strobe.DefaultRate()
	if s.MaxLevel > 0 {
		r.Max = s.MaxLevel
	}
	if s.StepMs > 0 {
		r.Step = time.Duration(s.StepMs) * time.Millisecond
	}
	if s.MinIntervalMs > 0 {
		r.Min = time.Duration(s.MinIntervalMs) * time.Millisecond
	}
	return r
}

// LoadStrobeRate reads the [strobe] table of the config file at path.
// It is the loader used by the config watcher.
func LoadStrobeRate(path string) (strobe.Rate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return strobe.Rate{}, err
	}

	var raw struct {
		Strobe StrobeSection `toml:"strobe"`
	}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return strobe.Rate{}, fmt.Errorf("failed to parse [strobe] in %s: %w", path, err)
	}
	return raw.Strobe.Rate(), nil
}
