package strobe

import "time"

// Default slider mapping.
const (
	DefaultMaxLevel    = 9
	DefaultStep        = 40 * time.Millisecond
	DefaultMinInterval = 20 * time.Millisecond
)

// Rate maps a slider level to a strobe interval. Level 0 is steady light;
// each level above it shortens the interval by Step.
type Rate struct {
	Max  int
	Step time.Duration
	Min  time.Duration
}

// DefaultRate returns the stock 0..9 slider with 40ms steps.
func DefaultRate() Rate {
	return Rate{Max: DefaultMaxLevel, Step: DefaultStep, Min: DefaultMinInterval}
}

// Normalize fills zero or invalid fields with defaults.
func (r Rate) Normalize() Rate {
	if r.Max < 1 {
		r.Max = DefaultMaxLevel
	}
	if r.Step <= 0 {
		r.Step = DefaultStep
	}
	if r.Min < 0 {
		r.Min = 0
	}
	return r
}

// SleepFloor is the shortest sleep a Scheduler should allow for this
// mapping: Min capped at DefaultMinInterval, never below 1ms.
func (r Rate) SleepFloor() time.Duration {
	return max(min(r.Min, DefaultMinInterval), time.Millisecond)
}

// ClampLevel limits level to [0, Max].
func (r Rate) ClampLevel(level int) int {
	return min(max(level, 0), r.Max)
}

// Interval returns the strobe interval for level: (Max - level) * Step,
// never below Min.
func (r Rate) Interval(level int) time.Duration {
	level = r.ClampLevel(level)
	return max(time.Duration(r.Max-level)*r.Step, r.Min)
}
