package strobe

import (
	"testing"
	"time"
)

func TestRate_Interval(t *testing.T) {
	r := DefaultRate()

	tests := []struct {
		level int
		want  time.Duration
	}{
		{0, 360 * time.Millisecond},
		{1, 320 * time.Millisecond},
		{5, 160 * time.Millisecond},
		{8, 40 * time.Millisecond},
		{9, 20 * time.Millisecond}, // (9-9)*40ms clamped to Min
		{12, 20 * time.Millisecond},
		{-3, 360 * time.Millisecond},
	}

	for _, tt := range tests {
		if got := r.Interval(tt.level); got != tt.want {
			t.Errorf("Interval(%d) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestRate_Normalize(t *testing.T) {
	got := Rate{Max: 0, Step: -1, Min: -5}.Normalize()
	if got.Max != DefaultMaxLevel || got.Step != DefaultStep || got.Min != 0 {
		t.Errorf("Normalize() = %+v", got)
	}

	custom := Rate{Max: 4, Step: 100 * time.Millisecond, Min: 10 * time.Millisecond}
	if custom.Normalize() != custom {
		t.Errorf("Normalize() changed a valid rate: %+v", custom.Normalize())
	}
}

func TestRate_SleepFloor(t *testing.T) {
	tests := []struct {
		min  time.Duration
		want time.Duration
	}{
		{0, time.Millisecond},
		{5 * time.Millisecond, 5 * time.Millisecond},
		{20 * time.Millisecond, 20 * time.Millisecond},
		{100 * time.Millisecond, 20 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := (Rate{Min: tt.min}).SleepFloor(); got != tt.want {
			t.Errorf("SleepFloor() with Min %v = %v, want %v", tt.min, got, tt.want)
		}
	}
}

func TestRate_ClampLevel(t *testing.T) {
	r := Rate{Max: 4}
	for in, want := range map[int]int{-1: 0, 0: 0, 3: 3, 4: 4, 9: 4} {
		if got := r.ClampLevel(in); got != want {
			t.Errorf("ClampLevel(%d) = %d, want %d", in, got, want)
		}
	}
}
