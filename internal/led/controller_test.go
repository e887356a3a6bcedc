package led

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// makeLED creates a fake LED class device under root.
func makeLED(t *testing.T, root, name string, timer bool) string {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	files := []string{"trigger", "brightness"}
	if timer {
		files = append(files, "delay_on", "delay_off")
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(dir, f), []byte("0"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func readAttr(t *testing.T, dir, attr string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, attr))
	if err != nil {
		t.Fatal(err)
	}
	return strings.TrimSpace(string(data))
}

func TestNoopController(t *testing.T) {
	ctrl := newNoop(discardLogger())

	if err := ctrl.Set(PatternSolid); err != nil {
		t.Errorf("Set() returned error: %v", err)
	}
	if ctrl.Name() != "none" {
		t.Errorf("Name() = %q, want none", ctrl.Name())
	}
}

func TestSysfsController_Set(t *testing.T) {
	tests := []struct {
		name       string
		timer      bool
		pattern    Pattern
		trigger    string
		brightness string
	}{
		{name: "solid", pattern: PatternSolid, trigger: "none", brightness: "1"},
		{name: "off", pattern: PatternOff, trigger: "none", brightness: "0"},
		{name: "blink with timer", timer: true, pattern: PatternBlink, trigger: "timer", brightness: "0"},
		{name: "blink without timer", pattern: PatternBlink, trigger: "heartbeat", brightness: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			dir := makeLED(t, root, "sys_led", tt.timer)
			ctrl := newSysfs(root, "sys_led")

			if err := ctrl.Set(tt.pattern); err != nil {
				t.Fatalf("Set(%q) error = %v", tt.pattern, err)
			}
			if got := readAttr(t, dir, "trigger"); got != tt.trigger {
				t.Errorf("trigger = %q, want %q", got, tt.trigger)
			}
			if got := readAttr(t, dir, "brightness"); got != tt.brightness {
				t.Errorf("brightness = %q, want %q", got, tt.brightness)
			}
			if tt.timer {
				if got := readAttr(t, dir, "delay_on"); got != blinkOnMs {
					t.Errorf("delay_on = %q, want %q", got, blinkOnMs)
				}
			}
		})
	}
}

func TestSysfsController_Set_Missing(t *testing.T) {
	ctrl := newSysfs(t.TempDir(), "nonexistent")

	if err := ctrl.Set(PatternSolid); err == nil {
		t.Error("Set() on missing LED should return error")
	}
}

func TestSysfsController_Set_UnknownPattern(t *testing.T) {
	root := t.TempDir()
	makeLED(t, root, "ACT", false)
	ctrl := newSysfs(root, "ACT")

	if err := ctrl.Set(Pattern("disco")); err == nil {
		t.Error("Set() with unknown pattern should return error")
	}
}
