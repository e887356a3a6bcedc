package led

import (
	"os"
	"path/filepath"
	"testing"
)

func writeModel(t *testing.T, model string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model")
	if err := os.WriteFile(path, []byte(model+"\x00"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNew_BoardDetection(t *testing.T) {
	tests := []struct {
		model string
		want  string
	}{
		{"FriendlyElec NanoPC-T6", "sys_led"},
		{"Orange Pi 5 Plus", "green_led"},
		{"Raspberry Pi 4 Model B Rev 1.4", "ACT"},
		{"QEMU Virtual Machine", "none"},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			ctrl := New(Config{Root: t.TempDir(), ModelPath: writeModel(t, tt.model)}, discardLogger())
			if ctrl.Name() != tt.want {
				t.Errorf("New() LED = %q, want %q", ctrl.Name(), tt.want)
			}
		})
	}
}

func TestNew_ExplicitLED(t *testing.T) {
	ctrl := New(Config{LED: "led0", Root: t.TempDir(), ModelPath: writeModel(t, "unknown board")}, discardLogger())
	if ctrl.Name() != "led0" {
		t.Errorf("New() LED = %q, want led0", ctrl.Name())
	}
}

func TestDetectBoard(t *testing.T) {
	if got := detectBoard(writeModel(t, "Orange Pi 5")); got != "Orange Pi 5" {
		t.Errorf("detectBoard() = %q, want null bytes trimmed", got)
	}
	if got := detectBoard(filepath.Join(t.TempDir(), "missing")); got != "unknown" {
		t.Errorf("detectBoard() on missing file = %q, want unknown", got)
	}
}
