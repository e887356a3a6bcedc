package torch

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// fakeLED creates an LED class directory under root.
func fakeLED(t *testing.T, root, name, maxBrightness string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"brightness": "0",
		"trigger":    "[none] timer heartbeat",
	}
	if maxBrightness != "" {
		files["max_brightness"] = maxBrightness
	}
	for file, content := range files {
		if err := os.WriteFile(filepath.Join(dir, file), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestSysfs_SetTorch(t *testing.T) {
	root := t.TempDir()
	dir := fakeLED(t, root, "white:flash", "255\n")

	dev, err := openSysfs(root, "white:flash")
	if err != nil {
		t.Fatalf("openSysfs() error = %v", err)
	}

	if got := readFile(t, filepath.Join(dir, "trigger")); got != "none" {
		t.Errorf("trigger = %q, want none", got)
	}

	if err := dev.SetTorch(true); err != nil {
		t.Fatalf("SetTorch(true) error = %v", err)
	}
	if got := readFile(t, filepath.Join(dir, "brightness")); got != "255" {
		t.Errorf("brightness after on = %q, want 255", got)
	}

	if err := dev.SetTorch(false); err != nil {
		t.Fatalf("SetTorch(false) error = %v", err)
	}
	if got := readFile(t, filepath.Join(dir, "brightness")); got != "0" {
		t.Errorf("brightness after off = %q, want 0", got)
	}
}

func TestSysfs_MaxBrightnessFallback(t *testing.T) {
	tests := []struct {
		name          string
		maxBrightness string
		want          string
	}{
		{"missing file", "", "1"},
		{"garbage", "lots", "1"},
		{"zero", "0", "1"},
		{"valid", "7", "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			dir := fakeLED(t, root, "flash", tt.maxBrightness)

			dev, err := openSysfs(root, "flash")
			if err != nil {
				t.Fatalf("openSysfs() error = %v", err)
			}
			if err := dev.SetTorch(true); err != nil {
				t.Fatal(err)
			}
			if got := readFile(t, filepath.Join(dir, "brightness")); got != tt.want {
				t.Errorf("brightness = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSysfs_NotFound(t *testing.T) {
	_, err := openSysfs(t.TempDir(), "missing")
	if Code(err) != ErrCodeNotFound {
		t.Errorf("Code(err) = %q, want %q (err = %v)", Code(err), ErrCodeNotFound, err)
	}
}

func TestSysfs_WriteFailure(t *testing.T) {
	root := t.TempDir()
	dir := fakeLED(t, root, "flash", "1")

	dev, err := openSysfs(root, "flash")
	if err != nil {
		t.Fatal(err)
	}

	// A directory in place of the attribute makes the write fail for any user.
	brightness := filepath.Join(dir, "brightness")
	if err := os.Remove(brightness); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(brightness, 0o755); err != nil {
		t.Fatal(err)
	}

	err = dev.SetTorch(true)
	if Code(err) != ErrCodeWriteFailed {
		t.Fatalf("Code(err) = %q, want %q", Code(err), ErrCodeWriteFailed)
	}
	var te *Error
	if !errors.As(err, &te) || te.Cause == nil {
		t.Errorf("expected wrapped cause, got %v", err)
	}
}
