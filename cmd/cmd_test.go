package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// makeLED creates a fake LED class device with max_brightness 255.
func makeLED(t *testing.T, root, name string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for file, content := range map[string]string{"brightness": "0", "max_brightness": "255", "trigger": "[none] timer"} {
		if err := os.WriteFile(filepath.Join(dir, file), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func brightness(t *testing.T, dir string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "brightness"))
	if err != nil {
		t.Fatal(err)
	}
	return strings.TrimSpace(string(data))
}

func run(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDevicesCmd(t *testing.T) {
	root := t.TempDir()
	makeLED(t, root, "white:flash")
	makeLED(t, root, "white:torch")
	makeLED(t, root, "mmc0::")

	out, err := run(t, CreateDevicesCmd(), "--torch-root", root)
	if err != nil {
		t.Fatalf("devices error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("devices output = %q, want header and 2 LEDs", out)
	}
	if !strings.HasPrefix(lines[1], "white:torch") || !strings.HasSuffix(lines[1], "*") {
		t.Errorf("torch LED should be listed first as default: %q", lines[1])
	}
	if strings.Contains(out, "mmc0") {
		t.Error("non-flash LED should not be listed")
	}
}

func TestDevicesCmd_None(t *testing.T) {
	out, err := run(t, CreateDevicesCmd(), "--torch-root", t.TempDir())
	if err != nil {
		t.Fatalf("devices error = %v", err)
	}
	if !strings.Contains(out, "No flash available") {
		t.Errorf("output = %q", out)
	}
}

func TestOnOffCmd(t *testing.T) {
	root := t.TempDir()
	dir := makeLED(t, root, "white:flash")
	cfg := filepath.Join(t.TempDir(), "missing.toml")

	if _, err := run(t, CreateOnCmd(), "--torch-root", root, "--config", cfg); err != nil {
		t.Fatalf("on error = %v", err)
	}
	if got := brightness(t, dir); got != "255" {
		t.Errorf("brightness after on = %q, want 255", got)
	}

	if _, err := run(t, CreateOffCmd(), "--torch-root", root, "--config", cfg); err != nil {
		t.Fatalf("off error = %v", err)
	}
	if got := brightness(t, dir); got != "0" {
		t.Errorf("brightness after off = %q, want 0", got)
	}
}

func TestOnCmd_NoFlash(t *testing.T) {
	out, err := run(t, CreateOnCmd(), "--torch-root", t.TempDir(), "--config", filepath.Join(t.TempDir(), "none.toml"))
	if err == nil {
		t.Fatal("on without flash should fail")
	}
	if !strings.Contains(out, "No flash available") {
		t.Errorf("output = %q, want notification", out)
	}
}

func TestStrobeCmd(t *testing.T) {
	root := t.TempDir()
	dir := makeLED(t, root, "white:flash")
	cfg := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(cfg, []byte("[strobe]\nstep_ms = 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, CreateStrobeCmd(), "--torch-root", root, "--config", cfg, "--level", "4", "--duration", "50ms")
	if err != nil {
		t.Fatalf("strobe error = %v", err)
	}
	if !strings.Contains(out, "every 50ms") {
		t.Errorf("output = %q, want interval from config", out)
	}
	if got := brightness(t, dir); got != "0" {
		t.Errorf("brightness after strobe = %q, want 0", got)
	}
}

func TestStrobeCmd_LevelOutOfRange(t *testing.T) {
	_, err := run(t, CreateStrobeCmd(), "--torch-root", t.TempDir(), "--config", filepath.Join(t.TempDir(), "x.toml"), "--level", "12")
	if err == nil || !strings.Contains(err.Error(), "between 0 and 9") {
		t.Errorf("error = %v, want range error", err)
	}
}
