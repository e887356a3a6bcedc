package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/smazurov/torchnode/internal/events"
	"github.com/smazurov/torchnode/internal/panel"
	"github.com/smazurov/torchnode/internal/strobe"
)

func testOptions(t *testing.T) *Options {
	t.Helper()
	root := t.TempDir()
	led := filepath.Join(root, "white:flash")
	if err := os.MkdirAll(led, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, f := range []string{"brightness", "trigger"} {
		if err := os.WriteFile(filepath.Join(led, f), []byte("0"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return &Options{
		Config:              filepath.Join(t.TempDir(), "config.toml"),
		Port:                "127.0.0.1:0",
		TorchRoot:           root,
		StrobeMaxLevel:      9,
		StrobeStepMs:        40,
		StrobeMinIntervalMs: 20,
		FeaturesMetrics:     true,
		LoggingLevel:        "error",
	}
}

func TestOptionsRate(t *testing.T) {
	opts := &Options{StrobeMaxLevel: 5, StrobeStepMs: 100}
	rate := opts.rate()
	if rate.Max != 5 || rate.Step != 100*time.Millisecond || rate.Min != 20*time.Millisecond {
		t.Errorf("rate() = %+v", rate)
	}
}

func TestLoggingConfigModules(t *testing.T) {
	opts := &Options{LoggingLevel: "warn", LoggingStrobe: "debug"}
	cfg := opts.loggingConfig()
	if cfg.Level != "warn" || cfg.Modules["strobe"] != "debug" {
		t.Errorf("loggingConfig() = %+v", cfg)
	}
}

func TestServiceApplyRateLowersFloor(t *testing.T) {
	svc := newService(testOptions(t))
	svc.panel.Open()
	defer svc.panel.Close()

	svc.applyRate(strobe.Rate{Max: 9, Step: 40 * time.Millisecond, Min: 5 * time.Millisecond})
	svc.panel.SetSlider(9)
	v, err := svc.panel.Press()
	if err != nil {
		t.Fatalf("Press() error = %v", err)
	}
	if got := svc.strobe.Interval(); got != 5*time.Millisecond {
		t.Errorf("scheduler interval = %v, want 5ms", got)
	}
	if v.IntervalMs != svc.strobe.Interval().Milliseconds() {
		t.Errorf("panel reports %dms, scheduler runs %v", v.IntervalMs, svc.strobe.Interval())
	}
}

func TestServiceLifecycle(t *testing.T) {
	opts := testOptions(t)
	svc := newService(opts)

	if !svc.torch.FlashAvailable() || svc.torch.DeviceName() != "white:flash" {
		t.Fatalf("torch = %s available=%v", svc.torch.DeviceName(), svc.torch.FlashAvailable())
	}

	opened := make(chan struct{}, 1)
	unsub := svc.bus.Subscribe(func(e events.PanelStateChangedEvent) {
		if e.Action == panel.ActionOpen {
			select {
			case opened <- struct{}{}:
			default:
			}
		}
	})
	defer unsub()

	errCh := make(chan error, 1)
	go func() { errCh <- svc.run() }()

	select {
	case <-opened:
	case <-time.After(time.Second):
		t.Fatal("panel was not opened")
	}

	if _, err := svc.panel.Press(); err != nil {
		t.Fatalf("Press() error = %v", err)
	}
	if !svc.torch.Lit() {
		t.Fatal("torch should be lit after press")
	}

	svc.shutdown(time.Second)

	select {
	case err := <-errCh:
		if err != nil {
			t.Errorf("run() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("run() did not return after shutdown")
	}

	if svc.torch.Lit() {
		t.Error("torch should be off after shutdown")
	}
	data, _ := os.ReadFile(filepath.Join(opts.TorchRoot, "white:flash", "brightness"))
	if strings.TrimSpace(string(data)) != "0" {
		t.Errorf("brightness after shutdown = %q", data)
	}
}
