package torch

import (
	"log/slog"
	"os"
	"sort"
	"strings"
)

const deviceTreeModelPath = "/proc/device-tree/model"

// Config selects the torch device.
type Config struct {
	// Root is the LED class directory, DefaultSysfsRoot when empty.
	Root string
	// LED names a specific LED; when empty the first flash LED found is used.
	LED string
}

// New opens the configured torch LED. When nothing usable is found it
// falls back to a device reporting no flash, mirroring phones without one.
func New(cfg Config, logger *slog.Logger) Device {
	root := cfg.Root
	if root == "" {
		root = DefaultSysfsRoot
	}

	logger.Info("Detecting torch LED", "board_model", detectBoard(), "root", root)

	name := cfg.LED
	if name == "" {
		candidates, err := Discover(root)
		if err != nil {
			logger.Warn("Failed to scan LED class devices", "root", root, "error", err)
		}
		if len(candidates) == 0 {
			logger.Info("No flash LED found, torch disabled")
			return newNoop(logger)
		}
		name = candidates[0]
	}

	dev, err := openSysfs(root, name)
	if err != nil {
		logger.Warn("Failed to open torch LED, torch disabled", "led", name, "error", err)
		return newNoop(logger)
	}

	logger.Info("Using sysfs torch LED", "led", name)
	return dev
}

// Discover lists LEDs under root that look like a camera flash. Names
// containing "torch" sort first, then the rest alphabetically.
func Discover(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}

	var found []string
	for _, entry := range entries {
		name := strings.ToLower(entry.Name())
		if strings.Contains(name, "torch") || strings.Contains(name, "flash") {
			found = append(found, entry.Name())
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		ti := strings.Contains(strings.ToLower(found[i]), "torch")
		tj := strings.Contains(strings.ToLower(found[j]), "torch")
		if ti != tj {
			return ti
		}
		return found[i] < found[j]
	})
	return found, nil
}

// detectBoard reads the device tree model for diagnostics.
func detectBoard() string {
	data, err := os.ReadFile(deviceTreeModelPath)
	if err != nil {
		return "unknown"
	}
	return strings.TrimRight(string(data), "\x00")
}
