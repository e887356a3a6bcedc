package led

import (
	"log/slog"
	"os"
	"strings"
)

const (
	sysfsLEDPath        = "/sys/class/leds"
	deviceTreeModelPath = "/proc/device-tree/model"
)

// Config selects the indicator LED.
type Config struct {
	// LED overrides board detection with an explicit LED class name.
	LED string
	// Root is the LED class directory; defaults to /sys/class/leds.
	Root string
	// ModelPath is the device tree model file; defaults to /proc/device-tree/model.
	ModelPath string
}

// boards maps device tree model substrings to their status LED.
var boards = []struct {
	model string
	led   string
}{
	{"NanoPC-T6", "sys_led"},
	{"Orange Pi", "green_led"},
	{"Raspberry Pi", "ACT"},
}

// New creates an indicator controller based on board detection.
// Falls back to a no-op controller if no status LED is known.
func New(cfg Config, logger *slog.Logger) Controller {
	root := cfg.Root
	if root == "" {
		root = sysfsLEDPath
	}

	if cfg.LED != "" {
		logger.Info("Using configured indicator LED", "led", cfg.LED)
		return newSysfs(root, cfg.LED)
	}

	modelPath := cfg.ModelPath
	if modelPath == "" {
		modelPath = deviceTreeModelPath
	}
	boardModel := detectBoard(modelPath)

	for _, b := range boards {
		if strings.Contains(boardModel, b.model) {
			logger.Info("Detected board, using sysfs indicator LED", "board_model", boardModel, "led", b.led)
			return newSysfs(root, b.led)
		}
	}

	logger.Info("No indicator LED support detected, using no-op controller", "board_model", boardModel)
	return newNoop(logger)
}

// detectBoard reads the device tree model to identify the board.
func detectBoard(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return "unknown"
	}

	// Device tree model contains null bytes, trim them
	return strings.TrimRight(string(data), "\x00")
}
