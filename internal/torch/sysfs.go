package torch

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultSysfsRoot is where the kernel exposes LED class devices.
const DefaultSysfsRoot = "/sys/class/leds"

// sysfs drives a flash LED through the Linux LED class interface.
type sysfs struct {
	name string
	path string
	on   []byte
}

// openSysfs prepares the LED at root/name for manual control. The kernel
// trigger is cleared so it does not fight our brightness writes.
func openSysfs(root, name string) (*sysfs, error) {
	ledPath := filepath.Join(root, name)
	if _, err := os.Stat(ledPath); err != nil {
		return nil, newError(ErrCodeNotFound, fmt.Sprintf("LED %q not found at %s", name, ledPath), err)
	}

	triggerPath := filepath.Join(ledPath, "trigger")
	if _, err := os.Stat(triggerPath); err == nil {
		if err := os.WriteFile(triggerPath, []byte("none"), 0o644); err != nil {
			return nil, newError(ErrCodeWriteFailed, "failed to set LED trigger to none", err)
		}
	}

	maxBrightness, err := readMaxBrightness(ledPath)
	if err != nil {
		return nil, err
	}

	return &sysfs{
		name: name,
		path: ledPath,
		on:   []byte(strconv.Itoa(maxBrightness)),
	}, nil
}

// readMaxBrightness returns max_brightness, or 1 when the file is absent.
func readMaxBrightness(ledPath string) (int, error) {
	data, err := os.ReadFile(filepath.Join(ledPath, "max_brightness"))
	if os.IsNotExist(err) {
		return 1, nil
	}
	if err != nil {
		return 0, newError(ErrCodeReadFailed, "failed to read max_brightness", err)
	}

	value, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || value < 1 {
		return 1, nil
	}
	return value, nil
}

func (s *sysfs) Name() string { return s.name }

func (s *sysfs) FlashAvailable() bool { return true }

// SetTorch writes max brightness or zero to the brightness attribute.
func (s *sysfs) SetTorch(on bool) error {
	value := []byte("0")
	if on {
		value = s.on
	}

	if err := os.WriteFile(filepath.Join(s.path, "brightness"), value, 0o644); err != nil {
		return newError(ErrCodeWriteFailed, fmt.Sprintf("failed to set %s brightness", s.name), err)
	}
	return nil
}
