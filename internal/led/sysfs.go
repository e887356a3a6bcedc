package led

import (
	"fmt"
	"os"
	"path/filepath"
)

// Blink timing for the "timer" trigger, in milliseconds.
const (
	blinkOnMs  = "250"
	blinkOffMs = "250"
)

// sysfs implements Controller using the Linux LED class interface.
type sysfs struct {
	name string
	path string
}

func newSysfs(root, name string) *sysfs {
	return &sysfs{name: name, path: filepath.Join(root, name)}
}

func (s *sysfs) Name() string { return s.name }

// Set programs trigger and brightness for pattern. Blink prefers the
// "timer" trigger and falls back to "heartbeat" when timer attributes are
// not exposed.
func (s *sysfs) Set(pattern Pattern) error {
	if _, err := os.Stat(s.path); err != nil {
		return fmt.Errorf("LED %q not found at %s: %w", s.name, s.path, err)
	}

	switch pattern {
	case PatternOff:
		if err := s.write("trigger", "none"); err != nil {
			return err
		}
		return s.write("brightness", "0")

	case PatternSolid:
		if err := s.write("trigger", "none"); err != nil {
			return err
		}
		return s.write("brightness", "1")

	case PatternBlink:
		if err := s.write("trigger", "timer"); err != nil {
			return err
		}
		if _, err := os.Stat(filepath.Join(s.path, "delay_on")); err != nil {
			return s.write("trigger", "heartbeat")
		}
		if err := s.write("delay_on", blinkOnMs); err != nil {
			return err
		}
		return s.write("delay_off", blinkOffMs)

	default:
		return fmt.Errorf("unsupported LED pattern %q", pattern)
	}
}

func (s *sysfs) write(attr, value string) error {
	if err := os.WriteFile(filepath.Join(s.path, attr), []byte(value), 0o644); err != nil {
		return fmt.Errorf("failed to set LED %s: %w", attr, err)
	}
	return nil
}
