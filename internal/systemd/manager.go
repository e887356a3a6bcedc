// Package systemd restarts the torchnode unit over D-Bus after an update.
package systemd

import (
	"context"
	"fmt"
	"strings"

	"github.com/coreos/go-systemd/v22/dbus"
)

// DefaultUnit is the unit shipped with the release packages.
const DefaultUnit = "torchnode.service"

// Manager handles unit lifecycle operations via D-Bus.
type Manager struct {
	conn *dbus.Conn
}

// NewManager connects to the user or the system instance of systemd.
func NewManager(ctx context.Context, user bool) (*Manager, error) {
	var (
		conn *dbus.Conn
		err  error
	)
	if user {
		conn, err = dbus.NewUserConnectionContext(ctx)
	} else {
		conn, err = dbus.NewSystemConnectionContext(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to systemd: %w", err)
	}
	return &Manager{conn: conn}, nil
}

// UnitName appends ".service" when name has no unit suffix.
func UnitName(name string) string {
	if name == "" {
		return DefaultUnit
	}
	if strings.Contains(name, ".") {
		return name
	}
	return name + ".service"
}

// ActiveState returns the ActiveState property of unit, e.g. "active".
func (m *Manager) ActiveState(ctx context.Context, unit string) (string, error) {
	prop, err := m.conn.GetUnitPropertyContext(ctx, UnitName(unit), "ActiveState")
	if err != nil {
		return "", err
	}
	return strings.Trim(prop.Value.String(), `"`), nil
}

// Restart restarts unit and waits for the job to finish.
func (m *Manager) Restart(ctx context.Context, unit string) error {
	unit = UnitName(unit)
	result := make(chan string, 1)
	if _, err := m.conn.RestartUnitContext(ctx, unit, "replace", result); err != nil {
		return fmt.Errorf("failed to restart %s: %w", unit, err)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-result:
		if res != "done" {
			return fmt.Errorf("restart of %s finished with %q", unit, res)
		}
		return nil
	}
}

// Close cleanly closes the D-Bus connection.
func (m *Manager) Close() {
	if m.conn != nil {
		m.conn.Close()
	}
}
