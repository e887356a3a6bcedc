package led

import (
	"log/slog"
	"sync"

	"github.com/smazurov/torchnode/internal/events"
)

// Manager mirrors the flashlight panel on the indicator LED: solid while
// the torch is steadily on, blinking while strobing, off otherwise.
type Manager struct {
	controller  Controller
	eventBus    *events.Bus
	unsubscribe func()
	logger      *slog.Logger

	mu      sync.Mutex
	current Pattern
}

// NewManager creates a manager driving controller from panel events.
func NewManager(controller Controller, eventBus *events.Bus, logger *slog.Logger) *Manager {
	return &Manager{
		controller: controller,
		eventBus:   eventBus,
		logger:     logger,
	}
}

// Start switches the LED off and begins listening for panel changes.
func (m *Manager) Start() {
	m.apply(PatternOff)
	m.unsubscribe = m.eventBus.Subscribe(func(e events.PanelStateChangedEvent) {
		m.handleEvent(e)
	})
	m.logger.Info("Indicator started", "led", m.controller.Name())
}

// Stop unsubscribes and switches the LED off.
func (m *Manager) Stop() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	m.apply(PatternOff)
	m.logger.Info("Indicator stopped")
}

// Current returns the last pattern applied.
func (m *Manager) Current() Pattern {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

func (m *Manager) handleEvent(e events.PanelStateChangedEvent) {
	m.apply(patternFor(e.Panel.TorchOn, e.Panel.StrobeRunning))
}

func patternFor(torchOn, strobing bool) Pattern {
	switch {
	case strobing:
		return PatternBlink
	case torchOn:
		return PatternSolid
	default:
		return PatternOff
	}
}

func (m *Manager) apply(pattern Pattern) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == pattern {
		return
	}
	if err := m.controller.Set(pattern); err != nil {
		m.logger.Warn("Failed to set indicator LED", "pattern", pattern, "error", err)
		return
	}
	m.current = pattern
	m.logger.Debug("Indicator LED updated", "pattern", pattern)
}
