// Package metrics exposes torch and strobe activity in Prometheus format.
// It only listens to the event bus and never touches the hardware.
package metrics

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smazurov/torchnode/internal/events"
)

const namespace = "torchnode"

// Exporter collects torchnode metrics from bus events.
type Exporter struct {
	bus      *events.Bus
	logger   *slog.Logger
	registry *prometheus.Registry
	handler  http.Handler

	torchOn        prometheus.Gauge
	torchSwitches  *prometheus.CounterVec
	strobeRunning  prometheus.Gauge
	strobeInterval prometheus.Gauge
	panelActions   *prometheus.CounterVec
	notifications  *prometheus.CounterVec

	mu           sync.Mutex
	unsubscribes []func()
}

// NewExporter creates an exporter with its own registry. Go runtime and
// process collectors are included.
func NewExporter(bus *events.Bus, logger *slog.Logger) *Exporter {
	registry := prometheus.NewRegistry()

	e := &Exporter{
		bus:      bus,
		logger:   logger,
		registry: registry,
		torchOn: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "torch_on",
			Help:      "Whether the torch LED is currently lit (1) or off (0).",
		}),
		torchSwitches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "torch_switches_total",
			Help:      "Successful writes to the torch LED, by resulting state.",
		}, []string{"state"}),
		strobeRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "strobe_running",
			Help:      "Whether the strobe loop is active.",
		}),
		strobeInterval: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "strobe_interval_seconds",
			Help:      "Interval between strobe toggles, 0 when idle.",
		}),
		panelActions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "panel_actions_total",
			Help:      "User actions applied to the flashlight panel.",
		}, []string{"action"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "User-visible notifications, by level.",
		}, []string{"level"}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		e.torchOn,
		e.torchSwitches,
		e.strobeRunning,
		e.strobeInterval,
		e.panelActions,
		e.notifications,
	)
	e.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})

	return e
}

// Start subscribes to the bus.
func (e *Exporter) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.unsubscribes = append(e.unsubscribes,
		e.bus.Subscribe(e.handleTorch),
		e.bus.Subscribe(e.handleStrobe),
		e.bus.Subscribe(e.handlePanel),
		e.bus.Subscribe(e.handleNotification),
	)
	e.logger.Info("Metrics exporter started")
}

// Stop unsubscribes from the bus.
func (e *Exporter) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, unsub := range e.unsubscribes {
		unsub()
	}
	e.unsubscribes = nil
	e.logger.Info("Metrics exporter stopped")
}

// Handler serves the registry in the Prometheus exposition format.
func (e *Exporter) Handler() http.Handler {
	return e.handler
}

// Registry returns the underlying registry.
func (e *Exporter) Registry() *prometheus.Registry {
	return e.registry
}

func (e *Exporter) handleTorch(ev events.TorchStateChangedEvent) {
	state := "off"
	value := 0.0
	if ev.On {
		state = "on"
		value = 1
	}
	e.torchOn.Set(value)
	e.torchSwitches.WithLabelValues(state).Inc()
}

func (e *Exporter) handleStrobe(ev events.StrobeStateChangedEvent) {
	if ev.Running {
		e.strobeRunning.Set(1)
		e.strobeInterval.Set(float64(ev.IntervalMs) / 1000)
		return
	}
	e.strobeRunning.Set(0)
	e.strobeInterval.Set(0)
}

func (e *Exporter) handlePanel(ev events.PanelStateChangedEvent) {
	e.panelActions.WithLabelValues(ev.Action).Inc()
}

func (e *Exporter) handleNotification(ev events.NotificationEvent) {
	e.notifications.WithLabelValues(ev.Level).Inc()
}
