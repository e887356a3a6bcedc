package main

import (
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/smazurov/torchnode/internal/api"
	"github.com/smazurov/torchnode/internal/config"
	"github.com/smazurov/torchnode/internal/events"
	"github.com/smazurov/torchnode/internal/led"
	"github.com/smazurov/torchnode/internal/logging"
	"github.com/smazurov/torchnode/internal/metrics"
	"github.com/smazurov/torchnode/internal/panel"
	"github.com/smazurov/torchnode/internal/strobe"
	"github.com/smazurov/torchnode/internal/torch"
	"github.com/smazurov/torchnode/internal/updater"
)

// service is the running server: one torch, its strobe loop and the
// screen state, plus the optional subscribers around them.
type service struct {
	opts   *Options
	logger *slog.Logger

	bus       *events.Bus
	torch     *torch.Controller
	strobe    *strobe.Scheduler
	panel     *panel.Panel
	exporter  *metrics.Exporter
	indicator *led.Manager
	watcher   *config.Watcher[strobe.Rate]
	server    *api.Server
}

func newService(opts *Options) *service {
	logger := logging.GetLogger("main")
	bus := events.New()

	logging.SetLogCallback(func(entry logging.LogEntry) {
		bus.Publish(events.LogEntryEvent{
			Seq:        entry.Seq,
			Timestamp:  entry.Timestamp.Format(time.RFC3339Nano),
			Level:      entry.Level,
			Module:     entry.Module,
			Message:    entry.Message,
			Attributes: entry.Attributes,
		})
	})

	torchLogger := logging.GetLogger("torch")
	device := torch.New(torch.Config{Root: opts.TorchRoot, LED: opts.TorchLED}, torchLogger)
	ctrl := torch.NewController(device, events.NewNotifier(bus), torchLogger)
	ctrl.OnChange(func(on bool) {
		bus.Publish(events.TorchStateChangedEvent{
			Device:    device.Name(),
			On:        on,
			Timestamp: time.Now().Format(time.RFC3339),
		})
	})

	rate := opts.rate()
	sched := strobe.NewScheduler(ctrl, logging.GetLogger("strobe"),
		strobe.WithMinInterval(rate.SleepFloor()),
		strobe.WithOnStateChange(func(running bool, interval time.Duration) {
			bus.Publish(events.StrobeStateChangedEvent{
				Running:    running,
				IntervalMs: interval.Milliseconds(),
				Timestamp:  time.Now().Format(time.RFC3339),
			})
		}),
	)

	s := &service{
		opts:   opts,
		logger: logger,
		bus:    bus,
		torch:  ctrl,
		strobe: sched,
		panel:  panel.New(ctrl, sched, rate, bus, logging.GetLogger("panel")),
	}

	apiOpts := &api.Options{
		AuthUsername: opts.AuthUsername,
		AuthPassword: opts.AuthPassword,
		CORSOrigin:   opts.CORSOrigin,
		Panel:        s.panel,
		Torch:        ctrl,
		EventBus:     bus,
	}

	if opts.FeaturesMetrics {
		s.exporter = metrics.NewExporter(bus, logging.GetLogger("metrics"))
		apiOpts.PrometheusHandler = s.exporter.Handler()
	}

	if opts.FeaturesIndicatorLED {
		indicatorLogger := logging.GetLogger("indicator")
		status := led.New(led.Config{LED: opts.FeaturesIndicatorName}, indicatorLogger)
		s.indicator = led.NewManager(status, bus, indicatorLogger)
	}

	if opts.FeaturesConfigWatch {
		configLogger := logging.GetLogger("config")
		s.watcher = config.NewConfigWatcher(opts.Config, config.LoadStrobeRate, configLogger)
		s.watcher.OnReload(func(r strobe.Rate) {
			configLogger.Info("Strobe rate reloaded", "max_level", r.Max, "step", r.Step, "min", r.Min)
			s.applyRate(r)
		})
	}

	if opts.UpdateEnabled {
		svc, err := updater.NewService(updater.Options{
			Repository: opts.UpdateRepository,
			Prerelease: opts.UpdatePrerelease,
		}, logging.GetLogger("updater"))
		if err != nil {
			logger.Warn("Update check disabled", "error", err)
		} else {
			apiOpts.UpdateService = svc
		}
	}

	s.server = api.NewServer(apiOpts)
	return s
}

// applyRate installs a reloaded slider mapping. The scheduler floor moves
// first so a restarted strobe uses the interval the panel reports.
func (s *service) applyRate(r strobe.Rate) {
	s.strobe.SetMinInterval(r.SleepFloor())
	s.panel.SetRate(r)
}

// run opens the screen, starts the subscribers and serves HTTP until
// shutdown. systemd is notified once the socket is bound.
func (s *service) run() error {
	s.panel.Open()

	if s.exporter != nil {
		s.exporter.Start()
	}
	if s.indicator != nil {
		s.indicator.Start()
	}
	if s.watcher != nil {
		if err := s.watcher.Start(); err != nil {
			s.logger.Warn("Failed to watch config file", "path", s.opts.Config, "error", err)
			s.watcher = nil
		}
	}

	ln, err := net.Listen("tcp", s.opts.Port)
	if err != nil {
		return err
	}

	if ok, notifyErr := daemon.SdNotify(false, daemon.SdNotifyReady); notifyErr != nil {
		s.logger.Warn("Failed to notify systemd", "error", notifyErr)
	} else if ok {
		s.logger.Debug("Notified systemd", "state", daemon.SdNotifyReady)
	}

	if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// shutdown stops HTTP first, then closes the screen so the torch ends dark.
func (s *service) shutdown(timeout time.Duration) {
	s.logger.Info("Shutting down server")
	_, _ = daemon.SdNotify(false, daemon.SdNotifyStopping)

	if err := s.server.Stop(); err != nil {
		s.logger.Error("Error stopping HTTP server", "error", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.panel.Close()
	}()
	select {
	case <-done:
	case <-time.After(timeout):
		s.logger.Warn("Timed out switching the torch off", "timeout", timeout)
	}

	if s.watcher != nil {
		if err := s.watcher.Stop(); err != nil {
			s.logger.Warn("Error stopping config watcher", "error", err)
		}
	}
	if s.indicator != nil {
		s.indicator.Stop()
	}
	if s.exporter != nil {
		s.exporter.Stop()
	}
	logging.SetLogCallback(nil)
}
