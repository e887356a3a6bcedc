// Package strobe runs the repeating timer that blinks the torch.
package strobe

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Toggler is the single action the strobe repeats.
type Toggler interface {
	Toggle() error
}

// Scheduler runs at most one strobe loop. Starting a new loop cancels the
// previous one first.
type Scheduler struct {
	toggler     Toggler
	logger      *slog.Logger
	minInterval time.Duration
	onTick      func(err error)
	onState     func(running bool, interval time.Duration)

	mu       sync.Mutex
	cancel   context.CancelFunc
	done     chan struct{}
	interval time.Duration
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithMinInterval sets the shortest interval the loop will sleep.
func WithMinInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		s.minInterval = d
	}
}

// WithOnTick registers a callback run after every toggle with its result.
// Callbacks run on the loop goroutine and must not call back into the
// Scheduler.
func WithOnTick(fn func(err error)) Option {
	return func(s *Scheduler) {
		s.onTick = fn
	}
}

// WithOnStateChange registers a callback run when the loop starts or stops.
func WithOnStateChange(fn func(running bool, interval time.Duration)) Option {
	return func(s *Scheduler) {
		s.onState = fn
	}
}

// NewScheduler creates an idle scheduler.
func NewScheduler(toggler Toggler, logger *slog.Logger, opts ...Option) *Scheduler {
	s := &Scheduler{
		toggler:     toggler,
		logger:      logger,
		minInterval: DefaultMinInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start cancels any running loop and starts a new one. The first toggle
// happens immediately, then one every interval.
func (s *Scheduler) Start(interval time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	interval = max(interval, s.minInterval)
	s.stopLocked()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done
	s.interval = interval

	go s.run(ctx, interval, done)

	s.logger.Debug("Strobe started", "interval", interval)
	if s.onState != nil {
		s.onState(true, interval)
	}
}

// Stop cancels the running loop and waits for it to exit. No toggle runs
// after Stop returns. Stopping an idle scheduler does nothing.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.stopLocked() {
		return
	}
	s.logger.Debug("Strobe stopped")
	if s.onState != nil {
		s.onState(false, 0)
	}
}

// SetMinInterval changes the shortest interval for loops started after
// the call. A running loop keeps its interval.
func (s *Scheduler) SetMinInterval(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.minInterval = d
}

// Running reports whether a loop is active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

// Interval returns the interval of the active loop, zero when idle.
func (s *Scheduler) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

// stopLocked must be called with s.mu held.
func (s *Scheduler) stopLocked() bool {
	if s.cancel == nil {
		return false
	}
	s.cancel()
	<-s.done
	s.cancel = nil
	s.done = nil
	s.interval = 0
	return true
}

func (s *Scheduler) run(ctx context.Context, interval time.Duration, done chan struct{}) {
	defer close(done)

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		// A cancel racing with the timer must win.
		if ctx.Err() != nil {
			return
		}

		err := s.toggler.Toggle()
		if err != nil {
			s.logger.Warn("Strobe toggle failed", "error", err)
		}
		if s.onTick != nil {
			s.onTick(err)
		}

		timer.Reset(interval)
	}
}
