package torch

import (
	"log/slog"
	"sync"
)

// Controller is the single owner of a torch Device.
type Controller struct {
	device   Device
	notifier Notifier
	logger   *slog.Logger

	mu        sync.Mutex
	lit       bool
	phase     bool
	observers []func(on bool)
}

// NewController wraps device. notifier may be nil.
func NewController(device Device, notifier Notifier, logger *slog.Logger) *Controller {
	return &Controller{
		device:   device,
		notifier: notifier,
		logger:   logger,
	}
}

// OnChange registers fn to run after every successful write to the device.
// Observers run with the controller lock held and must not call back into it.
func (c *Controller) OnChange(fn func(on bool)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

// TurnOn lights the torch.
func (c *Controller) TurnOn() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.set(true)
}

// TurnOff switches the torch off.
func (c *Controller) TurnOff() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.set(false)
}

// Toggle performs one strobe step: the torch is set to the current phase
// and the phase flips. The phase starts off and is independent of
// TurnOn/TurnOff.
func (c *Controller) Toggle() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.set(c.phase); err != nil {
		return err
	}
	c.phase = !c.phase
	return nil
}

// Lit reports the last state successfully written.
func (c *Controller) Lit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lit
}

// FlashAvailable reports whether the device can be driven.
func (c *Controller) FlashAvailable() bool {
	return c.device.FlashAvailable()
}

// DeviceName returns the name of the underlying LED.
func (c *Controller) DeviceName() string {
	return c.device.Name()
}

// set must be called with c.mu held.
func (c *Controller) set(on bool) error {
	if err := c.device.SetTorch(on); err != nil {
		c.logger.Error("Failed to set torch mode", "device", c.device.Name(), "on", on, "error", err)
		if c.notifier != nil {
			c.notifier.Notify(err.Error())
		}
		return err
	}

	c.lit = on
	c.logger.Debug("Torch mode set", "device", c.device.Name(), "on", on)
	for _, fn := range c.observers {
		fn(on)
	}
	return nil
}
