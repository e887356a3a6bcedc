package torch

import "log/slog"

// noop stands in for a missing flash LED.
type noop struct {
	logger *slog.Logger
}

func newNoop(logger *slog.Logger) *noop {
	return &noop{logger: logger}
}

func (n *noop) Name() string { return "none" }

func (n *noop) FlashAvailable() bool { return false }

// SetTorch always fails; there is nothing to drive.
func (n *noop) SetTorch(on bool) error {
	n.logger.Debug("Torch control not available (no-op)", "on", on)
	return newError(ErrCodeNoFlash, "No flash available", nil)
}
