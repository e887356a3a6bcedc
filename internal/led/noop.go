package led

import "log/slog"

// noop implements Controller for boards without a known status LED.
type noop struct {
	logger *slog.Logger
}

func newNoop(logger *slog.Logger) *noop {
	return &noop{logger: logger}
}

func (n *noop) Name() string { return "none" }

// Set logs the request but performs no actual LED control.
func (n *noop) Set(pattern Pattern) error {
	n.logger.Debug("Indicator LED not available (no-op)", "pattern", pattern)
	return nil
}
