package history

import (
	"log/slog"
	"time"
)

type ControllerOption func(c *Controller)

// WithLogger specifies the logger for the controller
func WithLogger(l *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = l
	}
}

// WithFallback overrides the backstop dataset loader.
// Defaults to the bundled static dataset
func WithFallback(fn FallbackFn) ControllerOption {
	return func(c *Controller) {
		c.fallback = fn
	}
}

// WithClock specifies the wall-clock source for date-range math
func WithClock(now func() time.Time) ControllerOption {
	return func(c *Controller) {
		c.now = now
	}
}
