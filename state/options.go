package state

import (
	"log/slog"
	"time"

	"github.com/ulule/limiter/v3"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"
)

type Option func(m *Manager)

// WithLogger specifies the logger for the manager
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

// WithNotifier specifies the transient notice sink for the manager
func WithNotifier(n Notifier) Option {
	return func(m *Manager) {
		m.notifier = n
	}
}

// WithManualRefreshRate overrides the manual-refresh limit.
// Defaults to 1 refresh per 2 minutes
func WithManualRefreshRate(rate limiter.Rate) Option {
	return func(m *Manager) {
		m.refreshLimiter = limiter.New(memorystore.NewStore(), rate)
	}
}

// WithClock specifies the wall-clock source for the manager
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}
