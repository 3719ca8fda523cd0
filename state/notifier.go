package state

import "log/slog"

// Notifier surfaces transient user-facing notices (the toast analog).
// Notices are advisory only and carry no state
type Notifier interface {
	// Success raises a transient success notice
	Success(title, detail string)

	// Error raises a transient error notice
	Error(title, detail string)
}

// LogNotifier writes notices to a structured logger
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a logger-backed notifier
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{
		logger: logger,
	}
}

func (n *LogNotifier) Success(title, detail string) {
	n.logger.Info(
		"notice",
		"title", title,
		"detail", detail,
	)
}

func (n *LogNotifier) Error(title, detail string) {
	n.logger.Warn(
		"notice",
		"title", title,
		"detail", detail,
	)
}
