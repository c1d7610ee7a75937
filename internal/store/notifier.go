package store

import "go.uber.org/zap"

// Severity grades a user-facing notification
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notifier is the fire-and-forget channel the caches use to surface
// rollback errors to the user (the UI layer renders it as a toast).
type Notifier interface {
	Notify(message string, severity Severity)
}

// LogNotifier routes notifications to the logger, the default for
// headless consumers.
type LogNotifier struct {
	log *zap.Logger
}

// NewLogNotifier creates a LogNotifier
func NewLogNotifier(log *zap.Logger) *LogNotifier {
	if log == nil {
		log = zap.NewNop()
	}
	return &LogNotifier{log: log}
}

// Notify logs the message at a level matching its severity
func (n *LogNotifier) Notify(message string, severity Severity) {
	switch severity {
	case SeverityError:
		n.log.Error(message)
	case SeverityWarning:
		n.log.Warn(message)
	default:
		n.log.Info(message)
	}
}
