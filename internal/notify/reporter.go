package notify

import (
	"sync"

	"go.uber.org/zap"
)

// errorTimeout keeps error notifications up until dismissed.
const errorTimeout int32 = 0

// Reporter shows playback errors as critical desktop notifications. A new
// error replaces the previous one instead of stacking.
// Logging the error itself is the caller's job; Reporter only logs its own
// delivery failures.
type Reporter struct {
	notifier Notifier
	enabled  bool
	log      *zap.Logger

	mu     sync.Mutex
	lastID uint32
}

// NewReporter wraps notifier. A disabled reporter drops every message.
func NewReporter(notifier Notifier, enabled bool, log *zap.Logger) *Reporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reporter{notifier: notifier, enabled: enabled, log: log}
}

// ShowError displays an error dialog-style notification. Safe for
// concurrent use.
func (r *Reporter) ShowError(title, message string) {
	if !r.enabled || r.notifier == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id, err := r.notifier.Notify(Notification{
		Title:      title,
		Body:       message,
		Icon:       "dialog-error",
		Timeout:    errorTimeout,
		ReplacesID: r.lastID,
		Urgency:    UrgencyCritical,
	})
	if err != nil {
		r.log.Debug("notification not delivered", zap.Error(err))
		return
	}
	r.lastID = id
}
