package fade

import (
	"time"

	"github.com/google/uuid"
)

// Session is an active looping playback instance.
type Session struct {
	ID         string
	SourcePath string
	Volume     float64
	Looping    bool
	StartedAt  time.Time
}

func newSession(path string, now time.Time) *Session {
	return &Session{
		ID:         uuid.NewString(),
		SourcePath: path,
		Volume:     0,
		Looping:    true,
		StartedAt:  now,
	}
}
