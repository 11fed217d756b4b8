// Package clock provides periodic tick sources whose ticks are delivered
// through a serial event loop.
package clock

import (
	"sync"
	"sync/atomic"
	"time"
)

// PostFunc schedules fn on the event loop.
type PostFunc func(fn func())

// Ticker fires onTick every interval. Ticks are marshalled through post so
// they run on the loop, and a tick queued before Stop is dropped when it
// finally runs.
type Ticker struct {
	post PostFunc

	mu   sync.Mutex
	stop chan struct{}
	gen  atomic.Uint64
}

// NewTicker creates a stopped ticker that posts ticks through post.
func NewTicker(post PostFunc) *Ticker {
	return &Ticker{post: post}
}

// Start begins ticking, replacing any running schedule.
func (t *Ticker) Start(interval time.Duration, onTick func()) {
	t.Stop()

	t.mu.Lock()
	defer t.mu.Unlock()

	gen := t.gen.Add(1)
	stop := make(chan struct{})
	t.stop = stop

	go func() {
		tk := time.NewTicker(interval)
		defer tk.Stop()
		for {
			select {
			case <-stop:
				return
			case <-tk.C:
				t.post(func() {
					if t.gen.Load() == gen {
						onTick()
					}
				})
			}
		}
	}()
}

// Stop halts the ticker. Safe to call when already stopped.
func (t *Ticker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.gen.Add(1)
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
}

// Running returns true between Start and Stop.
func (t *Ticker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stop != nil
}
