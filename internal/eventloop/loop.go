// Package eventloop runs callbacks one at a time in the order they were
// posted, giving the headless front-end the same serial dispatch a UI loop
// provides.
package eventloop

import (
	"context"
	"sync"
)

const defaultQueueSize = 256

// Loop is a serial callback executor.
type Loop struct {
	queue chan func()
	done  chan struct{}
	once  sync.Once
}

// New creates a loop. size <= 0 uses the default queue size.
func New(size int) *Loop {
	if size <= 0 {
		size = defaultQueueSize
	}
	return &Loop{
		queue: make(chan func(), size),
		done:  make(chan struct{}),
	}
}

// Post enqueues fn. Blocks while the queue is full; callbacks posted after
// the loop has stopped are dropped.
func (l *Loop) Post(fn func()) {
	select {
	case <-l.done:
	case l.queue <- fn:
	}
}

// Run executes posted callbacks until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	defer l.once.Do(func() { close(l.done) })

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.queue:
			fn()
		}
	}
}

// Done is closed once Run returns.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
