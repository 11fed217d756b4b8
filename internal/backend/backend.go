// Package backend receives slicer backend lifecycle events from outside the
// process and hands them to the serial loop.
//
// Two transports exist: a status file the slicer rewrites (FileSource) and
// a unix socket accepting one event token per line (SocketSource).
package backend

import (
	"context"

	"github.com/llehouerou/beatsnslices/internal/fade"
)

// Post schedules fn on the serial loop.
type Post func(fn func())

// Handler receives an event on the loop.
type Handler func(ev fade.Event)

// Source produces events until its context ends.
type Source interface {
	Run(ctx context.Context) error
	// Ready is closed once the source is accepting events.
	Ready() <-chan struct{}
}

func deliver(post Post, handle Handler, ev fade.Event) {
	if post == nil {
		handle(ev)
		return
	}
	post(func() { handle(ev) })
}
