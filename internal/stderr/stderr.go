//go:build !windows

// Package stderr redirects file descriptor 2 into a pipe while the TUI is
// up. The audio backend and ALSA write diagnostics straight to fd 2, which
// would otherwise be drawn over the status panel; captured lines are handed
// to a callback instead, usually the logger.
package stderr

import (
	"os"
	"sync"
	"syscall"
)

var (
	mu      sync.Mutex
	saved   = -1
	r, w    *os.File
	stopped chan struct{}
)

// Start begins capturing, calling onLine for each non-empty line from a
// background goroutine. Call it before the speaker is initialized. On error
// fd 2 is left untouched and the program can carry on without capture.
func Start(onLine func(string)) error {
	mu.Lock()
	defer mu.Unlock()
	if saved >= 0 {
		return nil
	}

	pr, pw, err := os.Pipe()
	if err != nil {
		return err
	}
	fd := int(os.Stderr.Fd())
	orig, err := syscall.Dup(fd)
	if err != nil {
		pr.Close()
		pw.Close()
		return err
	}
	if err := syscall.Dup2(int(pw.Fd()), fd); err != nil {
		syscall.Close(orig)
		pr.Close()
		pw.Close()
		return err
	}

	saved, r, w = orig, pr, pw
	stopped = make(chan struct{})
	go func(done chan struct{}) {
		defer close(done)
		forward(pr, onLine)
	}(stopped)
	return nil
}

// Stop restores the original fd 2 and waits for buffered lines to be
// forwarded.
func Stop() {
	mu.Lock()
	defer mu.Unlock()
	if saved < 0 {
		return
	}

	_ = syscall.Dup2(saved, int(os.Stderr.Fd()))
	_ = syscall.Close(saved)
	w.Close()
	<-stopped
	r.Close()
	saved = -1
}
