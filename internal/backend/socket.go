package backend

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/llehouerou/beatsnslices/internal/fade"
)

const (
	replyOK     = "ok"
	replyPrefix = "error: "
)

// SocketSource listens on a unix socket. Clients write one event token per
// line and receive "ok" or "error: <reason>" for each.
type SocketSource struct {
	path   string
	post   Post
	handle Handler
	log    *zap.Logger

	ready     chan struct{}
	readyOnce sync.Once
}

// NewSocketSource creates a source listening at path.
func NewSocketSource(path string, post Post, handle Handler, log *zap.Logger) *SocketSource {
	if log == nil {
		log = zap.NewNop()
	}
	return &SocketSource{
		path:   path,
		post:   post,
		handle: handle,
		log:    log.Named("socket-source"),
		ready:  make(chan struct{}),
	}
}

// Ready is closed once the socket accepts connections.
func (s *SocketSource) Ready() <-chan struct{} {
	return s.ready
}

// Run accepts connections until ctx is cancelled, then removes the socket.
func (s *SocketSource) Run(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	if err := removeStale(s.path); err != nil {
		return err
	}

	ln, err := net.Listen("unix", s.path)
	if err != nil {
		return err
	}
	_ = os.Chmod(s.path, 0o600)
	defer os.Remove(s.path)

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		conns = map[net.Conn]struct{}{}
	)
	closeAll := func() {
		ln.Close()
		mu.Lock()
		for c := range conns {
			c.Close()
		}
		mu.Unlock()
	}
	stop := context.AfterFunc(ctx, closeAll)
	defer stop()

	s.readyOnce.Do(func() { close(s.ready) })
	s.log.Info("listening", zap.String("socket", s.path))

	for {
		conn, err := ln.Accept()
		if err != nil {
			closeAll()
			wg.Wait()
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}

		mu.Lock()
		if ctx.Err() != nil {
			conn.Close()
		} else {
			conns[conn] = struct{}{}
		}
		mu.Unlock()

		wg.Add(1)
		go func() {
			defer wg.Done()
			s.serve(conn)
			mu.Lock()
			delete(conns, conn)
			mu.Unlock()
		}()
	}
}

func (s *SocketSource) serve(conn net.Conn) {
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		token := strings.TrimSpace(scanner.Text())
		if token == "" {
			continue
		}

		reply := replyOK
		ev, err := fade.ParseEvent(token)
		if err != nil {
			s.log.Warn("rejected event", zap.String("token", token), zap.Error(err))
			reply = replyPrefix + err.Error()
		} else {
			s.log.Debug("event", zap.Stringer("event", ev))
			deliver(s.post, s.handle, ev)
		}

		if _, err := fmt.Fprintln(conn, reply); err != nil {
			return
		}
	}
}

// removeStale deletes a leftover socket file from a previous run. Anything
// that is not a socket is left alone and reported.
func removeStale(path string) error {
	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if info.Mode()&fs.ModeSocket == 0 {
		return fmt.Errorf("%s exists and is not a socket", path)
	}
	return os.Remove(path)
}
