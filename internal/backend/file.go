package backend

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/llehouerou/beatsnslices/internal/errmsg"
	"github.com/llehouerou/beatsnslices/internal/fade"
)

// FileSource watches a status file and emits the event named by its last
// non-empty line each time the file changes. The parent directory is
// watched so writers that replace the file by rename are seen too.
//
// Changes are detected from the file itself (identity, size, mtime), not
// from its content, so writing the same token twice emits it twice.
type FileSource struct {
	path   string
	post   Post
	handle Handler
	log    *zap.Logger

	ready     chan struct{}
	readyOnce sync.Once
	seen      os.FileInfo
}

// NewFileSource creates a source for the status file at path.
func NewFileSource(path string, post Post, handle Handler, log *zap.Logger) *FileSource {
	if log == nil {
		log = zap.NewNop()
	}
	return &FileSource{
		path:   filepath.Clean(path),
		post:   post,
		handle: handle,
		log:    log.Named("file-source"),
		ready:  make(chan struct{}),
	}
}

// Ready is closed once the directory watch is in place.
func (s *FileSource) Ready() <-chan struct{} {
	return s.ready
}

// Run watches until ctx is cancelled. The file present when Run starts is
// not dispatched; a leftover token from a previous run means nothing.
func (s *FileSource) Run(ctx context.Context) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return err
	}

	if info, err := os.Stat(s.path); err == nil {
		s.seen = info
	}
	s.readyOnce.Do(func() { close(s.ready) })
	s.log.Info("watching status file", zap.String("path", s.path))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != s.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			s.check(ev.Op.Has(fsnotify.Create))
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.log.Warn("watcher error", zap.Error(err))
		}
	}
}

// check reads the file and dispatches its last line if the file changed
// since the last dispatch. A Create always counts as a change: renaming a
// fresh file over the path is a new write even when size and mtime match.
func (s *FileSource) check(created bool) {
	before, err := os.Stat(s.path)
	if err != nil {
		s.logReadError(err)
		return
	}
	if !created && s.seen != nil && unchanged(s.seen, before) {
		// Writers often emit several events per update
		return
	}

	line, err := s.readLastLine()
	if err != nil {
		s.logReadError(err)
		return
	}
	after, err := os.Stat(s.path)
	if err != nil {
		s.logReadError(err)
		return
	}
	if !unchanged(before, after) {
		// Written while reading; the event for that write follows
		return
	}
	s.seen = after
	if line == "" {
		return
	}

	ev, err := fade.ParseEvent(line)
	if err != nil {
		s.log.Warn(errmsg.Format(errmsg.OpEventParse, err))
		return
	}
	s.log.Debug("event", zap.Stringer("event", ev))
	deliver(s.post, s.handle, ev)
}

func (s *FileSource) logReadError(err error) {
	if !errors.Is(err, fs.ErrNotExist) {
		s.log.Warn("read status file", zap.Error(err))
	}
}

func unchanged(a, b os.FileInfo) bool {
	return os.SameFile(a, b) && a.Size() == b.Size() && a.ModTime().Equal(b.ModTime())
}

func (s *FileSource) readLastLine() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", err
	}
	return lastLine(data), nil
}

// lastLine returns the last non-blank line of data, trimmed.
func lastLine(data []byte) string {
	lines := bytes.Split(data, []byte("\n"))
	for i := len(lines) - 1; i >= 0; i-- {
		if line := bytes.TrimSpace(lines[i]); len(line) > 0 {
			return string(line)
		}
	}
	return ""
}

// WriteStatus replaces the status file at path with ev's token. The file is
// written beside the target and renamed over it so watchers never read a
// partial line.
func WriteStatus(path string, ev fade.Event) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".status-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(ev.String() + "\n"); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
