package backend

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// ErrNoReply is returned when the listener closes without answering.
var ErrNoReply = errors.New("no reply from listener")

// Send delivers one event token to the SocketSource at socketPath and waits
// for its reply. A rejected token is returned as an error.
func Send(ctx context.Context, socketPath, event string) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", socketPath)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", socketPath, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	if _, err := fmt.Fprintln(conn, strings.TrimSpace(event)); err != nil {
		return fmt.Errorf("send event: %w", err)
	}

	scanner := bufio.NewScanner(conn)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("read reply: %w", err)
		}
		return ErrNoReply
	}

	reply := strings.TrimSpace(scanner.Text())
	if reply == replyOK {
		return nil
	}
	if msg, ok := strings.CutPrefix(reply, replyPrefix); ok {
		return errors.New(msg)
	}
	return fmt.Errorf("unexpected reply %q", reply)
}
