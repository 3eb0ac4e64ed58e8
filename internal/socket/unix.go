package socket

import (
	"context"
	"log/slog"
	"net"
	"time"

	"github.com/bamboomc/plugin-sdk-go/internal/config"
	"github.com/bamboomc/plugin-sdk-go/internal/errors"
)

// UnixTransport implements Transport over the host's unix plugin socket.
type UnixTransport struct {
	log         *slog.Logger
	path        string
	dialTimeout time.Duration
	conn        net.Conn
}

// Compile-time verification that UnixTransport supports read deadlines.
var _ config.DeadlineTransport = (*UnixTransport)(nil)

// NewUnixTransport creates a transport that dials the unix socket at path.
//
// The logger receives debug messages during transport operations. A zero
// dialTimeout leaves the dial bounded only by the Connect context.
func NewUnixTransport(log *slog.Logger, path string, dialTimeout time.Duration) *UnixTransport {
	return &UnixTransport{
		log:         log.With("component", "unix_transport"),
		path:        path,
		dialTimeout: dialTimeout,
	}
}

// Connect dials the host socket.
//
// Returns *errors.ConnectionError if the socket cannot be reached, which
// usually means the host has not created it yet or the plugin is running
// from the wrong directory.
func (t *UnixTransport) Connect(ctx context.Context) error {
	t.log.Debug("Dialing host socket", "path", t.path)

	dialer := net.Dialer{Timeout: t.dialTimeout}

	conn, err := dialer.DialContext(ctx, "unix", t.path)
	if err != nil {
		t.log.Error("Failed to dial host socket", "path", t.path, "error", err)

		return &errors.ConnectionError{Addr: t.path, Err: err}
	}

	t.conn = conn
	t.log.Info("Connected to host socket", "path", t.path)

	return nil
}

// Read blocks until the host sends bytes. Returns io.EOF when the host
// closes the connection.
func (t *UnixTransport) Read(p []byte) (int, error) {
	if t.conn == nil {
		return 0, errors.ErrNotConnected
	}

	return t.conn.Read(p)
}

// Write sends bytes to the host.
func (t *UnixTransport) Write(p []byte) (int, error) {
	if t.conn == nil {
		return 0, errors.ErrNotConnected
	}

	return t.conn.Write(p)
}

// SetReadDeadline bounds future Read calls.
func (t *UnixTransport) SetReadDeadline(deadline time.Time) error {
	if t.conn == nil {
		return errors.ErrNotConnected
	}

	return t.conn.SetReadDeadline(deadline)
}

// Close terminates the connection. Safe to call multiple times.
func (t *UnixTransport) Close() error {
	if t.conn == nil {
		return nil
	}

	conn := t.conn
	t.conn = nil
	t.log.Debug("Closing host socket", "path", t.path)

	return conn.Close()
}
