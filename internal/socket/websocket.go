package socket

import (
	"context"
	"io"
	"log/slog"

	"github.com/gorilla/websocket"

	"github.com/bamboomc/plugin-sdk-go/internal/config"
	"github.com/bamboomc/plugin-sdk-go/internal/errors"
)

// WebSocketTransport implements Transport over a WebSocket connection,
// carrying the framed byte stream as binary messages. It is meant for
// plugins running on a different machine than the host, behind a bridge
// that exposes the plugin socket over WebSocket.
//
// WebSocketTransport does not support read deadlines: a timed-out read
// leaves a websocket connection unusable, so AwaitReply deadlines are not
// honored on this transport.
type WebSocketTransport struct {
	log      *slog.Logger
	url      string
	conn     *websocket.Conn
	leftover []byte
}

// Compile-time verification that WebSocketTransport implements Transport.
var _ config.Transport = (*WebSocketTransport)(nil)

// NewWebSocketTransport creates a transport that dials the given ws:// or
// wss:// URL.
func NewWebSocketTransport(log *slog.Logger, url string) *WebSocketTransport {
	return &WebSocketTransport{
		log: log.With("component", "websocket_transport"),
		url: url,
	}
}

// Connect dials the WebSocket endpoint.
func (t *WebSocketTransport) Connect(ctx context.Context) error {
	t.log.Debug("Dialing host websocket", "url", t.url)

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, t.url, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	if err != nil {
		t.log.Error("Failed to dial host websocket", "url", t.url, "error", err)

		return &errors.ConnectionError{Addr: t.url, Err: err}
	}

	t.conn = conn
	t.log.Info("Connected to host websocket", "url", t.url)

	return nil
}

// Read returns bytes from the next binary message, carrying unread bytes
// over between calls. A normal websocket closure is reported as io.EOF so
// the engine sees the same end-of-stream signal as on a unix socket.
func (t *WebSocketTransport) Read(p []byte) (int, error) {
	if t.conn == nil {
		return 0, errors.ErrNotConnected
	}

	for len(t.leftover) == 0 {
		_, data, err := t.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway) {
				return 0, io.EOF
			}

			return 0, err
		}

		t.leftover = data
	}

	n := copy(p, t.leftover)
	t.leftover = t.leftover[n:]

	return n, nil
}

// Write sends bytes as one binary message. The engine writes exactly one
// frame per call, so frame and message boundaries coincide.
func (t *WebSocketTransport) Write(p []byte) (int, error) {
	if t.conn == nil {
		return 0, errors.ErrNotConnected
	}

	if err := t.conn.WriteMessage(websocket.BinaryMessage, p); err != nil {
		return 0, err
	}

	return len(p), nil
}

// Close terminates the connection. Safe to call multiple times.
func (t *WebSocketTransport) Close() error {
	if t.conn == nil {
		return nil
	}

	conn := t.conn
	t.conn = nil
	t.log.Debug("Closing host websocket", "url", t.url)

	return conn.Close()
}
