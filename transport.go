package bamboosdk

import (
	"log/slog"
	"time"

	"github.com/bamboomc/plugin-sdk-go/internal/config"
	"github.com/bamboomc/plugin-sdk-go/internal/socket"
)

// Transport defines the duplex byte stream carrying the framed protocol.
// Implement this to provide custom transports for testing, mocking, or
// alternative communication methods, and inject it with WithTransport.
type Transport = config.Transport

// DeadlineTransport is optionally implemented by transports whose reads can
// be bounded in time. AwaitReply honors context deadlines only on
// transports that implement it.
type DeadlineTransport = config.DeadlineTransport

// NewUnixTransport returns the default transport: a unix domain socket at
// path, as created by a local host. Connect builds one automatically, so
// this is only needed to customize the dial timeout together with an
// explicit WithTransport.
func NewUnixTransport(log *slog.Logger, path string, dialTimeout time.Duration) DeadlineTransport {
	return socket.NewUnixTransport(log, path, dialTimeout)
}

// NewWebSocketTransport returns a transport that carries the framed
// protocol over a WebSocket connection to url, for hosts that expose their
// plugin endpoint remotely instead of via a local socket. It does not
// support read deadlines, so AwaitReply ignores context deadlines on it.
func NewWebSocketTransport(log *slog.Logger, url string) Transport {
	return socket.NewWebSocketTransport(log, url)
}
