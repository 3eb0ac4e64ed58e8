// Package config provides configuration types for the Bamboo plugin SDK.
package config

import (
	"context"
	"time"
)

// Transport defines the duplex byte stream carrying the framed protocol.
// Implement this to provide custom transports for testing, mocking, or
// alternative communication methods (e.g. remote connections).
//
// The default implementation is the unix domain socket transport, matching
// how the host exposes its plugin socket. Custom transports can be injected
// via Options.Transport.
type Transport interface {
	// Connect establishes the byte stream to the host.
	// It is called once, before any reads or writes.
	Connect(ctx context.Context) error

	// Read blocks until at least one byte is available and returns it.
	// It returns io.EOF when the host closes the stream.
	Read(p []byte) (n int, err error)

	// Write sends bytes to the host. Each frame is written with a single
	// Write call, so implementations need not buffer for atomicity.
	Write(p []byte) (n int, err error)

	// Close terminates the transport and releases resources.
	// It's safe to call Close multiple times.
	Close() error
}

// DeadlineTransport is optionally implemented by transports whose reads can
// be bounded in time. The engine uses it to honor context deadlines while
// waiting for a reply.
type DeadlineTransport interface {
	Transport

	// SetReadDeadline bounds future Read calls. The zero time clears the
	// deadline.
	SetReadDeadline(t time.Time) error
}
