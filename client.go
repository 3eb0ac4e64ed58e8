package bamboosdk

import "context"

// Client is a connection to the game host.
//
// Clients are single-use: after Close(), create a new one with Connect().
// A Client is not safe for concurrent use; the protocol is strictly
// sequential, with at most one request outstanding at a time.
//
// Example usage:
//
//	plugin, err := bamboosdk.Connect(ctx, bamboosdk.WithPluginName("greeter"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer plugin.Close()
//
//	block, err := plugin.GetBlock(ctx, bamboosdk.Pos{X: 0, Y: 60, Z: 0})
type Client interface {
	// SendEvent sends a fire-and-forget event to the host. Each call
	// produces exactly one frame on the wire, flushed before returning.
	SendEvent(ctx context.Context, ev Event) error

	// SendRequest sends a request tagged with the next correlation
	// identifier and returns that identifier without waiting for the
	// reply. Use AwaitReply to collect it.
	SendRequest(ctx context.Context, req Request) (uint32, error)

	// AwaitReply blocks until the reply carrying the given identifier
	// arrives. Other messages received in the meantime are buffered in
	// arrival order and delivered by later RecvNext calls.
	//
	// If ctx carries a deadline and the transport supports read
	// deadlines, an expired wait returns ErrReplyTimeout and may be
	// retried.
	AwaitReply(ctx context.Context, id uint32) (Reply, error)

	// RecvNext returns the next host message: buffered traffic first, in
	// original order, then fresh frames from the transport. Returns
	// ErrConnectionClosed when the host ends the stream.
	RecvNext(ctx context.Context) (Message, error)

	// SendChat asks the host to broadcast a chat message.
	SendChat(ctx context.Context, text string) error

	// Register subscribes the plugin to a class of host events.
	Register(ctx context.Context, eventType string) error

	// GetBlock returns the block identifier at the given position.
	GetBlock(ctx context.Context, pos Pos) (string, error)

	// Close terminates the connection and releases resources.
	// Safe to call multiple times.
	Close() error
}

// Connect establishes a connection to the game host and performs the Ready
// handshake.
//
// By default it dials the unix socket the host places in the plugin's
// working directory; use WithSocketPath, WithManifest, or WithTransport to
// override. Returns a *ConnectionError if the host cannot be reached.
func Connect(ctx context.Context, opts ...Option) (Client, error) {
	return newClientImpl(ctx, opts)
}
