// Package protocol implements the correlation engine of the plugin protocol.
//
// The Engine owns the framed byte stream to the host and drives all sends
// and receives. It correlates each outgoing Request with the Reply carrying
// the same identifier, while buffering every other message that arrives in
// between so that nothing is dropped or reordered.
//
// The engine is fully synchronous: there is no background reader, and the
// only blocking point is the transport read inside AwaitReply and RecvNext.
// A single Engine must not be shared across goroutines without external
// synchronization.
//
// Example usage:
//
//	transport := socket.NewUnixTransport(log, "server.sock", 0)
//	transport.Connect(ctx)
//
//	engine := protocol.NewEngine(log, transport)
//	engine.Handshake(ctx)
//
//	id, _ := engine.SendRequest(ctx, &message.GetBlockRequest{Pos: pos})
//	reply, _ := engine.AwaitReply(ctx, id)
package protocol
