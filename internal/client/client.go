package client

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/bamboomc/plugin-sdk-go/internal/config"
	"github.com/bamboomc/plugin-sdk-go/internal/errors"
	"github.com/bamboomc/plugin-sdk-go/internal/message"
	"github.com/bamboomc/plugin-sdk-go/internal/protocol"
	"github.com/bamboomc/plugin-sdk-go/internal/socket"
)

// engine is the part of the protocol engine the client depends on.
// Satisfied by *protocol.Engine; tests substitute stubs.
type engine interface {
	Handshake(ctx context.Context) error
	SendEvent(ctx context.Context, ev message.Event) error
	SendRequest(ctx context.Context, req message.Request) (uint32, error)
	AwaitReply(ctx context.Context, id uint32) (message.Reply, error)
	RecvNext(ctx context.Context) (message.Message, error)
	Close() error
}

// Compile-time verification that the protocol engine satisfies the interface.
var _ engine = (*protocol.Engine)(nil)

// Client is a connection to the game host.
//
// Clients are single-use: once closed, create a new one with New().
// A Client is not safe for concurrent use; the protocol is strictly
// sequential by design.
type Client struct {
	log       *slog.Logger
	engine    engine
	connected bool
	closed    bool
}

// New creates an unconnected client.
func New() *Client {
	return &Client{}
}

// Connect resolves options into a transport, establishes the byte stream,
// and performs the Ready handshake.
//
// Returns *errors.ConnectionError if the host cannot be reached.
func (c *Client) Connect(ctx context.Context, opts *config.Options) error {
	if c.closed {
		return errors.ErrConnectionClosed
	}

	if c.connected {
		return errors.ErrAlreadyConnected
	}

	if opts == nil {
		opts = &config.Options{}
	}

	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if opts.PluginName != "" {
		log = log.With("plugin", opts.PluginName)
	}

	transport := opts.Transport
	if transport == nil {
		path := opts.SocketPath
		if path == "" {
			path = config.DefaultSocketPath
		}

		transport = socket.NewUnixTransport(log, path, opts.DialTimeout)
	}

	if err := transport.Connect(ctx); err != nil {
		return err
	}

	eng := protocol.NewEngine(log, transport)

	if err := eng.Handshake(ctx); err != nil {
		_ = transport.Close()

		return err
	}

	c.log = log
	c.engine = eng
	c.connected = true
	c.log.Info("Plugin connected to host")

	return nil
}

// SendEvent sends a fire-and-forget event to the host.
func (c *Client) SendEvent(ctx context.Context, ev message.Event) error {
	if err := c.ready(); err != nil {
		return err
	}

	return c.engine.SendEvent(ctx, ev)
}

// SendRequest sends a request and returns its correlation identifier
// without waiting for the reply.
func (c *Client) SendRequest(ctx context.Context, req message.Request) (uint32, error) {
	if err := c.ready(); err != nil {
		return 0, err
	}

	return c.engine.SendRequest(ctx, req)
}

// AwaitReply blocks until the reply for the given identifier arrives.
func (c *Client) AwaitReply(ctx context.Context, id uint32) (message.Reply, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}

	return c.engine.AwaitReply(ctx, id)
}

// RecvNext returns the next host message, draining any traffic buffered
// during earlier replies before reading fresh frames.
func (c *Client) RecvNext(ctx context.Context) (message.Message, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}

	return c.engine.RecvNext(ctx)
}

// SendChat asks the host to broadcast a chat message.
func (c *Client) SendChat(ctx context.Context, text string) error {
	return c.SendEvent(ctx, &message.SendChatEvent{Text: text})
}

// Register subscribes the plugin to a class of host events.
func (c *Client) Register(ctx context.Context, eventType string) error {
	return c.SendEvent(ctx, &message.RegisterEvent{Type: eventType})
}

// GetBlock returns the block identifier at the given position.
//
// A reply tagged with the expected identifier but carrying the wrong
// variant is a protocol violation and reported as *errors.DecodeError,
// never silently passed through.
func (c *Client) GetBlock(ctx context.Context, pos message.Pos) (string, error) {
	if err := c.ready(); err != nil {
		return "", err
	}

	id, err := c.engine.SendRequest(ctx, &message.GetBlockRequest{Pos: pos})
	if err != nil {
		return "", err
	}

	reply, err := c.engine.AwaitReply(ctx, id)
	if err != nil {
		return "", err
	}

	block, ok := reply.(*message.BlockReply)
	if !ok {
		return "", &errors.DecodeError{
			RawData: fmt.Sprintf("reply_id=%d variant=%s", id, reply.Variant()),
			Err:     fmt.Errorf("reply %d: got variant %q, want %q", id, reply.Variant(), "Block"),
		}
	}

	return block.Block, nil
}

// Close terminates the connection and releases resources.
// Safe to call multiple times.
func (c *Client) Close() error {
	if c.closed || !c.connected {
		c.closed = true

		return nil
	}

	c.closed = true
	c.connected = false
	c.log.Info("Plugin disconnected")

	return c.engine.Close()
}

// ready reports whether operations may proceed.
func (c *Client) ready() error {
	if c.closed {
		return errors.ErrConnectionClosed
	}

	if !c.connected {
		return errors.ErrNotConnected
	}

	return nil
}
