package client

import (
	"context"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/bamboomc/plugin-sdk-go/internal/config"
	"github.com/bamboomc/plugin-sdk-go/internal/errors"
	"github.com/bamboomc/plugin-sdk-go/internal/message"
	"github.com/bamboomc/plugin-sdk-go/internal/wire"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// pipeTransport carries the protocol over one end of a net.Pipe so tests
// can play the host on the other end.
type pipeTransport struct {
	conn net.Conn
}

func (t *pipeTransport) Connect(_ context.Context) error { return nil }

func (t *pipeTransport) Read(p []byte) (int, error) { return t.conn.Read(p) }

func (t *pipeTransport) Write(p []byte) (int, error) { return t.conn.Write(p) }

func (t *pipeTransport) SetReadDeadline(deadline time.Time) error {
	return t.conn.SetReadDeadline(deadline)
}

func (t *pipeTransport) Close() error { return t.conn.Close() }

// fakeHost reads frames from its side of the pipe and dispatches them.
type fakeHost struct {
	conn   net.Conn
	reader *wire.Reader
	writer *wire.Writer
}

func newFakeHost(conn net.Conn) *fakeHost {
	return &fakeHost{
		conn:   conn,
		reader: wire.NewReader(conn),
		writer: wire.NewWriter(conn),
	}
}

func (h *fakeHost) read(t *testing.T) message.Message {
	t.Helper()

	frame, err := h.reader.ReadFrame()
	require.NoError(t, err)

	msg, err := message.Decode(frame)
	require.NoError(t, err)

	return msg
}

func (h *fakeHost) send(msg message.Message) error {
	payload, err := message.Encode(msg)
	if err != nil {
		return err
	}

	return h.writer.WriteFrame(payload)
}

func TestClient_ConnectSendsReady(t *testing.T) {
	plugSide, hostSide := net.Pipe()
	host := newFakeHost(hostSide)

	defer hostSide.Close()

	var group errgroup.Group

	c := New()

	group.Go(func() error {
		return c.Connect(context.Background(), &config.Options{
			Logger:    testLogger(),
			Transport: &pipeTransport{conn: plugSide},
		})
	})

	ready := host.read(t)
	require.Equal(t, &message.ReadyEvent{}, ready)
	require.NoError(t, group.Wait())
	require.NoError(t, c.Close())
}

func TestClient_GetBlock(t *testing.T) {
	plugSide, hostSide := net.Pipe()
	host := newFakeHost(hostSide)

	defer hostSide.Close()

	var group errgroup.Group

	// Host side: consume Ready, answer the first GetBlock with stone.
	group.Go(func() error {
		for {
			frame, err := host.reader.ReadFrame()
			if err != nil {
				return err
			}

			msg, err := message.Decode(frame)
			if err != nil {
				return err
			}

			if req, ok := msg.(*message.GetBlockRequest); ok {
				return host.send(&message.BlockReply{
					ReplyID: req.CorrelationID(),
					Pos:     req.Pos,
					Block:   "stone",
				})
			}
		}
	})

	c := New()
	ctx := context.Background()

	require.NoError(t, c.Connect(ctx, &config.Options{
		Logger:    testLogger(),
		Transport: &pipeTransport{conn: plugSide},
	}))

	block, err := c.GetBlock(ctx, message.Pos{X: 0, Y: 60, Z: 0})
	require.NoError(t, err)
	require.Equal(t, "stone", block)

	require.NoError(t, group.Wait())
	require.NoError(t, c.Close())
}

func TestClient_OperationsBeforeConnect(t *testing.T) {
	c := New()
	ctx := context.Background()

	require.ErrorIs(t, c.SendChat(ctx, "hi"), errors.ErrNotConnected)

	_, err := c.RecvNext(ctx)
	require.ErrorIs(t, err, errors.ErrNotConnected)

	_, err = c.GetBlock(ctx, message.Pos{})
	require.ErrorIs(t, err, errors.ErrNotConnected)
}

func TestClient_OperationsAfterClose(t *testing.T) {
	c := New()
	require.NoError(t, c.Close())

	ctx := context.Background()

	require.ErrorIs(t, c.SendChat(ctx, "hi"), errors.ErrConnectionClosed)
	require.ErrorIs(t, c.Connect(ctx, nil), errors.ErrConnectionClosed)
}

// stubEngine scripts engine behavior for white-box client tests.
type stubEngine struct {
	reply message.Reply
}

func (s *stubEngine) Handshake(_ context.Context) error { return nil }

func (s *stubEngine) SendEvent(_ context.Context, _ message.Event) error { return nil }

func (s *stubEngine) SendRequest(_ context.Context, _ message.Request) (uint32, error) {
	return 0, nil
}

func (s *stubEngine) AwaitReply(_ context.Context, _ uint32) (message.Reply, error) {
	return s.reply, nil
}

func (s *stubEngine) RecvNext(_ context.Context) (message.Message, error) { return nil, nil }

func (s *stubEngine) Close() error { return nil }

// wrongReply is a hypothetical future reply variant the host could send.
type wrongReply struct {
	id uint32
}

func (r *wrongReply) Kind() message.Kind { return message.KindReply }

func (r *wrongReply) Variant() string { return "Cancel" }

func (r *wrongReply) CorrelationID() uint32 { return r.id }

func TestClient_GetBlock_WrongVariantReply(t *testing.T) {
	// A reply carrying the expected correlation ID but the wrong variant
	// is a protocol violation, not a silent pass-through.
	c := &Client{
		log:       testLogger(),
		engine:    &stubEngine{reply: &wrongReply{id: 0}},
		connected: true,
	}

	_, err := c.GetBlock(context.Background(), message.Pos{})

	var decodeErr *errors.DecodeError

	require.ErrorAs(t, err, &decodeErr)
	require.ErrorContains(t, err, `got variant "Cancel"`)
}
