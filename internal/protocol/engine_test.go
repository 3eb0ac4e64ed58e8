package protocol

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/bamboomc/plugin-sdk-go/internal/errors"
	"github.com/bamboomc/plugin-sdk-go/internal/message"
	"github.com/bamboomc/plugin-sdk-go/internal/wire"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockTransport scripts the host side of the byte stream: reads drain the
// pre-loaded inbound buffer and hit EOF when it runs dry, writes accumulate
// for inspection.
type mockTransport struct {
	in     bytes.Buffer
	out    bytes.Buffer
	closed bool
}

func (t *mockTransport) Connect(_ context.Context) error { return nil }

func (t *mockTransport) Read(p []byte) (int, error) { return t.in.Read(p) }

func (t *mockTransport) Write(p []byte) (int, error) { return t.out.Write(p) }

func (t *mockTransport) Close() error {
	t.closed = true

	return nil
}

// feed appends an encoded, framed message to the inbound script.
func (t *mockTransport) feed(tb testing.TB, msg message.Message) {
	tb.Helper()

	payload, err := message.Encode(msg)
	require.NoError(tb, err)

	framed, err := wire.AppendFrame(nil, payload)
	require.NoError(tb, err)

	t.in.Write(framed)
}

// feedRaw appends arbitrary bytes to the inbound script.
func (t *mockTransport) feedRaw(raw []byte) {
	t.in.Write(raw)
}

// sentFrames decodes everything the engine wrote to the host.
func (t *mockTransport) sentFrames(tb testing.TB) []message.Message {
	tb.Helper()

	var msgs []message.Message

	reader := wire.NewReader(bytes.NewReader(t.out.Bytes()))

	for {
		frame, err := reader.ReadFrame()
		if err == io.EOF {
			return msgs
		}

		require.NoError(tb, err)

		msg, err := message.Decode(frame)
		require.NoError(tb, err)

		msgs = append(msgs, msg)
	}
}

func newRunningEngine(t *testing.T, transport *mockTransport) *Engine {
	t.Helper()

	engine := NewEngine(testLogger(), transport)
	require.NoError(t, engine.Handshake(context.Background()))

	return engine
}

func TestEngine_Handshake(t *testing.T) {
	transport := &mockTransport{}
	engine := NewEngine(testLogger(), transport)

	require.NoError(t, engine.Handshake(context.Background()))

	sent := transport.sentFrames(t)
	require.Len(t, sent, 1)
	require.Equal(t, &message.ReadyEvent{}, sent[0])

	require.ErrorIs(t, engine.Handshake(context.Background()), errors.ErrAlreadyConnected)
}

func TestEngine_SendEvent_OneFramePerCall(t *testing.T) {
	transport := &mockTransport{}
	engine := newRunningEngine(t, transport)

	ctx := context.Background()

	require.NoError(t, engine.SendEvent(ctx, &message.SendChatEvent{Text: "one"}))
	require.NoError(t, engine.SendEvent(ctx, &message.SendChatEvent{Text: "two"}))

	sent := transport.sentFrames(t)
	require.Len(t, sent, 3) // Ready + two chats
	require.Equal(t, &message.SendChatEvent{Text: "one"}, sent[1])
	require.Equal(t, &message.SendChatEvent{Text: "two"}, sent[2])

	// Message boundaries must be intact on the raw stream: one sentinel
	// per frame, frame never split across writes.
	require.Equal(t, 3, bytes.Count(transport.out.Bytes(), []byte{wire.Sentinel}))
}

func TestEngine_SendRequest_MonotonicIDs(t *testing.T) {
	transport := &mockTransport{}
	engine := newRunningEngine(t, transport)

	ctx := context.Background()

	first, err := engine.SendRequest(ctx, &message.GetBlockRequest{Pos: message.Pos{X: 1}})
	require.NoError(t, err)
	require.Equal(t, uint32(0), first)

	second, err := engine.SendRequest(ctx, &message.GetBlockRequest{Pos: message.Pos{X: 2}})
	require.NoError(t, err)
	require.Equal(t, uint32(1), second)

	sent := transport.sentFrames(t)
	require.Len(t, sent, 3)

	req, ok := sent[1].(*message.GetBlockRequest)
	require.True(t, ok)
	require.Equal(t, uint32(0), req.CorrelationID())

	req, ok = sent[2].(*message.GetBlockRequest)
	require.True(t, ok)
	require.Equal(t, uint32(1), req.CorrelationID())
}

func TestEngine_AwaitReply_BuffersInterleavedTraffic(t *testing.T) {
	// The host answers a request only after pushing unrelated traffic,
	// including a reply for a different identifier. AwaitReply must return
	// the matching reply and preserve everything else, FIFO, for RecvNext.
	transport := &mockTransport{}
	engine := newRunningEngine(t, transport)

	ctx := context.Background()

	id, err := engine.SendRequest(ctx, &message.GetBlockRequest{Pos: message.Pos{Y: 60}})
	require.NoError(t, err)

	stale := &message.BlockReply{ReplyID: id + 3, Block: "dirt"}
	placed := &message.BlockPlaceEvent{Pos: message.Pos{X: 1, Y: 2, Z: 3}}

	transport.feed(t, &message.ChatEvent{Text: "<someone> hi"})
	transport.feed(t, stale)
	transport.feed(t, placed)
	transport.feed(t, &message.BlockReply{ReplyID: id, Pos: message.Pos{Y: 60}, Block: "stone"})

	reply, err := engine.AwaitReply(ctx, id)
	require.NoError(t, err)
	require.Equal(t, id, reply.CorrelationID())

	block, ok := reply.(*message.BlockReply)
	require.True(t, ok)
	require.Equal(t, "stone", block.Block)

	// Replay buffer drains in original arrival order.
	got1, err := engine.RecvNext(ctx)
	require.NoError(t, err)
	require.Equal(t, &message.ChatEvent{Text: "<someone> hi"}, got1)

	got2, err := engine.RecvNext(ctx)
	require.NoError(t, err)
	require.Equal(t, stale, got2)

	got3, err := engine.RecvNext(ctx)
	require.NoError(t, err)
	require.Equal(t, placed, got3)
}

func TestEngine_AwaitReply_SkipsUnrecognized(t *testing.T) {
	transport := &mockTransport{}
	engine := newRunningEngine(t, transport)

	ctx := context.Background()

	id, err := engine.SendRequest(ctx, &message.GetBlockRequest{})
	require.NoError(t, err)

	transport.feedRaw([]byte("{\"kind\":\"Event\",\"type\":\"SolarEclipse\"}\x00"))
	transport.feed(t, &message.BlockReply{ReplyID: id, Block: "stone"})

	reply, err := engine.AwaitReply(ctx, id)
	require.NoError(t, err)
	require.Equal(t, id, reply.CorrelationID())
}

func TestEngine_AwaitReply_DecodeErrorIsRecoverable(t *testing.T) {
	transport := &mockTransport{}
	engine := newRunningEngine(t, transport)

	ctx := context.Background()

	id, err := engine.SendRequest(ctx, &message.GetBlockRequest{})
	require.NoError(t, err)

	transport.feedRaw([]byte("{\"type\":\"Ready\"}\x00")) // missing kind
	transport.feed(t, &message.BlockReply{ReplyID: id, Block: "stone"})

	_, err = engine.AwaitReply(ctx, id)

	var decodeErr *errors.DecodeError

	require.ErrorAs(t, err, &decodeErr)

	// The connection stays usable; waiting again finds the reply.
	reply, err := engine.AwaitReply(ctx, id)
	require.NoError(t, err)
	require.Equal(t, id, reply.CorrelationID())
}

func TestEngine_TruncatedStreamClosesConnection(t *testing.T) {
	transport := &mockTransport{}
	engine := newRunningEngine(t, transport)

	ctx := context.Background()

	transport.feedRaw([]byte(`{"kind":"Event","ty`)) // no sentinel, then EOF

	_, err := engine.RecvNext(ctx)

	var truncated *errors.TruncatedFrameError

	require.ErrorAs(t, err, &truncated)
	require.True(t, transport.closed)

	_, err = engine.RecvNext(ctx)
	require.ErrorIs(t, err, errors.ErrConnectionClosed)
}

func TestEngine_ClosedConnectionGuards(t *testing.T) {
	transport := &mockTransport{}
	engine := newRunningEngine(t, transport)

	ctx := context.Background()

	// Empty inbound script: first read sees a clean end-of-stream.
	_, err := engine.RecvNext(ctx)
	require.ErrorIs(t, err, errors.ErrConnectionClosed)

	// Every operation now fails fast, without blocking.
	require.ErrorIs(t, engine.SendEvent(ctx, &message.TickEvent{}), errors.ErrConnectionClosed)

	_, err = engine.SendRequest(ctx, &message.GetBlockRequest{})
	require.ErrorIs(t, err, errors.ErrConnectionClosed)

	_, err = engine.AwaitReply(ctx, 0)
	require.ErrorIs(t, err, errors.ErrConnectionClosed)

	require.ErrorIs(t, engine.Handshake(ctx), errors.ErrConnectionClosed)
	require.NoError(t, engine.Close())
}

func TestEngine_Close_Idempotent(t *testing.T) {
	transport := &mockTransport{}
	engine := newRunningEngine(t, transport)

	require.NoError(t, engine.Close())
	require.NoError(t, engine.Close())
	require.True(t, transport.closed)
}

func TestEngine_AwaitReply_MatchesBufferedReply(t *testing.T) {
	transport := &mockTransport{}
	engine := newRunningEngine(t, transport)

	// A reply already sitting in the replay buffer (e.g. after a timed-out
	// wait) must be claimed without touching the transport.
	buffered := &message.BlockReply{ReplyID: 4, Block: "stone"}
	engine.replay = append(engine.replay,
		&message.TickEvent{},
		buffered,
		&message.PlayerJoinEvent{},
	)

	reply, err := engine.AwaitReply(context.Background(), 4)
	require.NoError(t, err)
	require.Equal(t, buffered, reply)

	// The surrounding entries keep their relative order.
	got, err := engine.RecvNext(context.Background())
	require.NoError(t, err)
	require.Equal(t, &message.TickEvent{}, got)

	got, err = engine.RecvNext(context.Background())
	require.NoError(t, err)
	require.Equal(t, &message.PlayerJoinEvent{}, got)
}

// pipeTransport adapts one end of a net.Pipe for live host simulations.
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

func TestEngine_LiveHostExchange(t *testing.T) {
	plugSide, hostSide := net.Pipe()

	engine := NewEngine(testLogger(), &pipeTransport{conn: plugSide})

	var group errgroup.Group

	group.Go(func() error {
		defer hostSide.Close()

		reader := wire.NewReader(hostSide)
		writer := wire.NewWriter(hostSide)

		// Expect Ready, then a GetBlock request; answer after an
		// interleaved chat event.
		for {
			frame, err := reader.ReadFrame()
			if err != nil {
				return err
			}

			msg, err := message.Decode(frame)
			if err != nil {
				return err
			}

			req, ok := msg.(*message.GetBlockRequest)
			if !ok {
				continue
			}

			chat, err := message.Encode(&message.ChatEvent{Text: "<host> checking"})
			if err != nil {
				return err
			}

			if err := writer.WriteFrame(chat); err != nil {
				return err
			}

			reply, err := message.Encode(&message.BlockReply{
				ReplyID: req.CorrelationID(),
				Pos:     req.Pos,
				Block:   "minecraft:stone",
			})
			if err != nil {
				return err
			}

			return writer.WriteFrame(reply)
		}
	})

	ctx := context.Background()

	require.NoError(t, engine.Handshake(ctx))

	id, err := engine.SendRequest(ctx, &message.GetBlockRequest{Pos: message.Pos{X: 0, Y: 60, Z: 0}})
	require.NoError(t, err)

	reply, err := engine.AwaitReply(ctx, id)
	require.NoError(t, err)

	block, ok := reply.(*message.BlockReply)
	require.True(t, ok)
	require.Equal(t, "minecraft:stone", block.Block)

	// The interleaved chat is still delivered afterwards.
	msg, err := engine.RecvNext(ctx)
	require.NoError(t, err)
	require.Equal(t, &message.ChatEvent{Text: "<host> checking"}, msg)

	require.NoError(t, group.Wait())
	require.NoError(t, engine.Close())
}

func TestEngine_AwaitReply_DeadlineTimeout(t *testing.T) {
	plugSide, hostSide := net.Pipe()

	defer hostSide.Close()

	engine := NewEngine(testLogger(), &pipeTransport{conn: plugSide})

	ctx := context.Background()

	var group errgroup.Group

	// Drain the plugin's writes so Handshake and SendRequest don't block
	// on the unbuffered pipe.
	group.Go(func() error {
		buf := make([]byte, 256)

		for {
			if _, err := hostSide.Read(buf); err != nil {
				return nil //nolint:nilerr // reader exits when the pipe closes
			}
		}
	})

	require.NoError(t, engine.Handshake(ctx))

	id, err := engine.SendRequest(ctx, &message.GetBlockRequest{})
	require.NoError(t, err)

	waitCtx, cancel := context.WithTimeout(ctx, 30*time.Millisecond)
	defer cancel()

	_, err = engine.AwaitReply(waitCtx, id)
	require.ErrorIs(t, err, errors.ErrReplyTimeout)

	// The wait can be retried: deliver the reply and ask again.
	group.Go(func() error {
		payload, err := message.Encode(&message.BlockReply{ReplyID: id, Block: "stone"})
		if err != nil {
			return err
		}

		return wire.NewWriter(hostSide).WriteFrame(payload)
	})

	reply, err := engine.AwaitReply(ctx, id)
	require.NoError(t, err)
	require.Equal(t, id, reply.CorrelationID())

	require.NoError(t, engine.Close())
	require.NoError(t, group.Wait())
}
