package protocol

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/bamboomc/plugin-sdk-go/internal/config"
	"github.com/bamboomc/plugin-sdk-go/internal/errors"
	"github.com/bamboomc/plugin-sdk-go/internal/message"
	"github.com/bamboomc/plugin-sdk-go/internal/wire"
)

// state tracks the per-connection lifecycle: Handshake until Ready is sent,
// Running for the lifetime of the session, Closed terminally.
type state int

const (
	stateHandshake state = iota
	stateRunning
	stateClosed
)

// Engine drives the plugin side of the host protocol.
//
// The Engine sends events and requests, and implements the blocking
// "wait for this specific reply while buffering everything else" receive
// protocol. Messages that arrive while waiting for a reply are appended to
// a FIFO replay buffer and delivered, in arrival order, by later RecvNext
// calls.
//
// At most one request is outstanding at a time: SendRequest and the
// following AwaitReply happen sequentially on the caller's goroutine.
type Engine struct {
	log       *slog.Logger
	transport config.Transport
	reader    *wire.Reader
	writer    *wire.Writer

	state  state
	nextID uint32

	// outstanding tracks sent requests awaiting their reply.
	outstanding map[uint32]struct{}

	// replay holds messages received while waiting for a specific reply.
	// Strictly FIFO: pop from the head, append to the tail.
	replay []message.Message
}

// NewEngine creates an engine on a connected transport.
//
// The logger receives debug, warn, and error messages during protocol
// operations, tagged with a unique conn_id so multiple connections can be
// told apart. Call Handshake before any other operation.
func NewEngine(log *slog.Logger, transport config.Transport) *Engine {
	return &Engine{
		log:         log.With("component", "protocol", "conn_id", ulid.Make().String()),
		transport:   transport,
		reader:      wire.NewReader(transport),
		writer:      wire.NewWriter(transport),
		outstanding: make(map[uint32]struct{}, 1),
	}
}

// Handshake announces the plugin to the host by sending the Ready event and
// moves the connection to its running state.
func (e *Engine) Handshake(ctx context.Context) error {
	if e.state == stateClosed {
		return errors.ErrConnectionClosed
	}

	if e.state != stateHandshake {
		return errors.ErrAlreadyConnected
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := e.send(&message.ReadyEvent{}); err != nil {
		return fmt.Errorf("handshake: %w", err)
	}

	e.state = stateRunning
	e.log.Info("Handshake complete")

	return nil
}

// SendEvent encodes and writes an event immediately.
//
// Each call produces exactly one frame on the wire, flushed before
// returning; events are never batched or merged.
func (e *Engine) SendEvent(ctx context.Context, ev message.Event) error {
	if e.state == stateClosed {
		return errors.ErrConnectionClosed
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	e.log.Debug("Sending event", "variant", ev.Variant())

	return e.send(ev)
}

// SendRequest allocates the next correlation identifier, sends the request
// tagged with it, and returns the identifier without waiting for the reply.
//
// Identifiers increase monotonically and are never reused while a request
// is outstanding, so a reply can always be attributed unambiguously.
func (e *Engine) SendRequest(ctx context.Context, req message.Request) (uint32, error) {
	if e.state == stateClosed {
		return 0, errors.ErrConnectionClosed
	}

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	id := e.nextID
	e.nextID++

	e.log.Debug("Sending request", "variant", req.Variant(), "reply_id", id)

	if err := e.send(req.WithCorrelationID(id)); err != nil {
		return 0, err
	}

	e.outstanding[id] = struct{}{}

	return id, nil
}

// AwaitReply blocks until the reply carrying the given correlation
// identifier arrives and returns it.
//
// Any other message read in the meantime (an event, a host request, or a
// reply for a different identifier) is appended to the replay buffer in
// arrival order for later RecvNext calls, so no message is ever dropped.
//
// If ctx carries a deadline and the transport supports read deadlines, an
// expired wait returns ErrReplyTimeout with the outstanding request and the
// replay buffer intact, so the wait can be retried.
func (e *Engine) AwaitReply(ctx context.Context, id uint32) (message.Reply, error) {
	if e.state == stateClosed {
		return nil, errors.ErrConnectionClosed
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	restore, err := e.applyDeadline(ctx)
	if err != nil {
		return nil, err
	}
	defer restore()

	// A matching reply may already sit in the replay buffer if a previous
	// wait for this identifier timed out after the reply arrived.
	for i, buffered := range e.replay {
		reply, ok := buffered.(message.Reply)
		if ok && reply.CorrelationID() == id {
			e.replay = append(e.replay[:i], e.replay[i+1:]...)
			e.settle(id)

			return reply, nil
		}
	}

	for {
		msg, err := e.readMessage()
		if err != nil {
			return nil, err
		}

		if reply, ok := msg.(message.Reply); ok && reply.CorrelationID() == id {
			e.settle(id)

			return reply, nil
		}

		e.log.Debug("Buffering message while awaiting reply",
			"variant", msg.Variant(), "awaited_id", id)

		e.replay = append(e.replay, msg)
	}
}

// RecvNext returns the next message for the application's main loop.
//
// The replay buffer is drained, oldest first, before any new frame is read
// from the transport: messages captured incidentally during a prior
// AwaitReply are delivered in their original arrival order ahead of fresh
// traffic.
func (e *Engine) RecvNext(ctx context.Context) (message.Message, error) {
	if e.state == stateClosed {
		return nil, errors.ErrConnectionClosed
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	restore, err := e.applyDeadline(ctx)
	if err != nil {
		return nil, err
	}
	defer restore()

	if len(e.replay) > 0 {
		msg := e.replay[0]
		e.replay = e.replay[1:]

		return msg, nil
	}

	return e.readMessage()
}

// Close terminates the connection. All later operations fail with
// ErrConnectionClosed, and outstanding requests will never complete.
// Safe to call multiple times.
func (e *Engine) Close() error {
	if e.state == stateClosed {
		return nil
	}

	e.state = stateClosed

	if len(e.outstanding) > 0 {
		e.log.Warn("Closing with outstanding requests", "count", len(e.outstanding))
	}

	clear(e.outstanding)
	e.log.Debug("Engine closed")

	return e.transport.Close()
}

// send encodes and writes one message as one frame.
func (e *Engine) send(m message.Message) error {
	payload, err := message.Encode(m)
	if err != nil {
		return err
	}

	if err := e.writer.WriteFrame(payload); err != nil {
		e.log.Error("Failed to write frame", "variant", m.Variant(), "error", err)

		return err
	}

	return nil
}

// settle removes a satisfied request from the outstanding set.
func (e *Engine) settle(id uint32) {
	delete(e.outstanding, id)
	e.log.Debug("Reply consumed", "reply_id", id)
}

// readMessage reads frames until one decodes to a known message.
//
// Unrecognized variants are logged and skipped so newer hosts do not break
// the plugin. Decode errors are returned but leave the connection usable;
// end-of-stream and truncation close the connection.
func (e *Engine) readMessage() (message.Message, error) {
	for {
		frame, err := e.reader.ReadFrame()
		if err != nil {
			return nil, e.readFailed(err)
		}

		msg, err := message.Decode(frame)
		if err != nil {
			var unrecognized *errors.UnrecognizedMessageError
			if stderrors.As(err, &unrecognized) {
				e.log.Warn("Skipping unrecognized message",
					"kind", unrecognized.Kind, "variant", unrecognized.Variant)

				continue
			}

			e.log.Debug("Failed to decode frame", "error", err)

			return nil, err
		}

		e.log.Debug("Received message", "kind", string(msg.Kind()), "variant", msg.Variant())

		return msg, nil
	}
}

// readFailed classifies a transport read error and updates the connection
// state accordingly.
func (e *Engine) readFailed(err error) error {
	if stderrors.Is(err, io.EOF) {
		e.log.Info("Host closed the connection")
		_ = e.Close()

		return errors.ErrConnectionClosed
	}

	var truncated *errors.TruncatedFrameError
	if stderrors.As(err, &truncated) {
		e.log.Error("Stream ended mid-frame", "pending_bytes", len(truncated.Partial))
		_ = e.Close()

		return truncated
	}

	// A timed-out read is recoverable: the decoder keeps any partial frame,
	// and the caller may wait again.
	var netErr net.Error
	if stderrors.As(err, &netErr) && netErr.Timeout() {
		e.log.Debug("Read deadline expired")

		return errors.ErrReplyTimeout
	}

	e.log.Error("Transport read failed", "error", err)
	_ = e.Close()

	return fmt.Errorf("transport read: %w", err)
}

// applyDeadline maps a context deadline onto the transport's read deadline,
// when the transport supports one. The returned func restores the
// transport to blocking reads.
func (e *Engine) applyDeadline(ctx context.Context) (func(), error) {
	deadline, ok := ctx.Deadline()
	if !ok {
		return func() {}, nil
	}

	dt, ok := e.transport.(config.DeadlineTransport)
	if !ok {
		e.log.Debug("Transport does not support read deadlines; waiting unbounded")

		return func() {}, nil
	}

	if err := dt.SetReadDeadline(deadline); err != nil {
		return nil, fmt.Errorf("set read deadline: %w", err)
	}

	return func() { _ = dt.SetReadDeadline(time.Time{}) }, nil
}
