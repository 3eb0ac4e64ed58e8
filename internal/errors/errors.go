package errors

import (
	"errors"
	"fmt"
)

// PluginSDKError is the base interface for all SDK errors.
type PluginSDKError interface {
	error
	IsPluginSDKError() bool
}

// Compile-time verification that all error types implement PluginSDKError.
var (
	_ PluginSDKError = (*ConnectionError)(nil)
	_ PluginSDKError = (*TruncatedFrameError)(nil)
	_ PluginSDKError = (*DecodeError)(nil)
	_ PluginSDKError = (*UnrecognizedMessageError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrNotConnected indicates the client is not connected to the host.
	ErrNotConnected = errors.New("not connected")

	// ErrAlreadyConnected indicates the client is already connected.
	ErrAlreadyConnected = errors.New("already connected")

	// ErrConnectionClosed indicates an operation was attempted on a
	// terminated connection. Closed connections cannot be reopened;
	// create a new client with Connect().
	ErrConnectionClosed = errors.New("connection closed")

	// ErrReplyTimeout indicates AwaitReply gave up before the matching
	// reply arrived. The outstanding request and replay buffer are left
	// intact, so the caller may retry the wait.
	ErrReplyTimeout = errors.New("reply timeout")
)

// ConnectionError indicates failure to establish the host connection.
type ConnectionError struct {
	Addr string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to host at %s: %v", e.Addr, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// IsPluginSDKError implements PluginSDKError.
func (e *ConnectionError) IsPluginSDKError() bool { return true }

// TruncatedFrameError indicates the byte stream ended in the middle of a
// frame. This is fatal for the connection: the partial payload can never be
// completed, and silently discarding it would hide a protocol error.
type TruncatedFrameError struct {
	Partial []byte
}

func (e *TruncatedFrameError) Error() string {
	return fmt.Sprintf("stream ended mid-frame with %d unterminated bytes", len(e.Partial))
}

// IsPluginSDKError implements PluginSDKError.
func (e *TruncatedFrameError) IsPluginSDKError() bool { return true }

// DecodeError indicates a structurally malformed payload, or a reply that
// violates the protocol (wrong variant under the expected correlation ID).
// The connection remains usable after a DecodeError.
type DecodeError struct {
	RawData string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode message: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsPluginSDKError implements PluginSDKError.
func (e *DecodeError) IsPluginSDKError() bool { return true }

// UnrecognizedMessageError indicates a well-formed message whose kind or
// variant is not in the SDK's vocabulary. Callers should log and skip these
// rather than treating them as fatal, so newer hosts can introduce message
// types without breaking older plugins.
type UnrecognizedMessageError struct {
	Kind    string
	Variant string
}

func (e *UnrecognizedMessageError) Error() string {
	return fmt.Sprintf("unrecognized message kind %q variant %q", e.Kind, e.Variant)
}

// IsPluginSDKError implements PluginSDKError.
func (e *UnrecognizedMessageError) IsPluginSDKError() bool { return true }
