package bamboosdk

import (
	"github.com/bamboomc/plugin-sdk-go/internal/errors"
)

// PluginSDKError is the base interface for all SDK errors.
// Use errors.As or type assertion to check for specific error types.
type PluginSDKError = errors.PluginSDKError

// Sentinel errors for commonly checked conditions. Match with errors.Is.
var (
	// ErrNotConnected indicates the client is not connected to the host.
	ErrNotConnected = errors.ErrNotConnected

	// ErrAlreadyConnected indicates the client is already connected.
	ErrAlreadyConnected = errors.ErrAlreadyConnected

	// ErrConnectionClosed indicates an operation was attempted on a
	// terminated connection. Closed connections cannot be reopened;
	// create a new client with Connect().
	ErrConnectionClosed = errors.ErrConnectionClosed

	// ErrReplyTimeout indicates AwaitReply gave up before the matching
	// reply arrived. The wait may be retried with the same identifier.
	ErrReplyTimeout = errors.ErrReplyTimeout
)

// Typed errors. Match with errors.As.
type (
	// ConnectionError indicates failure to establish the host connection.
	ConnectionError = errors.ConnectionError

	// TruncatedFrameError indicates the byte stream ended in the middle
	// of a frame. The connection is closed when this is reported.
	TruncatedFrameError = errors.TruncatedFrameError

	// DecodeError indicates a structurally malformed payload, or a reply
	// that violates the protocol. The connection remains usable.
	DecodeError = errors.DecodeError

	// UnrecognizedMessageError indicates a well-formed message whose kind
	// or variant is not in the SDK's vocabulary. The SDK logs and skips
	// these internally; the type is exported for callers decoding raw
	// payloads themselves.
	UnrecognizedMessageError = errors.UnrecognizedMessageError
)
