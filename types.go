package bamboosdk

import (
	"github.com/bamboomc/plugin-sdk-go/internal/message"
)

// Kind is the message category discriminant, carried in the wire "kind"
// field.
type Kind = message.Kind

// Message kinds.
const (
	KindEvent   = message.KindEvent
	KindRequest = message.KindRequest
	KindReply   = message.KindReply
)

// Message represents any message exchanged with the host.
// Use type assertion or type switch to determine the concrete type.
type Message = message.Message

// Event is a Message that neither expects nor carries a reply.
type Event = message.Event

// Request is a client-initiated Message that expects exactly one Reply
// tagged with the same correlation identifier. Identifiers are assigned by
// the SDK when the request is sent; callers leave them zero.
type Request = message.Request

// Reply is a host-initiated Message answering exactly one prior Request.
type Reply = message.Reply

// Pos is a block position in the world.
type Pos = message.Pos

// Events sent by the plugin.
type (
	// ReadyEvent tells the host the plugin has finished initializing.
	// Connect sends it automatically; plugins rarely construct it.
	ReadyEvent = message.ReadyEvent

	// RegisterEvent subscribes the plugin to a class of host events.
	RegisterEvent = message.RegisterEvent

	// SendChatEvent asks the host to broadcast a chat message.
	SendChatEvent = message.SendChatEvent
)

// Events sent by the host.
type (
	// ChatEvent notifies the plugin of a chat message on the server.
	ChatEvent = message.ChatEvent

	// PlayerJoinEvent notifies the plugin that a player joined.
	PlayerJoinEvent = message.PlayerJoinEvent

	// PlayerLeaveEvent notifies the plugin that a player left.
	PlayerLeaveEvent = message.PlayerLeaveEvent

	// TickEvent notifies the plugin of a world tick.
	TickEvent = message.TickEvent

	// BlockPlaceEvent notifies the plugin that a block was placed.
	BlockPlaceEvent = message.BlockPlaceEvent
)

// Requests and replies.
type (
	// GetBlockRequest asks the host for the block at a position.
	GetBlockRequest = message.GetBlockRequest

	// BlockReply answers a GetBlockRequest with the block at the
	// requested position.
	BlockReply = message.BlockReply
)
