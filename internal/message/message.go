package message

// Kind is the message category discriminant, carried in the wire "kind" field.
type Kind string

const (
	// KindEvent marks unsolicited, fire-and-forget messages. No reply is
	// expected in either direction.
	KindEvent Kind = "Event"
	// KindRequest marks messages that expect exactly one Reply carrying the
	// same correlation identifier.
	KindRequest Kind = "Request"
	// KindReply marks messages answering exactly one prior Request.
	KindReply Kind = "Reply"
)

// Message represents any message exchanged with the host.
// Use type assertion or type switch to determine the concrete type.
type Message interface {
	Kind() Kind
	Variant() string
}

// Event is a Message that neither expects nor carries a reply.
type Event interface {
	Message
	isEvent()
}

// Request is a client-initiated Message that expects exactly one Reply
// tagged with the same correlation identifier.
type Request interface {
	Message
	CorrelationID() uint32
	// WithCorrelationID returns a copy of the request tagged with id.
	// Correlation identifiers are assigned by the engine, never by callers.
	WithCorrelationID(id uint32) Request
}

// Reply is a host-initiated Message answering exactly one prior Request.
type Reply interface {
	Message
	CorrelationID() uint32
}

// Compile-time verification that all message types implement their interfaces.
var (
	_ Event   = (*ReadyEvent)(nil)
	_ Event   = (*RegisterEvent)(nil)
	_ Event   = (*SendChatEvent)(nil)
	_ Event   = (*ChatEvent)(nil)
	_ Event   = (*PlayerJoinEvent)(nil)
	_ Event   = (*PlayerLeaveEvent)(nil)
	_ Event   = (*TickEvent)(nil)
	_ Event   = (*BlockPlaceEvent)(nil)
	_ Request = (*GetBlockRequest)(nil)
	_ Reply   = (*BlockReply)(nil)
)

// Pos is a block position in the world.
type Pos struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// ReadyEvent tells the host the plugin has finished initializing. It is
// sent once, as the first message of every connection.
type ReadyEvent struct{}

// Kind implements the Message interface.
func (e *ReadyEvent) Kind() Kind { return KindEvent }

// Variant implements the Message interface.
func (e *ReadyEvent) Variant() string { return "Ready" }

func (e *ReadyEvent) isEvent() {}

// RegisterEvent subscribes the plugin to a class of host events.
type RegisterEvent struct {
	Type string `json:"ty"`
}

// Kind implements the Message interface.
func (e *RegisterEvent) Kind() Kind { return KindEvent }

// Variant implements the Message interface.
func (e *RegisterEvent) Variant() string { return "Register" }

func (e *RegisterEvent) isEvent() {}

// SendChatEvent asks the host to broadcast a chat message.
type SendChatEvent struct {
	Text string `json:"text"`
}

// Kind implements the Message interface.
func (e *SendChatEvent) Kind() Kind { return KindEvent }

// Variant implements the Message interface.
func (e *SendChatEvent) Variant() string { return "SendChat" }

func (e *SendChatEvent) isEvent() {}

// ChatEvent notifies the plugin of a chat message on the server.
type ChatEvent struct {
	Text string `json:"text"`
}

// Kind implements the Message interface.
func (e *ChatEvent) Kind() Kind { return KindEvent }

// Variant implements the Message interface.
func (e *ChatEvent) Variant() string { return "Chat" }

func (e *ChatEvent) isEvent() {}

// PlayerJoinEvent notifies the plugin that a player joined.
type PlayerJoinEvent struct{}

// Kind implements the Message interface.
func (e *PlayerJoinEvent) Kind() Kind { return KindEvent }

// Variant implements the Message interface.
func (e *PlayerJoinEvent) Variant() string { return "PlayerJoin" }

func (e *PlayerJoinEvent) isEvent() {}

// PlayerLeaveEvent notifies the plugin that a player left.
type PlayerLeaveEvent struct{}

// Kind implements the Message interface.
func (e *PlayerLeaveEvent) Kind() Kind { return KindEvent }

// Variant implements the Message interface.
func (e *PlayerLeaveEvent) Variant() string { return "PlayerLeave" }

func (e *PlayerLeaveEvent) isEvent() {}

// TickEvent notifies the plugin of a world tick.
type TickEvent struct{}

// Kind implements the Message interface.
func (e *TickEvent) Kind() Kind { return KindEvent }

// Variant implements the Message interface.
func (e *TickEvent) Variant() string { return "Tick" }

func (e *TickEvent) isEvent() {}

// BlockPlaceEvent notifies the plugin that a block was placed.
type BlockPlaceEvent struct {
	Pos Pos `json:"pos"`
}

// Kind implements the Message interface.
func (e *BlockPlaceEvent) Kind() Kind { return KindEvent }

// Variant implements the Message interface.
func (e *BlockPlaceEvent) Variant() string { return "BlockPlace" }

func (e *BlockPlaceEvent) isEvent() {}

// GetBlockRequest asks the host for the block at a position.
// The matching reply is a BlockReply.
//
//nolint:tagliatelle // the host protocol uses snake_case
type GetBlockRequest struct {
	ReplyID uint32 `json:"reply_id"`
	Pos     Pos    `json:"pos"`
}

// Kind implements the Message interface.
func (r *GetBlockRequest) Kind() Kind { return KindRequest }

// Variant implements the Message interface.
func (r *GetBlockRequest) Variant() string { return "GetBlock" }

// CorrelationID implements the Request interface.
func (r *GetBlockRequest) CorrelationID() uint32 { return r.ReplyID }

// WithCorrelationID implements the Request interface.
func (r *GetBlockRequest) WithCorrelationID(id uint32) Request {
	tagged := *r
	tagged.ReplyID = id

	return &tagged
}

// BlockReply answers a GetBlockRequest with the block at the requested
// position.
//
//nolint:tagliatelle // the host protocol uses snake_case
type BlockReply struct {
	ReplyID uint32 `json:"reply_id"`
	Pos     Pos    `json:"pos"`
	Block   string `json:"block"`
}

// Kind implements the Message interface.
func (r *BlockReply) Kind() Kind { return KindReply }

// Variant implements the Message interface.
func (r *BlockReply) Variant() string { return "Block" }

// CorrelationID implements the Reply interface.
func (r *BlockReply) CorrelationID() uint32 { return r.ReplyID }
