package message

import (
	"encoding/json"
	"fmt"

	"github.com/bamboomc/plugin-sdk-go/internal/errors"
)

// envelope carries only the two discriminants of a frame. Pointers
// distinguish a missing discriminant from an empty one.
type envelope struct {
	Kind    *string `json:"kind"`
	Variant *string `json:"type"`
}

// decoders is the closed dispatch table mapping kind and variant to a
// constructor. New variants are added here and nowhere else.
var decoders = map[Kind]map[string]func() Message{
	KindEvent: {
		"Ready":       func() Message { return &ReadyEvent{} },
		"Register":    func() Message { return &RegisterEvent{} },
		"SendChat":    func() Message { return &SendChatEvent{} },
		"Chat":        func() Message { return &ChatEvent{} },
		"PlayerJoin":  func() Message { return &PlayerJoinEvent{} },
		"PlayerLeave": func() Message { return &PlayerLeaveEvent{} },
		"Tick":        func() Message { return &TickEvent{} },
		"BlockPlace":  func() Message { return &BlockPlaceEvent{} },
	},
	KindRequest: {
		"GetBlock": func() Message { return &GetBlockRequest{} },
	},
	KindReply: {
		"Block": func() Message { return &BlockReply{} },
	},
}

// Decode parses a frame payload into a typed Message.
//
// Unknown kinds or variants return *errors.UnrecognizedMessageError, which
// callers should log and skip. Malformed payloads and missing discriminants
// return *errors.DecodeError.
func Decode(frame []byte) (Message, error) {
	var env envelope
	if err := json.Unmarshal(frame, &env); err != nil {
		return nil, &errors.DecodeError{RawData: string(frame), Err: err}
	}

	if env.Kind == nil {
		return nil, &errors.DecodeError{
			RawData: string(frame),
			Err:     fmt.Errorf("missing 'kind' discriminant"),
		}
	}

	if env.Variant == nil {
		return nil, &errors.DecodeError{
			RawData: string(frame),
			Err:     fmt.Errorf("missing 'type' discriminant"),
		}
	}

	variants, ok := decoders[Kind(*env.Kind)]
	if !ok {
		return nil, &errors.UnrecognizedMessageError{Kind: *env.Kind, Variant: *env.Variant}
	}

	construct, ok := variants[*env.Variant]
	if !ok {
		return nil, &errors.UnrecognizedMessageError{Kind: *env.Kind, Variant: *env.Variant}
	}

	msg := construct()
	if err := json.Unmarshal(frame, msg); err != nil {
		return nil, &errors.DecodeError{RawData: string(frame), Err: err}
	}

	return msg, nil
}

// Encode serializes a typed Message into a frame payload.
//
// The variant fields are flattened into the same JSON object as the "kind"
// and "type" discriminants, matching the host's wire format. Encode and
// Decode round-trip: Decode(Encode(m)) yields a message equal to m.
func Encode(m Message) ([]byte, error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal %s fields: %w", m.Variant(), err)
	}

	fields := make(map[string]any)
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("flatten %s fields: %w", m.Variant(), err)
	}

	fields["kind"] = string(m.Kind())
	fields["type"] = m.Variant()

	payload, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", m.Variant(), err)
	}

	return payload, nil
}
