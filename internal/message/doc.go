// Package message defines the typed vocabulary of the Bamboo plugin protocol.
//
// Every frame on the wire is a JSON object with two discriminants: "kind"
// selects the message category (Event, Request or Reply) and "type" selects
// the variant within that category. Variant fields are flattened into the
// same object, and Request/Reply messages carry a "reply_id" correlation
// identifier.
//
// Decoding is table-driven: unknown kinds or variants are reported as
// *errors.UnrecognizedMessageError so the SDK stays forward compatible with
// newer hosts, while structurally malformed payloads are *errors.DecodeError.
package message
