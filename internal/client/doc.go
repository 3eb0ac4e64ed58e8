// Package client implements the plugin client over the correlation engine.
//
// The client resolves options into a transport, connects it, performs the
// Ready handshake, and exposes the application-facing operations: sending
// events, issuing correlated requests, and receiving host traffic. It is
// thin glue; the protocol-state and ordering logic lives in the protocol
// package.
package client
