// Package wire implements the framing layer of the Bamboo plugin protocol.
//
// Frames are JSON payloads terminated by a single NUL byte. The payload
// encoding is textual and never contains NUL, so the sentinel is an
// unambiguous frame boundary regardless of how the transport chunks the
// byte stream.
package wire
