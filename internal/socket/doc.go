// Package socket provides byte-stream transports to the game host.
//
// The host exposes a unix domain socket in the plugin's directory; the
// unix transport dials it and is the default. A WebSocket transport carries
// the same framed byte stream as binary messages for plugins that do not
// share a filesystem with the host.
package socket
