package config

import (
	"log/slog"
	"time"
)

// DefaultSocketPath is where the host places the plugin socket, relative to
// the plugin's working directory.
const DefaultSocketPath = "server.sock"

// Options configures a plugin connection.
type Options struct {
	// Logger is the slog logger for debug output.
	// If nil, logging is disabled (silent operation).
	Logger *slog.Logger

	// PluginName is the name reported in log output.
	PluginName string

	// SocketPath is the path of the host's unix plugin socket.
	// Defaults to DefaultSocketPath.
	SocketPath string

	// DialTimeout bounds how long Connect waits for the host socket.
	// Zero means no limit beyond the caller's context.
	DialTimeout time.Duration

	// Transport overrides the default unix socket transport.
	// When set, SocketPath and DialTimeout are ignored.
	Transport Transport
}
