package bamboosdk

import (
	"log/slog"
	"time"

	"github.com/bamboomc/plugin-sdk-go/internal/config"
)

// Option configures a plugin connection.
type Option func(*config.Options) error

// WithLogger sets the slog logger for debug output.
// If not set, logging is disabled (silent operation).
func WithLogger(log *slog.Logger) Option {
	return func(o *config.Options) error {
		o.Logger = log

		return nil
	}
}

// WithPluginName sets the name reported in log output and attached to every
// log line of the connection.
func WithPluginName(name string) Option {
	return func(o *config.Options) error {
		o.PluginName = name

		return nil
	}
}

// WithSocketPath overrides the path of the host's unix plugin socket.
// Defaults to "server.sock" in the plugin's working directory.
func WithSocketPath(path string) Option {
	return func(o *config.Options) error {
		o.SocketPath = path

		return nil
	}
}

// WithDialTimeout bounds how long Connect waits for the host socket.
// Zero means no limit beyond the caller's context.
func WithDialTimeout(d time.Duration) Option {
	return func(o *config.Options) error {
		o.DialTimeout = d

		return nil
	}
}

// WithTransport injects a custom transport, replacing the default unix
// socket. Useful for testing and for remote hosts; see NewWebSocketTransport.
func WithTransport(t Transport) Option {
	return func(o *config.Options) error {
		o.Transport = t

		return nil
	}
}

// WithManifest loads connection settings from a plugin.toml manifest.
// Options applied before WithManifest take precedence over manifest values.
func WithManifest(path string) Option {
	return func(o *config.Options) error {
		m, err := config.LoadManifest(path)
		if err != nil {
			return err
		}

		m.Apply(o)

		return nil
	}
}
