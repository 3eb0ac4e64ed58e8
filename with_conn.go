package bamboosdk

import "context"

// WithConn connects to the host, runs fn with the connected client, and
// closes the connection when fn returns. The connection is closed even if
// fn returns an error or panics.
//
// Example:
//
//	err := bamboosdk.WithConn(ctx, func(p bamboosdk.Client) error {
//	    return p.SendChat(ctx, "hello")
//	}, bamboosdk.WithPluginName("greeter"))
func WithConn(ctx context.Context, fn func(Client) error, opts ...Option) error {
	plugin, err := Connect(ctx, opts...)
	if err != nil {
		return err
	}

	defer plugin.Close()

	return fn(plugin)
}
