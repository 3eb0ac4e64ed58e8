// Package bamboosdk provides a Go SDK for writing Bamboo server plugins.
//
// Plugins are separate processes that attach to the game host over a unix
// domain socket and exchange NUL-delimited JSON messages: unsolicited
// events in both directions, plus requests the host answers with a
// correlated reply.
//
// # Basic Usage
//
// Connect, announce readiness, and run an event loop:
//
//	ctx := context.Background()
//
//	plugin, err := bamboosdk.Connect(ctx,
//	    bamboosdk.WithPluginName("chat-echo"),
//	    bamboosdk.WithLogger(slog.Default()),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer plugin.Close()
//
//	for {
//	    msg, err := plugin.RecvNext(ctx)
//	    if errors.Is(err, bamboosdk.ErrConnectionClosed) {
//	        return
//	    }
//	    switch m := msg.(type) {
//	    case *bamboosdk.ChatEvent:
//	        _ = plugin.SendChat(ctx, "echo: "+m.Text)
//	    case *bamboosdk.BlockPlaceEvent:
//	        block, _ := plugin.GetBlock(ctx, m.Pos)
//	        _ = plugin.SendChat(ctx, "placed on "+block)
//	    }
//	}
//
// # Requests and Replies
//
// GetBlock is a convenience wrapper over the request/reply protocol. The
// underlying operations are available directly:
//
//	id, err := plugin.SendRequest(ctx, &bamboosdk.GetBlockRequest{Pos: pos})
//	if err != nil {
//	    return err
//	}
//	reply, err := plugin.AwaitReply(ctx, id)
//
// Events arriving while a reply is awaited are not lost: they are buffered
// in arrival order and delivered by later RecvNext calls.
//
// # Lifecycle helper
//
// WithConn manages connect/close around a callback:
//
//	err := bamboosdk.WithConn(ctx, func(p bamboosdk.Client) error {
//	    return p.SendChat(ctx, "hello from Go")
//	}, bamboosdk.WithPluginName("greeter"))
//
// # Error Handling
//
// The SDK provides typed errors for different failure scenarios:
//
//	block, err := plugin.GetBlock(ctx, pos)
//	if err != nil {
//	    if errors.Is(err, bamboosdk.ErrConnectionClosed) {
//	        return // host went away
//	    }
//	    if decodeErr, ok := errors.AsType[*bamboosdk.DecodeError](err); ok {
//	        log.Printf("bad reply from host: %v", decodeErr)
//	    }
//	}
//
// # Requirements
//
// The host creates the plugin socket (server.sock by default) in the
// plugin's directory before starting the plugin process.
package bamboosdk
