package bamboosdk

import (
	"context"

	"github.com/bamboomc/plugin-sdk-go/internal/client"
	"github.com/bamboomc/plugin-sdk-go/internal/config"
)

// clientWrapper adapts the internal client to the public Client interface.
type clientWrapper struct {
	inner *client.Client
}

// Compile-time verification that clientWrapper implements Client.
var _ Client = (*clientWrapper)(nil)

func newClientImpl(ctx context.Context, opts []Option) (Client, error) {
	resolved := &config.Options{}
	for _, opt := range opts {
		if err := opt(resolved); err != nil {
			return nil, err
		}
	}

	inner := client.New()
	if err := inner.Connect(ctx, resolved); err != nil {
		return nil, err
	}

	return &clientWrapper{inner: inner}, nil
}

func (w *clientWrapper) SendEvent(ctx context.Context, ev Event) error {
	return w.inner.SendEvent(ctx, ev)
}

func (w *clientWrapper) SendRequest(ctx context.Context, req Request) (uint32, error) {
	return w.inner.SendRequest(ctx, req)
}

func (w *clientWrapper) AwaitReply(ctx context.Context, id uint32) (Reply, error) {
	return w.inner.AwaitReply(ctx, id)
}

func (w *clientWrapper) RecvNext(ctx context.Context) (Message, error) {
	return w.inner.RecvNext(ctx)
}

func (w *clientWrapper) SendChat(ctx context.Context, text string) error {
	return w.inner.SendChat(ctx, text)
}

func (w *clientWrapper) Register(ctx context.Context, eventType string) error {
	return w.inner.Register(ctx, eventType)
}

func (w *clientWrapper) GetBlock(ctx context.Context, pos Pos) (string, error) {
	return w.inner.GetBlock(ctx, pos)
}

func (w *clientWrapper) Close() error {
	return w.inner.Close()
}
