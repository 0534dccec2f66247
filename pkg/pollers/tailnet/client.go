package tailnet

import (
	"context"
	"sync"

	"tailscale.com/client/local"
	"tailscale.com/ipn/ipnstate"
)

// NewLocalClient creates a StatusClient backed by the real Tailscale local
// daemon. This is the production wiring; tests inject a mock StatusClient.
func NewLocalClient(socketPath string) StatusClient {
	return &localClientAdapter{socketPath: socketPath}
}

// localClientAdapter lazily constructs the underlying local.Client so that
// merely registering the poller does not touch the socket.
type localClientAdapter struct {
	socketPath string
	once       sync.Once
	client     *local.Client
}

func (a *localClientAdapter) Status(ctx context.Context) (*ipnstate.Status, error) {
	a.once.Do(func() {
		a.client = &local.Client{}
		if a.socketPath != "" {
			a.client.Socket = a.socketPath
		}
	})
	return a.client.Status(ctx)
}
