package provider

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/rpc"

	"github.com/tranvictor/claimview/util/reader"
)

// Host is the environment a page load runs in. Injected reports the
// connection the host attached, if any; ok is false when there is none.
type Host interface {
	Injected(ctx context.Context) (p Provider, ok bool, err error)
}

// NoHost never has an injected connection.
type NoHost struct{}

func (NoHost) Injected(context.Context) (Provider, bool, error) {
	return nil, false, nil
}

// IPCHost treats a locally attached node, reachable over its IPC socket,
// as the injected connection. A missing socket means nothing is injected.
type IPCHost struct {
	Path string
}

func (h IPCHost) Injected(ctx context.Context) (Provider, bool, error) {
	if h.Path == "" {
		return nil, false, nil
	}
	if _, err := os.Stat(h.Path); err != nil {
		return nil, false, nil
	}
	client, err := rpc.DialIPC(ctx, h.Path)
	if err != nil {
		return nil, false, fmt.Errorf("couldn't attach to %s: %w", h.Path, err)
	}
	return reader.NewOneNodeReaderFromClient("ipc", h.Path, client), true, nil
}

// RPCHost is a deployment supplied connection, used by the HTTP surface
// where the embedding site fronts its own node.
type RPCHost struct {
	URL     string
	Timeout time.Duration
}

func (h RPCHost) Injected(ctx context.Context) (Provider, bool, error) {
	if h.URL == "" {
		return nil, false, nil
	}
	p, err := DialJSONRPC(h.Timeout)(ctx, h.URL)
	if err != nil {
		return nil, false, err
	}
	return p, true, nil
}

// StaticHost injects a fixed provider. Tests and embedders that already hold
// a client use it.
type StaticHost struct {
	Provider Provider
}

func (h StaticHost) Injected(context.Context) (Provider, bool, error) {
	return h.Provider, h.Provider != nil, nil
}
