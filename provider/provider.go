// Package provider decides which Ethereum node a page load talks to: the
// connection injected by the host environment, a configured fallback
// endpoint, or none at all.
package provider

import (
	"context"
	"fmt"
	"math/big"
	"net/url"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/tranvictor/claimview/util/reader"
)

const (
	NoProviderMessage    = "No ethereum provider available."
	SetupFailedMessage   = "Error setting up provider"
	defaultFallbackLabel = "fallback"
)

// Provider is the read-only node surface the claim resolver needs.
// *ethclient.Client, *reader.OneNodeReader and *reader.EthReader all
// satisfy it.
type Provider interface {
	ChainID(ctx context.Context) (*big.Int, error)
	FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error)
}

// BlockReader is implemented by providers that can report the chain head.
type BlockReader interface {
	CurrentBlock(ctx context.Context) (uint64, error)
}

// Dialer builds a Provider for a JSON-RPC endpoint.
type Dialer func(ctx context.Context, rawURL string) (Provider, error)

// DialJSONRPC returns a lazily connecting reader for rawURL. Only the URL
// shape is checked here; connection errors surface on the first call.
func DialJSONRPC(timeout time.Duration) Dialer {
	return func(ctx context.Context, rawURL string) (Provider, error) {
		if err := ValidateEndpoint(rawURL); err != nil {
			return nil, err
		}
		return reader.NewOneNodeReader(endpointLabel(rawURL), rawURL, timeout), nil
	}
}

// ValidateEndpoint accepts http(s) and ws(s) URLs.
func ValidateEndpoint(rawURL string) error {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return fmt.Errorf("invalid endpoint %q: %w", rawURL, err)
	}
	switch u.Scheme {
	case "http", "https", "ws", "wss":
	default:
		return fmt.Errorf("invalid endpoint %q: unsupported scheme %q", rawURL, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid endpoint %q: missing host", rawURL)
	}
	return nil
}

func endpointLabel(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return defaultFallbackLabel
	}
	return u.Host
}
