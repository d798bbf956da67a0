package provider

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/tranvictor/claimview/util/reader"
)

type Options struct {
	Host Host
	// FallbackURL is the configured endpoint used when nothing is injected.
	FallbackURL string
	// FallbackNodes is used when FallbackURL is empty, typically the nodes
	// of a named network. Reads race across all of them.
	FallbackNodes map[string]string
	Dial          Dialer
	Timeout       time.Duration
	Logger        *slog.Logger
}

// Resolver inspects the host once and remembers the outcome. Resolve only
// re-evaluates while it holds neither a provider nor an error.
type Resolver struct {
	opts Options

	mu       sync.Mutex
	provider Provider
	source   string
	err      string
}

func NewResolver(opts Options) *Resolver {
	if opts.Host == nil {
		opts.Host = NoHost{}
	}
	if opts.Dial == nil {
		opts.Dial = DialJSONRPC(opts.Timeout)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Resolver{opts: opts}
}

// Resolve returns the provider, or the user facing error message when none
// could be produced. Exactly one of the two is set.
func (r *Resolver) Resolve(ctx context.Context) (Provider, string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.provider != nil || r.err != "" {
		return r.provider, r.err
	}
	r.provider, r.source, r.err = r.resolve(ctx)
	return r.provider, r.err
}

// Source names where the provider came from: "injected", "fallback",
// "network" or "" when unresolved.
func (r *Resolver) Source() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.source
}

// Close closes the resolved provider when it holds a connection. The
// outcome stays cached: a closed resolver does not resolve again.
func (r *Resolver) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.provider.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (r *Resolver) resolve(ctx context.Context) (Provider, string, string) {
	log := r.opts.Logger

	injected, ok, err := r.opts.Host.Injected(ctx)
	if err != nil {
		log.ErrorContext(ctx, "injected provider setup failed", "error", err)
		return nil, "", SetupFailedMessage
	}
	if ok {
		log.DebugContext(ctx, "using injected provider")
		return injected, "injected", ""
	}

	if r.opts.FallbackURL != "" {
		p, err := r.opts.Dial(ctx, r.opts.FallbackURL)
		if err != nil {
			log.ErrorContext(ctx, "fallback provider setup failed", "url", r.opts.FallbackURL, "error", err)
			return nil, "", SetupFailedMessage
		}
		log.DebugContext(ctx, "using fallback provider", "url", r.opts.FallbackURL)
		return p, "fallback", ""
	}

	if len(r.opts.FallbackNodes) > 0 {
		for name, url := range r.opts.FallbackNodes {
			if err := ValidateEndpoint(url); err != nil {
				log.ErrorContext(ctx, "network node rejected", "node", name, "error", err)
				return nil, "", SetupFailedMessage
			}
		}
		log.DebugContext(ctx, "using network nodes", "count", len(r.opts.FallbackNodes))
		return reader.NewEthReaderGeneric(r.opts.FallbackNodes, r.opts.Timeout), "network", ""
	}

	log.ErrorContext(ctx, NoProviderMessage)
	return nil, "", NoProviderMessage
}
