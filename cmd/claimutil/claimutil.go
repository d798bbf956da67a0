// Package claimutil turns the loaded config into the pieces a command needs
// to open a claim session.
package claimutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/ethereum/go-ethereum/accounts/abi"

	"github.com/tranvictor/claimview/cidref"
	"github.com/tranvictor/claimview/claim"
	"github.com/tranvictor/claimview/config"
	"github.com/tranvictor/claimview/networks"
	"github.com/tranvictor/claimview/provider"
	"github.com/tranvictor/claimview/web"
)

// ProviderOptions builds the resolver options for host. A configured
// fallback URL wins over the nodes of the configured network; the
// network's node env var wins over its default nodes.
func ProviderOptions(host provider.Host, logger *slog.Logger) (provider.Options, error) {
	opts := provider.Options{
		Host:        host,
		FallbackURL: config.FallbackProvider,
		Timeout:     config.Timeout,
		Logger:      logger,
	}
	if opts.FallbackURL != "" || config.Network == "" {
		return opts, nil
	}
	n, err := networks.GetNetwork(config.Network)
	if err != nil {
		return opts, fmt.Errorf("network %q: %w", config.Network, err)
	}
	if url, ok := networks.NodeFromEnv(n); ok {
		opts.FallbackNodes = map[string]string{n.GetNodeVariableName(): url}
	} else {
		opts.FallbackNodes = n.GetDefaultNodes()
	}
	return opts, nil
}

func ClaimManagerABI() (*abi.ABI, error) {
	if config.ABIPath == "" {
		return claim.DefaultABI(), nil
	}
	return claim.LoadABI(config.ABIPath)
}

func MismatchPolicy() claim.MismatchPolicy {
	if config.StrictChainID {
		return claim.MismatchAbort
	}
	return claim.MismatchContinue
}

func Gateway() string {
	if config.IPFSGateway != "" {
		return config.IPFSGateway
	}
	return cidref.DefaultGateway
}

// NewLogger returns the operator logger. Debug records only show up with
// --verbose.
func NewLogger(w io.Writer, asJSON bool) *slog.Logger {
	level := slog.LevelInfo
	if config.Verbose {
		level = slog.LevelDebug
	}
	handlerOpts := &slog.HandlerOptions{Level: level}
	if asJSON {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}

// SessionOptions assembles everything but the raw query and the resolver,
// which are per page load.
func SessionOptions(logger *slog.Logger) (claim.SessionOptions, error) {
	a, err := ClaimManagerABI()
	if err != nil {
		return claim.SessionOptions{}, err
	}
	return claim.SessionOptions{
		Dial:           provider.DialJSONRPC(config.Timeout),
		ABI:            a,
		FromBlock:      config.FromBlock,
		MismatchPolicy: MismatchPolicy(),
		Logger:         logger,
	}, nil
}

// CheckReadiness resolves a provider through r, reads its chain id and, when
// it can tell, the head block. r is closed afterwards.
func CheckReadiness(ctx context.Context, r *provider.Resolver) (*web.Readiness, error) {
	defer r.Close()
	p, msg := r.Resolve(ctx)
	if msg != "" {
		return nil, errors.New(msg)
	}
	id, err := p.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("provider unreachable: %w", err)
	}
	report := &web.Readiness{Source: r.Source(), ChainID: networks.DescribeChainID(id)}
	if br, ok := p.(provider.BlockReader); ok {
		block, err := br.CurrentBlock(ctx)
		if err != nil {
			return nil, fmt.Errorf("couldn't read the head block: %w", err)
		}
		report.Block = block
	}
	return report, nil
}
