package claim

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"

	"github.com/tranvictor/claimview/networks"
	"github.com/tranvictor/claimview/provider"
)

type State int

const (
	StateLoading State = iota
	StateError
	StateProviderError
	StateLoaded
)

func (s State) String() string {
	switch s {
	case StateError:
		return "ERROR"
	case StateProviderError:
		return "PROVIDER_ERROR"
	case StateLoaded:
		return "LOADED"
	default:
		return "LOADING"
	}
}

func (s State) Terminal() bool {
	return s != StateLoading
}

// MismatchPolicy decides what happens after the chain id check fails.
type MismatchPolicy int

const (
	// MismatchContinue records the mismatch and still runs the event
	// lookups so their outcome shows up in the operator log.
	MismatchContinue MismatchPolicy = iota
	// MismatchAbort stops before any event lookup.
	MismatchAbort
)

type SessionOptions struct {
	// RawQuery is the embedding query string, '?' optional.
	RawQuery string
	// Providers resolves the fallback provider on every Run; its provider
	// is only used when the parameters carry no arbitrableJsonRpcUrl. The
	// session owns it and closes it in Close.
	Providers *provider.Resolver
	// Dial opens arbitrableJsonRpcUrl.
	Dial           provider.Dialer
	ABI            *abi.ABI
	FromBlock      uint64
	MismatchPolicy MismatchPolicy
	Logger         *slog.Logger
}

// View is a snapshot of a session for presentation.
type View struct {
	State         State
	Parameters    *DisplayParameters
	Record        *ClaimRecord
	Error         *ErrorState
	ProviderError string
}

// Session is the resolver state of one page load. Parameters, the record and
// the error are each written at most once, and the record and the error
// exclude each other.
type Session struct {
	opts SessionOptions
	log  *slog.Logger

	mu            sync.Mutex
	started       bool
	params        *DisplayParameters
	bound         bool
	dialed        provider.Provider
	record        *ClaimRecord
	errState      *ErrorState
	providerError string
}

func NewSession(opts SessionOptions) *Session {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Providers == nil {
		opts.Providers = provider.NewResolver(provider.Options{Logger: opts.Logger})
	}
	if opts.Dial == nil {
		opts.Dial = provider.DialJSONRPC(0)
	}
	return &Session{opts: opts, log: opts.Logger}
}

// Run performs the resolution. Only the first call does any work; later
// calls return immediately whatever the outcome was.
func (s *Session) Run(ctx context.Context) {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	// the fallback is looked up on every page load, parameters or not
	fallback, providerErr := s.opts.Providers.Resolve(ctx)
	if providerErr != "" {
		s.mu.Lock()
		s.providerError = providerErr
		s.mu.Unlock()
	}

	params, err := ParseQuery(s.opts.RawQuery)
	if err != nil {
		s.log.DebugContext(ctx, "display parameters unavailable", "error", err)
		return
	}
	s.mu.Lock()
	s.params = params
	s.mu.Unlock()

	p := s.selectProvider(ctx, params, fallback)
	if p == nil {
		return
	}

	binding, err := Bind(params.ArbitrableContractAddress, s.opts.ABI, p)
	if err != nil {
		s.log.ErrorContext(ctx, "error instantiating claim manager contract",
			"address", params.ArbitrableContractAddress, "error", err)
		s.fail(ctx, err)
		return
	}
	binding.WithFromBlock(s.opts.FromBlock)
	s.mu.Lock()
	s.bound = true
	s.mu.Unlock()
	s.checkDeployment(ctx, binding, params)

	if err := CheckChainID(ctx, p, params); err != nil {
		s.log.ErrorContext(ctx, "error fetching item",
			"arbitrable_chain", networks.DescribeChainID(params.ChainIDNumber()),
			"error", err)
		s.fail(ctx, err)
		if s.opts.MismatchPolicy == MismatchAbort {
			return
		}
	}

	record, err := FetchClaim(ctx, binding, params)
	if err != nil {
		s.log.ErrorContext(ctx, "error fetching claimData",
			"disputeID", params.DisputeID, "kind", KindOf(err).String(), "error", err)
		s.fail(ctx, err)
		return
	}
	s.succeed(ctx, record)
}

// checkDeployment warns when the chain is known to host a ClaimManager at
// another address. The lookup still runs against the given address.
func (s *Session) checkDeployment(ctx context.Context, binding *ContractBinding, params *DisplayParameters) {
	id := params.ChainIDNumber()
	if id == nil || !id.IsUint64() {
		return
	}
	n, err := networks.GetNetworkByID(id.Uint64())
	if err != nil {
		return
	}
	if known, other := networks.OtherClaimManager(n, binding.Address()); other {
		s.log.WarnContext(ctx, "arbitrable contract is not the known claim manager deployment",
			"network", n.GetName(),
			"address", binding.Address().Hex(),
			"known", known.Hex())
	}
}

// selectProvider prefers the per-claim endpoint over the fallback one.
func (s *Session) selectProvider(ctx context.Context, params *DisplayParameters, fallback provider.Provider) provider.Provider {
	if params.ArbitrableJSONRPCURL == "" {
		return fallback
	}
	p, err := s.opts.Dial(ctx, params.ArbitrableJSONRPCURL)
	if err != nil {
		s.log.ErrorContext(ctx, "couldn't use arbitrableJsonRpcUrl",
			"url", params.ArbitrableJSONRPCURL, "error", err)
		s.fail(ctx, &Error{Kind: KindBindingFailure, Err: err})
		return nil
	}
	s.mu.Lock()
	s.dialed = p
	s.mu.Unlock()
	return p
}

// Close releases the per-claim connection and the resolver's provider. The
// session owns both, a View taken before Close stays valid.
func (s *Session) Close() error {
	s.mu.Lock()
	dialed := s.dialed
	s.dialed = nil
	s.mu.Unlock()

	var errs []error
	if c, ok := dialed.(io.Closer); ok {
		errs = append(errs, c.Close())
	}
	errs = append(errs, s.opts.Providers.Close())
	return errors.Join(errs...)
}

func (s *Session) fail(ctx context.Context, err error) {
	var e *Error
	if !errors.As(err, &e) {
		e = &Error{Kind: KindUnknown, Err: err}
	}
	state := e.State()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.errState != nil || s.record != nil {
		s.log.WarnContext(ctx, "dropping error, session already settled",
			"title", state.Title, "detail", state.Detail)
		return
	}
	s.errState = &state
}

func (s *Session) succeed(ctx context.Context, record *ClaimRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.errState != nil || s.record != nil {
		s.log.WarnContext(ctx, "dropping claim data, session already settled",
			"claimant", record.Claimant, "beneficiary", record.Beneficiary)
		return
	}
	s.record = record
}

// State reports the presentation state, highest priority first.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state()
}

func (s *Session) state() State {
	switch {
	case s.errState != nil:
		return StateError
	case s.providerError != "" && !s.bound:
		return StateProviderError
	case s.record == nil || s.params == nil:
		return StateLoading
	default:
		return StateLoaded
	}
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := View{
		State:         s.state(),
		ProviderError: s.providerError,
	}
	if s.params != nil {
		p := *s.params
		v.Parameters = &p
	}
	if s.record != nil {
		r := *s.record
		v.Record = &r
	}
	if s.errState != nil {
		e := *s.errState
		v.Error = &e
	}
	return v
}
