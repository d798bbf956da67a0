package claim

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/tranvictor/claimview/provider"
)

// Argument positions in the ClaimManager events.
const (
	disputePolicyHashArg = 2
	disputeClaimIDArg    = 3

	policyClaimantArg    = 1
	policyBeneficiaryArg = 2
	policyCoverageArg    = 3
	policyEndTimeArg     = 4
	policyDocumentArg    = 5
)

// CheckChainID compares the provider's chain id with arbitrableChainID.
// Any failure, including not being able to read the chain id, is
// KindChainMismatch.
func CheckChainID(ctx context.Context, p provider.Provider, params *DisplayParameters) error {
	chainID, err := p.ChainID(ctx)
	if err != nil {
		return &Error{Kind: KindChainMismatch, Err: err}
	}
	expected := params.ChainIDNumber()
	if expected == nil || expected.Cmp(chainID) != 0 {
		return newError(KindChainMismatch,
			"Mismatch on chain Id. Injected: %s, provider %s", params.ArbitrableChainID, chainID)
	}
	return nil
}

// FetchClaim walks Dispute -> CreatedClaim -> CreatedPolicy and builds the
// record from the policy event. Each stage takes the first match.
func FetchClaim(ctx context.Context, c *ContractBinding, params *DisplayParameters) (*ClaimRecord, error) {
	disputeID, err := params.DisputeIDNumber()
	if err != nil {
		return nil, &Error{Kind: KindFetchFailure, Err: err}
	}

	disputes, err := c.QueryFilter(ctx, EventDispute, nil, disputeID, nil, nil)
	if err != nil {
		return nil, &Error{Kind: KindFetchFailure, Err: err}
	}
	if len(disputes) == 0 {
		return nil, notFound(KindDisputeNotFound, EventDispute)
	}
	dispute := disputes[0]

	claimID, err := dispute.Arg(disputeClaimIDArg)
	if err != nil {
		return nil, &Error{Kind: KindFetchFailure, Err: err}
	}
	claims, err := c.QueryFilter(ctx, EventCreatedClaim, claimID)
	if err != nil {
		return nil, &Error{Kind: KindFetchFailure, Err: err}
	}
	if len(claims) == 0 {
		return nil, notFound(KindClaimNotFound, EventCreatedClaim)
	}

	// the policy comes from the dispute, CreatedClaim only has to exist
	policyHash, err := dispute.Arg(disputePolicyHashArg)
	if err != nil {
		return nil, &Error{Kind: KindFetchFailure, Err: err}
	}
	policies, err := c.QueryFilter(ctx, EventCreatedPolicy, policyHash)
	if err != nil {
		return nil, &Error{Kind: KindFetchFailure, Err: err}
	}
	if len(policies) == 0 {
		return nil, notFound(KindPolicyNotFound, EventCreatedPolicy)
	}

	record, err := recordFromPolicy(policies[0])
	if err != nil {
		return nil, &Error{Kind: KindFetchFailure, Err: err}
	}
	return record, nil
}

func recordFromPolicy(ev Event) (*ClaimRecord, error) {
	if len(ev.Args) <= policyDocumentArg {
		return nil, fmt.Errorf("%s event has %d arguments, want %d", ev.Name, len(ev.Args), policyDocumentArg+1)
	}
	coverage, err := toBigInt(ev.Args[policyCoverageArg])
	if err != nil {
		return nil, fmt.Errorf("coverage: %w", err)
	}
	endTime, err := toBigInt(ev.Args[policyEndTimeArg])
	if err != nil {
		return nil, fmt.Errorf("endTime: %w", err)
	}
	return &ClaimRecord{
		Claimant:          toText(ev.Args[policyClaimantArg]),
		Beneficiary:       toText(ev.Args[policyBeneficiaryArg]),
		Coverage:          coverage,
		EndTime:           endTime,
		DocumentReference: toText(ev.Args[policyDocumentArg]),
	}, nil
}

func toBigInt(v interface{}) (*big.Int, error) {
	switch n := v.(type) {
	case *big.Int:
		if n == nil {
			return nil, fmt.Errorf("nil integer")
		}
		if n.Sign() < 0 {
			return nil, fmt.Errorf("negative value %s", n)
		}
		return new(big.Int).Set(n), nil
	case uint8:
		return new(big.Int).SetUint64(uint64(n)), nil
	case uint16:
		return new(big.Int).SetUint64(uint64(n)), nil
	case uint32:
		return new(big.Int).SetUint64(uint64(n)), nil
	case uint64:
		return new(big.Int).SetUint64(n), nil
	case int64:
		if n < 0 {
			return nil, fmt.Errorf("negative value %d", n)
		}
		return big.NewInt(n), nil
	case string:
		r, ok := parseBigInt(n)
		if !ok {
			return nil, fmt.Errorf("not an unsigned integer: %q", n)
		}
		return r, nil
	default:
		return nil, fmt.Errorf("unexpected type %T", v)
	}
}

func toText(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case common.Address:
		return s.Hex()
	case common.Hash:
		return s.Hex()
	case [32]byte:
		return hexutil.Encode(s[:])
	case []byte:
		return hexutil.Encode(s)
	case fmt.Stringer:
		return s.String()
	default:
		return fmt.Sprint(v)
	}
}
