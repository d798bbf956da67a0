package networks

import (
	"encoding/json"
	"time"
)

type Network interface {
	GetName() string
	GetChainID() uint64
	GetAlternativeNames() []string
	GetNativeTokenSymbol() string
	GetBlockTime() time.Duration

	// GetNodeVariableName is the env var an operator sets to point claimview
	// at their own node for this chain.
	GetNodeVariableName() string
	GetDefaultNodes() map[string]string

	// GetClaimManagerAddress returns the known ClaimManager deployment on this
	// chain or an empty string when there is none.
	GetClaimManagerAddress() string

	json.Marshaler
}
