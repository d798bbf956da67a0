package claim

import (
	"math/big"
)

// DisplayParameters are read once from the embedding query string.
type DisplayParameters struct {
	ArbitrableContractAddress string `json:"arbitrableContractAddress"`
	ArbitratorContractAddress string `json:"arbitratorContractAddress"`
	DisputeID                 string `json:"disputeID"`
	ArbitrableChainID         string `json:"arbitrableChainID,omitempty"`
	ArbitrableJSONRPCURL      string `json:"arbitrableJsonRpcUrl,omitempty"`
}

// ClaimRecord is the policy data behind a disputed claim.
type ClaimRecord struct {
	Claimant          string
	Beneficiary       string
	Coverage          *big.Int
	EndTime           *big.Int
	DocumentReference string
}

// ErrorState is the user facing title/detail pair of the first failure.
type ErrorState struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}
