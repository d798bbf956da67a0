package networks

import (
	"encoding/json"
	"time"
)

type GenericNetworkConfig struct {
	Name                string            `json:"name"`
	AlternativeNames    []string          `json:"alternative_names"`
	ChainID             uint64            `json:"chain_id"`
	NativeTokenSymbol   string            `json:"native_token_symbol"`
	BlockTime           uint64            `json:"block_time"`
	NodeVariableName    string            `json:"node_variable_name"`
	DefaultNodes        map[string]string `json:"default_nodes"`
	ClaimManagerAddress string            `json:"claim_manager_address"`
}

// GenericNetwork is a Network backed entirely by its config, used for both
// the built-in chains and the custom ones loaded from disk.
type GenericNetwork struct {
	config GenericNetworkConfig
}

func NewGenericNetwork(config GenericNetworkConfig) *GenericNetwork {
	if config.AlternativeNames == nil {
		config.AlternativeNames = []string{}
	}
	if config.DefaultNodes == nil {
		config.DefaultNodes = map[string]string{}
	}
	return &GenericNetwork{config: config}
}

func (gn *GenericNetwork) GetName() string {
	return gn.config.Name
}

func (gn *GenericNetwork) GetChainID() uint64 {
	return gn.config.ChainID
}

func (gn *GenericNetwork) GetAlternativeNames() []string {
	return gn.config.AlternativeNames
}

func (gn *GenericNetwork) GetNativeTokenSymbol() string {
	return gn.config.NativeTokenSymbol
}

func (gn *GenericNetwork) GetBlockTime() time.Duration {
	return time.Duration(gn.config.BlockTime) * time.Second
}

func (gn *GenericNetwork) GetNodeVariableName() string {
	return gn.config.NodeVariableName
}

func (gn *GenericNetwork) GetDefaultNodes() map[string]string {
	return gn.config.DefaultNodes
}

func (gn *GenericNetwork) GetClaimManagerAddress() string {
	return gn.config.ClaimManagerAddress
}

func (gn *GenericNetwork) MarshalJSON() ([]byte, error) {
	return json.MarshalIndent(gn.config, "", "  ")
}
