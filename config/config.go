// Package config holds the values claimview runs with. Flags bind straight
// to the package variables; Load fills whatever the flags left unset from
// the YAML file and the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	FallbackProviderVar = "ETHEREUM_PROVIDER"
	IPCPathVar          = "ETH_IPC_PATH"
	HTTPAddrVar         = "CLAIMVIEW_HTTP_ADDR"
	InjectedRPCVar      = "CLAIMVIEW_INJECTED_RPC"
	IPFSGatewayVar      = "IPFS_GATEWAY"
	StrictChainIDVar    = "CLAIMVIEW_STRICT_CHAIN_ID"
)

var (
	ConfigFile string

	Network          string
	FallbackProvider string
	IPCPath          string
	ABIPath          string
	FromBlock        uint64
	Timeout          time.Duration
	StrictChainID    bool
	// StrictChainIDFlagSet is true when --strict-chain-id was given, even
	// as false; env and file then leave StrictChainID alone.
	StrictChainIDFlagSet bool
	IPFSGateway      string
	Verbose          bool

	HTTPAddr       string
	InjectedRPCURL string
)

// File mirrors the YAML schema, e.g.
//
//	provider:
//	  fallback_url: https://rpc.gnosischain.com
//	  network: gnosis
//	  ipc_path: /var/run/geth.ipc
//	  timeout: 10s
//	contract:
//	  abi_path: ./ClaimManager.json
//	  from_block: 21000000
//	  strict_chain_id: true
//	display:
//	  ipfs_gateway: https://cdn.kleros.link/ipfs/
//	http:
//	  addr: :8080
//	  injected_rpc_url: http://localhost:8545
type File struct {
	Provider struct {
		FallbackURL string `yaml:"fallback_url"`
		Network     string `yaml:"network"`
		IPCPath     string `yaml:"ipc_path"`
		Timeout     string `yaml:"timeout"`
	} `yaml:"provider"`
	Contract struct {
		ABIPath       string `yaml:"abi_path"`
		FromBlock     uint64 `yaml:"from_block"`
		StrictChainID *bool  `yaml:"strict_chain_id"`
	} `yaml:"contract"`
	Display struct {
		IPFSGateway string `yaml:"ipfs_gateway"`
	} `yaml:"display"`
	HTTP struct {
		Addr           string `yaml:"addr"`
		InjectedRPCURL string `yaml:"injected_rpc_url"`
	} `yaml:"http"`
}

func ReadFile(path string) (*File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't read config %s: %w", path, err)
	}
	f := &File{}
	if err := yaml.Unmarshal(content, f); err != nil {
		return nil, fmt.Errorf("couldn't parse config %s: %w", path, err)
	}
	return f, nil
}

// Load fills every value the flags left unset. Env vars come first, then
// ConfigFile, then defaults, so the order of precedence is
// flags > env > file > defaults.
func Load() error {
	var f *File
	if ConfigFile != "" {
		var err error
		if f, err = ReadFile(ConfigFile); err != nil {
			return err
		}
	}
	strictSet := StrictChainIDFlagSet || StrictChainID
	applyEnv(&strictSet)
	if f != nil {
		if err := applyFile(f, &strictSet); err != nil {
			return err
		}
	}
	if HTTPAddr == "" {
		HTTPAddr = ":8080"
	}
	return nil
}

func applyFile(f *File, strictSet *bool) error {
	setIfEmpty(&FallbackProvider, f.Provider.FallbackURL)
	setIfEmpty(&Network, f.Provider.Network)
	setIfEmpty(&IPCPath, f.Provider.IPCPath)
	if Timeout == 0 && f.Provider.Timeout != "" {
		d, err := time.ParseDuration(f.Provider.Timeout)
		if err != nil {
			return fmt.Errorf("invalid provider.timeout %q: %w", f.Provider.Timeout, err)
		}
		Timeout = d
	}
	setIfEmpty(&ABIPath, f.Contract.ABIPath)
	if FromBlock == 0 {
		FromBlock = f.Contract.FromBlock
	}
	if !*strictSet && f.Contract.StrictChainID != nil {
		StrictChainID = *f.Contract.StrictChainID
		*strictSet = true
	}
	setIfEmpty(&IPFSGateway, f.Display.IPFSGateway)
	setIfEmpty(&HTTPAddr, f.HTTP.Addr)
	setIfEmpty(&InjectedRPCURL, f.HTTP.InjectedRPCURL)
	return nil
}

func applyEnv(strictSet *bool) {
	setIfEmpty(&FallbackProvider, os.Getenv(FallbackProviderVar))
	setIfEmpty(&IPCPath, os.Getenv(IPCPathVar))
	setIfEmpty(&HTTPAddr, os.Getenv(HTTPAddrVar))
	setIfEmpty(&InjectedRPCURL, os.Getenv(InjectedRPCVar))
	setIfEmpty(&IPFSGateway, os.Getenv(IPFSGatewayVar))
	if !*strictSet {
		if v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(StrictChainIDVar))); err == nil {
			StrictChainID = v
			*strictSet = true
		}
	}
}

func setIfEmpty(dst *string, value string) {
	value = strings.TrimSpace(value)
	if *dst == "" && value != "" {
		*dst = value
	}
}
