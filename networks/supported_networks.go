package networks

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/user"
	"path/filepath"
	"sort"
	"sync"
)

// Insert more Network implementation here to support
// more chains
var supportedNetworks = []Network{
	EthereumMainnet,
	Sepolia,
	Gnosis,
	Chiado,
	ArbitrumMainnet,
	OptimismMainnet,
	Polygon,
	BaseMainnet,
}

var (
	globalSupportedNetworks *networks
	loadOnce                sync.Once
)

var ErrNetworkNotFound = fmt.Errorf("network not found")

type networks struct {
	mu           sync.RWMutex
	networks     map[string]Network
	networksByID map[uint64]Network
}

func (n *networks) getSupportedNetworkNames() []string {
	n.mu.RLock()
	defer n.mu.RUnlock()
	res := []string{}
	for name := range n.networks {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

func (n *networks) getNetworkByID(id uint64) (Network, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	res, found := n.networksByID[id]
	if !found {
		return nil, fmt.Errorf("network id %d: %w", id, ErrNetworkNotFound)
	}
	return res, nil
}

func (n *networks) getNetwork(name string) (Network, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	res, found := n.networks[name]
	if !found {
		return nil, fmt.Errorf("network name '%s': %w", name, ErrNetworkNotFound)
	}
	return res, nil
}

func (n *networks) add(network Network, override bool) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	names := append([]string{network.GetName()}, network.GetAlternativeNames()...)
	if !override {
		for _, name := range names {
			if _, found := n.networks[name]; found {
				return fmt.Errorf("network with name or alternative name of '%s' already exists", name)
			}
		}
	}
	for _, name := range names {
		n.networks[name] = network
	}
	n.networksByID[network.GetChainID()] = network
	return nil
}

func newSupportedNetworks(customDir string) *networks {
	result := &networks{
		networks:     map[string]Network{},
		networksByID: map[uint64]Network{},
	}
	for _, n := range supportedNetworks {
		if err := result.add(n, false); err != nil {
			panic(err)
		}
	}

	if customDir == "" {
		return result
	}
	customNetworks, err := LoadCustomNetworks(customDir)
	if err != nil {
		slog.Warn("failed to load custom networks, continuing with built-in networks",
			"dir", customDir, "error", err)
		return result
	}
	for _, n := range customNetworks {
		if existing, err := result.getNetworkByID(n.GetChainID()); err == nil {
			slog.Warn("custom network replaces a known chain id",
				"chain_id", n.GetChainID(), "replaced", existing.GetName(), "custom", n.GetName())
		}
		if err := result.add(n, true); err != nil {
			slog.Warn("skipping custom network", "name", n.GetName(), "error", err)
		}
	}
	return result
}

func defaultCustomNetworksDir() string {
	usr, err := user.Current()
	if err != nil {
		return ""
	}
	return filepath.Join(usr.HomeDir, ".claimview", "networks")
}

func registry() *networks {
	loadOnce.Do(func() {
		globalSupportedNetworks = newSupportedNetworks(defaultCustomNetworksDir())
	})
	return globalSupportedNetworks
}

// LoadCustomNetworks reads every *.json file in dir as a GenericNetworkConfig.
// Files that fail to parse are reported and skipped.
func LoadCustomNetworks(dir string) ([]Network, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to glob json files in %s: %w", dir, err)
	}

	networks := []Network{}
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read file %s: %w", file, err)
		}
		network, err := NewNetworkFromJSON(content)
		if err != nil {
			slog.Warn("skipping unparseable custom network", "file", file, "error", err)
			continue
		}
		networks = append(networks, network)
	}
	return networks, nil
}

func NewNetworkFromJSON(content []byte) (Network, error) {
	networkConfig := GenericNetworkConfig{}
	if err := json.Unmarshal(content, &networkConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal network config: %w", err)
	}
	if networkConfig.Name == "" || networkConfig.ChainID == 0 {
		return nil, fmt.Errorf("network config needs both name and chain_id")
	}
	return NewGenericNetwork(networkConfig), nil
}

func GetNetwork(name string) (Network, error) {
	return registry().getNetwork(name)
}

func GetNetworkByID(id uint64) (Network, error) {
	return registry().getNetworkByID(id)
}

func GetSupportedNetworkNames() []string {
	return registry().getSupportedNetworkNames()
}

// GetSupportedNetworks returns every registered network once, ordered by
// chain id.
func GetSupportedNetworks() []Network {
	return registry().getSupportedNetworks()
}

func (n *networks) getSupportedNetworks() []Network {
	n.mu.RLock()
	defer n.mu.RUnlock()
	res := make([]Network, 0, len(n.networksByID))
	for _, network := range n.networksByID {
		res = append(res, network)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].GetChainID() < res[j].GetChainID()
	})
	return res
}
