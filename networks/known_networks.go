package networks

var EthereumMainnet Network = NewGenericNetwork(GenericNetworkConfig{
	Name:              "mainnet",
	AlternativeNames:  []string{"ethereum"},
	ChainID:           1,
	NativeTokenSymbol: "ETH",
	BlockTime:         12,
	NodeVariableName:  "ETHEREUM_MAINNET_NODE",
	DefaultNodes: map[string]string{
		"public-llamarpc": "https://eth.llamarpc.com",
	},
})

var Sepolia Network = NewGenericNetwork(GenericNetworkConfig{
	Name:              "sepolia",
	ChainID:           11155111,
	NativeTokenSymbol: "ETH",
	BlockTime:         12,
	NodeVariableName:  "ETHEREUM_SEPOLIA_NODE",
	DefaultNodes: map[string]string{
		"public-sepolia": "https://rpc.sepolia.org",
	},
})

var Gnosis Network = NewGenericNetwork(GenericNetworkConfig{
	Name:              "gnosis",
	AlternativeNames:  []string{"xdai"},
	ChainID:           100,
	NativeTokenSymbol: "xDAI",
	BlockTime:         5,
	NodeVariableName:  "GNOSIS_MAINNET_NODE",
	DefaultNodes: map[string]string{
		"public-gnosis": "https://rpc.gnosischain.com",
	},
})

var Chiado Network = NewGenericNetwork(GenericNetworkConfig{
	Name:              "chiado",
	ChainID:           10200,
	NativeTokenSymbol: "xDAI",
	BlockTime:         5,
	NodeVariableName:  "GNOSIS_CHIADO_NODE",
	DefaultNodes: map[string]string{
		"public-chiado": "https://rpc.chiadochain.net",
	},
})

var ArbitrumMainnet Network = NewGenericNetwork(GenericNetworkConfig{
	Name:              "arbitrum",
	ChainID:           42161,
	NativeTokenSymbol: "ETH",
	BlockTime:         1,
	NodeVariableName:  "ARBITRUM_MAINNET_NODE",
	DefaultNodes: map[string]string{
		"public-arbitrum": "https://arb1.arbitrum.io/rpc",
	},
})

var OptimismMainnet Network = NewGenericNetwork(GenericNetworkConfig{
	Name:              "optimism",
	ChainID:           10,
	NativeTokenSymbol: "ETH",
	BlockTime:         2,
	NodeVariableName:  "OPTIMISM_MAINNET_NODE",
	DefaultNodes: map[string]string{
		"public-optimism": "https://mainnet.optimism.io",
	},
})

var Polygon Network = NewGenericNetwork(GenericNetworkConfig{
	Name:              "polygon",
	AlternativeNames:  []string{"matic"},
	ChainID:           137,
	NativeTokenSymbol: "POL",
	BlockTime:         2,
	NodeVariableName:  "POLYGON_MAINNET_NODE",
	DefaultNodes: map[string]string{
		"public-polygon": "https://polygon-rpc.com",
	},
})

var BaseMainnet Network = NewGenericNetwork(GenericNetworkConfig{
	Name:              "base",
	ChainID:           8453,
	NativeTokenSymbol: "ETH",
	BlockTime:         2,
	NodeVariableName:  "BASE_MAINNET_NODE",
	DefaultNodes: map[string]string{
		"public-base": "https://mainnet.base.org",
	},
})
