package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tranvictor/claimview/networks"
	"github.com/tranvictor/claimview/ui"
)

var listNetworkCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all of supported networks",
	Long:  ``,
	Run: func(cmd *cobra.Command, args []string) {
		u := ui.NewTerminalUI()
		renderNetworks(u, networks.GetSupportedNetworks())
		u.Info("Custom networks are read from ~/.claimview/networks/*.json.")
	},
}

func renderNetworks(u ui.UI, ns []networks.Network) {
	rows := [][]string{}
	for _, n := range ns {
		nodes := n.GetDefaultNodes()
		if url, ok := networks.NodeFromEnv(n); ok {
			nodes = map[string]string{n.GetNodeVariableName(): url}
		}
		names := make([]string, 0, len(nodes))
		for name, url := range nodes {
			names = append(names, name+": "+url)
		}
		sort.Strings(names)
		claimManager := n.GetClaimManagerAddress()
		if claimManager == "" {
			claimManager = "-"
		}
		rows = append(rows, []string{
			n.GetName(),
			fmt.Sprintf("%d", n.GetChainID()),
			n.GetNativeTokenSymbol(),
			n.GetBlockTime().String(),
			n.GetNodeVariableName(),
			strings.Join(names, ", "),
			claimManager,
		})
	}
	u.Table([]string{"Name", "Chain ID", "Token", "Block time", "Node env var", "Nodes", "ClaimManager"}, rows)
}

var checkNetworkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Validate a custom network json file",
	Long: `The json should be in the following format:
	{
		"name": "network_name",
		"alternative_names": ["alternative_name_1"],
		"chain_id": 10200,
		"native_token_symbol": "xDAI",
		"block_time": 5,
		"node_variable_name": "MY_NETWORK_NODE",
		"default_nodes": {
			"node_name_1": "node_url_1"
		},
		"claim_manager_address": "0x..."
	}`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("couldn't read %s: %w", args[0], err)
		}
		n, err := networks.NewNetworkFromJSON(content)
		if err != nil {
			return err
		}
		u := ui.NewTerminalUI()
		u.Success("%s (chain id %d) is valid", n.GetName(), n.GetChainID())
		if existing, err := networks.GetNetworkByID(n.GetChainID()); err == nil {
			u.Warn("it overrides %s", existing.GetName())
		}
		return nil
	},
}

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Inspect the networks claimview knows",
}

func init() {
	networkCmd.AddCommand(listNetworkCmd)
	networkCmd.AddCommand(checkNetworkCmd)
	rootCmd.AddCommand(networkCmd)
}
