// Copyright © 2018 Victor Tran
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tranvictor/claimview/cmd/claimutil"
	"github.com/tranvictor/claimview/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "claimview",
	Short: "Show insurance claims behind Kleros disputes",
	Long: fmt.Sprintf(`claimview reads a dispute from the query string an arbitrator UI hands to
an injected display, follows the ClaimManager events of the arbitrable contract
(Dispute, CreatedClaim, CreatedPolicy) and shows the claim behind it.

It runs either once in the terminal ("claimview resolve") or as an HTTP server
serving the embeddable card ("claimview serve").

Provider lookup order:
	1. The injected connection. In the terminal it is a local node IPC socket
	(--ipc or %s). For the server it is --injected-rpc or %s.
	2. The fallback provider, --provider or %s.
	3. The nodes of --network. Set the network's node env var to use your own.

Settings can also come from a YAML file passed with --config. Flags win over
env vars, env vars win over the file.`,
		config.IPCPathVar,
		config.InjectedRPCVar,
		config.FallbackProviderVar,
	),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.StrictChainIDFlagSet = cmd.Flags().Changed("strict-chain-id")
		if err := config.Load(); err != nil {
			return err
		}
		slog.SetDefault(claimutil.NewLogger(os.Stderr, false))
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&config.ConfigFile, "config", "", "YAML config file")
	flags.StringVarP(&config.Network, "network", "k", "", "network whose nodes are used when no provider is given, e.g. \"gnosis\", \"mainnet\"")
	flags.StringVarP(&config.FallbackProvider, "provider", "p", "", "fallback JSON-RPC endpoint")
	flags.StringVar(&config.IPCPath, "ipc", "", "IPC socket of a locally attached node")
	flags.StringVar(&config.ABIPath, "abi", "", "ClaimManager ABI json file, the bundled one is used when empty")
	flags.Uint64Var(&config.FromBlock, "from-block", 0, "first block searched for events")
	flags.DurationVar(&config.Timeout, "timeout", 0, "per call timeout, 0 means none")
	flags.BoolVar(&config.StrictChainID, "strict-chain-id", false, "stop before the event lookups when the chain id does not match")
	flags.StringVar(&config.IPFSGateway, "ipfs-gateway", "", "gateway used for the policy document link")
	flags.BoolVarP(&config.Verbose, "verbose", "v", false, "log debug details")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
