package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tranvictor/claimview/cidref"
	"github.com/tranvictor/claimview/claim"
	"github.com/tranvictor/claimview/cmd/claimutil"
	"github.com/tranvictor/claimview/config"
	"github.com/tranvictor/claimview/provider"
	"github.com/tranvictor/claimview/ui"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [query]",
	Short: "Show the claim behind a dispute",
	Long: `Resolve takes the query string an arbitrator UI passes to the injected
display, either raw or percent encoded, e.g.

	claimview resolve '{"arbitrableContractAddress":"0x...","arbitratorContractAddress":"0x...","disputeID":"12","arbitrableChainID":"100"}'

When no argument is given the query is read from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query, err := readQuery(args)
		if err != nil {
			return err
		}

		u := ui.NewTerminalUI()
		logger := claimutil.NewLogger(os.Stderr, false)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		popts, err := claimutil.ProviderOptions(provider.IPCHost{Path: config.IPCPath}, logger)
		if err != nil {
			return err
		}
		sopts, err := claimutil.SessionOptions(logger)
		if err != nil {
			return err
		}
		sopts.RawQuery = query
		sopts.Providers = provider.NewResolver(popts)

		session := claim.NewSession(sopts)
		defer session.Close()
		done := u.Spinner(ui.LoadingMessage)
		session.Run(ctx)
		done()

		v := session.View()
		if v.Parameters != nil {
			u.Section("Dispute")
			ui.RenderParameters(u, v.Parameters)
		}
		u.Section("Claim")
		ui.RenderView(u, v, claimutil.Gateway())

		if v.State == claim.StateLoaded && config.Verbose {
			showDocument(u, v.Record.DocumentReference)
		}
		switch v.State {
		case claim.StateError, claim.StateProviderError:
			return fmt.Errorf("couldn't load the claim")
		case claim.StateLoading:
			return fmt.Errorf("the query carries no usable display parameters")
		}
		return nil
	},
}

func readQuery(args []string) (string, error) {
	if len(args) == 1 {
		return strings.TrimSpace(args[0]), nil
	}
	content, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("couldn't read query from stdin: %w", err)
	}
	return strings.TrimSpace(string(content)), nil
}

func showDocument(u ui.UI, ref string) {
	doc, err := cidref.Describe(ref, claimutil.Gateway())
	if err != nil {
		u.Warn("Policy reference is not a CID: %s", err)
		return
	}
	u.Section("Policy document")
	u.KeyValue([][2]string{
		{"CID", doc.CID.String()},
		{"Version", fmt.Sprintf("%d", doc.Version)},
		{"Codec", doc.Codec},
		{"Hash", doc.HashFunction},
		{"URL", doc.URL},
	})
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
