package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tranvictor/claimview/claim"
	"github.com/tranvictor/claimview/cmd/claimutil"
	"github.com/tranvictor/claimview/config"
	"github.com/tranvictor/claimview/provider"
	"github.com/tranvictor/claimview/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the embeddable claim card over HTTP",
	Long: `Serve exposes:

	GET /claim?<query>       the claim card as HTML
	GET /claim.json?<query>  the same view as JSON
	GET /healthz             liveness
	GET /readyz              whether a provider can be set up

Every request is resolved from scratch. Nothing is cached between requests.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := claimutil.NewLogger(os.Stdout, true)
		slog.SetDefault(logger)

		base, err := claimutil.SessionOptions(logger)
		if err != nil {
			return err
		}
		host := provider.RPCHost{URL: config.InjectedRPCURL, Timeout: config.Timeout}
		popts, err := claimutil.ProviderOptions(host, logger)
		if err != nil {
			return err
		}

		h := web.NewHandler(web.Options{
			NewSession: func(rawQuery string, l *slog.Logger) *claim.Session {
				opts := base
				opts.RawQuery = rawQuery
				opts.Logger = l
				po := popts
				po.Logger = l
				opts.Providers = provider.NewResolver(po)
				return claim.NewSession(opts)
			},
			Gateway: claimutil.Gateway(),
			Logger:  logger,
			Ready: func(ctx context.Context) (*web.Readiness, error) {
				return claimutil.CheckReadiness(ctx, provider.NewResolver(popts))
			},
		})

		srv := &http.Server{
			Addr:              config.HTTPAddr,
			Handler:           web.NewRouter(h),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			logger.Info("http server listening", "addr", config.HTTPAddr)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return fmt.Errorf("http server: %w", err)
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down http server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&config.HTTPAddr, "addr", "", "listen address, defaults to "+config.HTTPAddrVar+" or :8080")
	serveCmd.Flags().StringVar(&config.InjectedRPCURL, "injected-rpc", "", "JSON-RPC endpoint treated as the injected connection")
	rootCmd.AddCommand(serveCmd)
}
