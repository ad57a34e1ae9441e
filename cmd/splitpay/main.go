package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/splitpay/internal/auth"
	"github.com/mmynk/splitpay/internal/config"
	"github.com/mmynk/splitpay/internal/ledger"
	"github.com/mmynk/splitpay/internal/metrics"
	"github.com/mmynk/splitpay/internal/middleware"
	"github.com/mmynk/splitpay/internal/service"
	"github.com/mmynk/splitpay/internal/storage/sqlite"
	"github.com/mmynk/splitpay/pkg/logging"
)

func main() {
	root := &cobra.Command{
		Use:   "splitpay",
		Short: "Shared-expense ledger server",
	}
	root.AddCommand(serveCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the RPC server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logging.Setup(cfg.LogLevel)
			return serve(cfg)
		},
	}
}

func serve(cfg *config.Config) error {
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(auth.NewUserStore(store))

	// The auth service stays open; everything else requires a valid token.
	openOpts := connect.WithInterceptors(
		metrics.Interceptor(),
		middleware.LoggingInterceptor(),
	)
	authedOpts := connect.WithInterceptors(
		metrics.Interceptor(),
		middleware.RequireAuth(jwtManager),
		middleware.LoggingInterceptor(),
	)

	mux := http.NewServeMux()

	authSvc := service.NewAuthService(authenticator, jwtManager, slog.Default())
	authPath, authHandler := service.NewAuthServiceHandler(authSvc, openOpts)
	mux.Handle(authPath, authHandler)

	groupSvc := service.NewGroupService(ledger.NewRegistry(store))
	groupPath, groupHandler := service.NewGroupServiceHandler(groupSvc, authedOpts)
	mux.Handle(groupPath, groupHandler)

	ledgerSvc := service.NewLedgerService(
		ledger.NewLedger(store, ledger.SystemClock{}),
		ledger.NewSettler(store),
		ledger.NewQuery(store),
	)
	ledgerPath, ledgerHandler := service.NewLedgerServiceHandler(ledgerSvc, authedOpts)
	mux.Handle(ledgerPath, ledgerHandler)

	mux.Handle("/metrics", promhttp.Handler())

	// h2c allows HTTP/2 without TLS, which Connect clients expect.
	handler := h2c.NewHandler(mux, &http2.Server{})

	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("Server starting", "address", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
