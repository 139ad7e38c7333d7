package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gregtusar/paper-dashboard/api"
	"github.com/gregtusar/paper-dashboard/internal/config"
	"github.com/gregtusar/paper-dashboard/pkg/dashboard"
	"github.com/gregtusar/paper-dashboard/pkg/render"
	"github.com/gregtusar/paper-dashboard/pkg/session"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	logger  *logrus.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "paper-dashboard",
		Short:         "Alpaca paper trading dashboard",
		Long:          `Reads balances, positions, portfolio history and orders for a set of Alpaca accounts and serves them as normalized JSON or terminal tables`,
		RunE:          runServe,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard API server",
		RunE:  runServe,
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Print one dashboard render for an account",
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().StringP("account", "a", "", "account label, e.g. H1")
	snapshotCmd.Flags().IntP("days", "d", 0, "portfolio history window in days (default from config)")
	_ = snapshotCmd.MarkFlagRequired("account")

	accountsCmd := &cobra.Command{
		Use:   "accounts",
		Short: "List configured accounts and their status",
		RunE:  runAccounts,
	}

	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an API bearer token",
		RunE:  runToken,
	}
	tokenCmd.Flags().StringP("subject", "s", "", "token subject")
	_ = tokenCmd.MarkFlagRequired("subject")

	rootCmd.AddCommand(serveCmd, snapshotCmd, accountsCmd, tokenCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads configuration and configures the shared logger. The returned
// function closes the log file.
func setup() (*config.Config, func(), error) {
	logger = logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load(cfgFile, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	closeLog, err := cfg.Logging.Apply(logger)
	if err != nil {
		return nil, nil, err
	}
	return cfg, func() {
		if err := closeLog(); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}, nil
}

func buildRegistry(cfg *config.Config) (*session.Registry, error) {
	opts, err := cfg.SessionOptions(logger)
	if err != nil {
		return nil, err
	}
	return session.NewRegistry(cfg.Accounts.Credentials, opts), nil
}

func buildLoader(cfg *config.Config) *dashboard.Loader {
	return dashboard.NewLoader(dashboard.Query{
		OrderStatus: cfg.Orders.Status,
		OrderLimit:  cfg.Orders.Limit,
		Timeframe:   cfg.History.Timeframe,
		HistoryDays: cfg.History.PeriodDays,
	}, logger)
}

func buildTokens(cfg *config.Config) (*api.TokenIssuer, error) {
	if cfg.Server.AuthSecret == "" {
		return nil, nil
	}
	return api.NewTokenIssuer(cfg.Server.AuthSecret, cfg.Server.TokenTTL)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	registry, err := buildRegistry(cfg)
	if err != nil {
		return err
	}
	tokens, err := buildTokens(cfg)
	if err != nil {
		return err
	}
	if tokens == nil {
		logger.Warn("server.auth_secret is not set, API is unauthenticated")
	}

	apiServer := api.NewServer(registry, buildLoader(cfg), tokens, logger, cfg.Server.Port)

	errCh := make(chan error, 1)
	go func() {
		errCh <- apiServer.Start()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.WithField("accounts", strings.Join(registry.Labels(), ",")).Info("Dashboard is running. Press Ctrl+C to stop.")

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("api server: %w", err)
		}
		return nil
	case <-sigChan:
		logger.Info("Received shutdown signal")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Failed to shut down API server cleanly")
		return err
	}

	logger.Info("Dashboard stopped")
	return nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	label, _ := cmd.Flags().GetString("account")
	days, _ := cmd.Flags().GetInt("days")
	if days < 0 {
		return errors.New("--days must not be negative")
	}

	cfg, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	registry, err := buildRegistry(cfg)
	if err != nil {
		return err
	}

	sess, err := registry.Get(strings.ToUpper(label))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	view, err := buildLoader(cfg).WithHistoryDays(days).Load(ctx, sess.Label(), sess)
	if err != nil {
		return err
	}

	render.New(cmd.OutOrStdout()).View(view)
	return nil
}

func runAccounts(cmd *cobra.Command, args []string) error {
	cfg, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	registry, err := buildRegistry(cfg)
	if err != nil {
		return err
	}

	render.New(cmd.OutOrStdout()).Accounts(registry.Status())
	return nil
}

func runToken(cmd *cobra.Command, args []string) error {
	subject, _ := cmd.Flags().GetString("subject")

	cfg, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	tokens, err := buildTokens(cfg)
	if err != nil {
		return err
	}
	if tokens == nil {
		return errors.New("server.auth_secret must be set to mint tokens")
	}

	token, err := tokens.Issue(subject)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
