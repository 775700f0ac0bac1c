package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"secretGateway/internal/auth"
	"secretGateway/internal/config"
	"secretGateway/internal/handlers"
	"secretGateway/internal/k8s"
	"secretGateway/internal/keyvault"
	"secretGateway/internal/logging"
	"secretGateway/internal/metrics"
	"secretGateway/internal/server"
	"secretGateway/internal/store"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "secret-gateway",
		Short:        "HTTP gateway over a managed secret store",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCmd(), newHashPasswordCmd())
	return rootCmd
}

func newServeCmd() *cobra.Command {
	var configFile string
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v, configFile)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg)
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "path to a YAML config file")
	cmd.Flags().String("addr", "", "listen address (overrides GATEWAY_ADDR)")
	cmd.Flags().String("backend", "", "secret store backend: keyvault or kubernetes")
	_ = v.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	_ = v.BindPFlag("store.backend", cmd.Flags().Lookup("backend"))

	return cmd
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Print a bcrypt hash for ADMIN_PASSWORD_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := bcrypt.GenerateFromPassword([]byte(args[0]), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(hash))
			return err
		},
	}
}

func serve(ctx context.Context, cfg config.Config) error {
	logger := logging.New(cfg.Log.Level, cfg.Log.Pretty)

	client, err := newStore(ctx, cfg)
	if err != nil {
		logger.Error().Err(err).Str("backend", cfg.Store.Backend).Msg("failed to initialize secret store")
		return err
	}

	m := metrics.New()
	rt := server.Router{
		SecretsHandler: handlers.NewSecretsHandler(client, m),
		Metrics:        m,
		Logger:         logger,
	}

	if cfg.AuthEnabled() {
		jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		rt.JWTManager = jwtManager
		rt.AuthHandler = handlers.NewAuthHandler(jwtManager, cfg.Auth.AdminUser, cfg.Auth.AdminPasswordHash)
	}

	logger.Info().
		Str("backend", cfg.Store.Backend).
		Str("namespace", cfg.Store.Namespace).
		Bool("auth", cfg.AuthEnabled()).
		Msg("secret gateway configured")

	srv := server.New(cfg.Server.Addr, server.NewRouter(rt), cfg.Server.ReadTimeout, cfg.Server.WriteTimeout, logger)
	return srv.Run(ctx)
}

func newStore(ctx context.Context, cfg config.Config) (store.SecretStore, error) {
	switch cfg.Store.Backend {
	case config.BackendKeyVault:
		return keyvault.NewClient(cfg.Store.KeyVaultURI)
	case config.BackendKubernetes:
		client, err := k8s.NewClient(cfg.Store.Kubeconfig, cfg.Store.Namespace)
		if err != nil {
			return nil, err
		}
		if cfg.Store.CreateNamespace {
			if err := client.EnsureNamespace(ctx); err != nil {
				return nil, err
			}
		}
		return client, nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}
