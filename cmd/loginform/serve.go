package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hassanaliaskari/ReactLoginSignupForm/internal/accounts"
	"github.com/hassanaliaskari/ReactLoginSignupForm/internal/config"
	"github.com/hassanaliaskari/ReactLoginSignupForm/internal/httpserver"
	"github.com/hassanaliaskari/ReactLoginSignupForm/internal/notice"
	"github.com/hassanaliaskari/ReactLoginSignupForm/internal/observability"
	"github.com/hassanaliaskari/ReactLoginSignupForm/internal/session"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var (
		envFile string
		addr    string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long: `Start the login server. Configuration comes from LOGINFORM_* environment
variables, with an optional .env file for local overrides.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := []config.Option{config.WithEnvFile(envFile)}
			if addr != "" {
				opts = append(opts, config.WithEnvMap(map[string]string{"LOGINFORM_HTTP_ADDR": addr}))
			}
			cfg, err := config.Load(opts...)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "Path to a .env file (ignored when missing)")
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address, overrides LOGINFORM_HTTP_ADDR")
	return cmd
}

func runServe(parent context.Context, cfg config.Config) error {
	logger, err := observability.NewLogger(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	srv, err := buildServer(cfg, logger)
	if err != nil {
		return err
	}

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	logger.Info("login server listening",
		zap.String("addr", cfg.Server.Address),
		zap.String("base_path", cfg.Server.BasePath),
		zap.String("login_path", cfg.Server.LoginPath),
		zap.String("environment", cfg.Server.Environment),
	)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func buildServer(cfg config.Config, logger *zap.Logger) (*http.Server, error) {
	directory, err := accounts.LoadFile(cfg.Accounts.File)
	if err != nil {
		return nil, err
	}
	logger.Info("accounts loaded", zap.Int("count", directory.Len()))

	sessions, err := session.NewManager(session.Config{
		HashKey:      cfg.Session.HashKey,
		BlockKey:     cfg.Session.BlockKey,
		CookieSecure: cfg.Session.CookieSecure,
		IdleTimeout:  cfg.Session.IdleTimeout,
		Lifetime:     cfg.Session.Lifetime,
	})
	if err != nil {
		return nil, err
	}

	appearance, err := config.LoadAppearance(cfg.Form.AppearanceFile)
	if err != nil {
		return nil, err
	}
	n, err := notice.LoadFile(cfg.Form.NoticeFile)
	if err != nil {
		return nil, err
	}

	return httpserver.New(httpserver.Config{
		Address:      cfg.Server.Address,
		BasePath:     cfg.Server.BasePath,
		LoginPath:    cfg.Server.LoginPath,
		RedirectURL:  cfg.Server.RedirectURL,
		Environment:  cfg.Server.Environment,
		Accounts:     directory,
		Sessions:     sessions,
		Appearance:   appearance,
		Notice:       n,
		Logger:       logger,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	})
}
