// Package server runs the sandbox backend over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"ems/internal/platform/config"
	"ems/internal/sandbox"
)

const shutdownTimeout = 10 * time.Second

func NewHTTPServer(cfg config.Config, logger *zap.Logger) (*http.Server, error) {
	if err := cfg.ValidateSandbox(); err != nil {
		return nil, err
	}
	sb, err := sandbox.New(sandbox.Config{
		JWTSecret:      cfg.Sandbox.JWTSecret,
		TokenTTL:       cfg.Sandbox.TokenTTL,
		AdminEmail:     cfg.Sandbox.AdminEmail,
		AdminPassword:  cfg.Sandbox.AdminPassword,
		Seed:           cfg.Sandbox.Seed,
		LoginRateLimit: cfg.Sandbox.LoginRateLimit,
	}, logger)
	if err != nil {
		return nil, err
	}
	return &http.Server{
		Addr:              cfg.Sandbox.Addr,
		Handler:           sb.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}, nil
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	srv, err := NewHTTPServer(cfg, logger)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("ems sandbox listening", zap.String("addr", srv.Addr), zap.Bool("seed", cfg.Sandbox.Seed))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("ems sandbox shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
