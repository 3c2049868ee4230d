package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aristath/moneyball/internal/di"
	"github.com/aristath/moneyball/internal/server"
	"github.com/aristath/moneyball/pkg/logger"
)

func newServeCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web frontend",
		Long: `Run the web frontend on plain HTTP.

Outside DEV_MODE the session cookie is marked Secure, so browsers only send it
over HTTPS. Put a TLS-terminating proxy in front of the server, or every login
lands back on /login. Set DEV_MODE=true for local plain-HTTP use.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts)
		},
	}
	cmd.Flags().IntVar(&opts.port, "port", 8080, "HTTP listen port (overrides MONEYBALL_PORT)")
	return cmd
}

func runServe(opts *options) error {
	cfg := opts.cfg
	if err := cfg.ValidateServer(); err != nil {
		return err
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting Moneyball web frontend")
	log.Warn().Int("port", cfg.Port).Msg(cookieWarning(cfg.DevMode))

	container, err := di.WireServer(cfg, log)
	if err != nil {
		return err
	}
	defer container.Close()

	srv, err := server.New(server.Config{
		Log:            log,
		Backend:        container.Backend,
		Cookies:        container.Cookies,
		Registry:       container.Registry,
		StateSecret:    cfg.SessionSecret,
		RequestTimeout: cfg.RequestTimeout,
		Port:           cfg.Port,
		DevMode:        cfg.DevMode,
	})
	if err != nil {
		return err
	}

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for interrupt signal or a failed listener
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		log.Error().Err(err).Msg("Server failed")
		return err
	}

	log.Info().Msg("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
	return nil
}

// cookieWarning describes how the session cookie behaves on the plain HTTP
// listener.
func cookieWarning(devMode bool) string {
	if devMode {
		return "Dev mode: insecure cookies and an ephemeral session secret"
	}
	return "Session cookie is Secure; serve through an HTTPS proxy or logins will not stick"
}
