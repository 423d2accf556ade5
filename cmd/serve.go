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

	"github.com/desertthunder/reprise/internal/server"
	"github.com/desertthunder/reprise/internal/services"
	"github.com/desertthunder/reprise/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve starts the recommendation web app and blocks until the process is
// interrupted or the server fails.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	config, err := r.loadConfig(cmd.String("config"))
	if err != nil {
		return err
	}

	if host := cmd.String("host"); host != "" {
		config.Server.Host = host
	}
	if port := cmd.Int("port"); port != 0 {
		config.Server.Port = port
	}

	if err := config.Validate(); err != nil {
		return err
	}

	if r.spotify == nil {
		return fmt.Errorf("%w: Spotify service not initialized, add credentials to the config file", shared.ErrServiceUnavailable)
	}

	if checker, ok := r.ytmusic.(services.HealthChecker); ok {
		if err := checker.Health(ctx); err != nil {
			r.logger.Warn("YouTube Music proxy unreachable", "error", err)
		} else {
			r.logger.Info("YouTube Music proxy healthy")
		}
	}

	sessions := server.NewSessionManager(config.Server.SessionKey)
	web := server.NewWebHandler(r.spotify, r.engine, sessions, r.logger)

	router := server.NewBasicRouter()
	router.Use(server.RequestLogger(r.logger), server.Recovery(r.logger), server.Throttle(10, 20))
	router.Handle("/", web, http.MethodGet, http.MethodPost)
	router.Handle("/callback", web, http.MethodGet, http.MethodPost)

	httpServer := &http.Server{
		Addr:    config.Addr(),
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Info("starting server", "addr", config.Addr())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	r.writePlain("Reprise running at http://%s\n", config.Addr())

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	r.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	return nil
}
