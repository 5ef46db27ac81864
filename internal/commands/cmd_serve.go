package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/rogerio-castellano/smart-inventory/internal/alert"
	"github.com/rogerio-castellano/smart-inventory/internal/config"
	api "github.com/rogerio-castellano/smart-inventory/internal/http"
	"github.com/rogerio-castellano/smart-inventory/internal/http/handlers"
	rl "github.com/rogerio-castellano/smart-inventory/internal/http/rate_limiter"
)

const shutdownTimeout = 10 * time.Second

type ServeCmd struct {
	flags *Flags
	port  int
}

// NewServeCmd creates a new serve command
func NewServeCmd(flags *Flags) *ServeCmd {
	return &ServeCmd{flags: flags}
}

// Register adds the serve command to the application
func (cmd *ServeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "serve",
		Usage:     "Run the inventory HTTP API",
		UsageText: "inventory-tracker serve [--port N]",
		Description: `Starts the REST API on http_server.port. The server shuts down
gracefully on SIGINT or SIGTERM.`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "port",
				Usage:       "override http_server.port",
				Destination: &cmd.port,
			},
		},
		Action: cmd.Run,
	})

	return app
}

func (cmd *ServeCmd) Run(ctx context.Context, _ *cli.Command) error {
	cfg := cmd.flags.Config
	logger := cmd.flags.Logger

	st, err := openStack(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close store")
		}
	}()

	if cfg.Auth.Enabled && cfg.Auth.JWTSecret == config.DefaultJWTSecret {
		logger.Warn().Msg("auth.jwt_secret is the built-in default; set INVENTORY_AUTH_JWT_SECRET in production")
	}
	if !cfg.Auth.Enabled {
		logger.Warn().Msg("authentication is disabled; every inventory route is open")
	}

	var limiter *rl.Limiter
	if cfg.RateLimit.Enabled {
		limiter = rl.New(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	router := api.NewRouter(handlers.NewServer(st.items, st.auth, logger), st.auth, api.RouterOptions{
		AuthEnabled:        cfg.Auth.Enabled,
		CORSAllowedOrigins: cfg.HTTPServer.CORSAllowedOrigins,
		TrustProxyHeaders:  cfg.HTTPServer.TrustProxyHeaders,
		RateLimiter:        limiter,
		Logger:             logger.With().Str("component", "access").Logger(),
	})

	port := cfg.HTTPServer.Port
	if cmd.port != 0 {
		port = cmd.port
	}
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           router,
		ReadTimeout:       cfg.HTTPServer.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.HTTPServer.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if st.smtp != nil {
		go alert.RunDailyDigest(ctx, st.items, st.smtp, logger.With().Str("component", "alert").Logger())
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Str("storage", cfg.Storage.Driver).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
