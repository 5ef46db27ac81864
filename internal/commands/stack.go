package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rogerio-castellano/smart-inventory/internal/alert"
	"github.com/rogerio-castellano/smart-inventory/internal/auth"
	"github.com/rogerio-castellano/smart-inventory/internal/config"
	"github.com/rogerio-castellano/smart-inventory/internal/inventory"
	"github.com/rogerio-castellano/smart-inventory/internal/repo"
)

// stack is the wired service graph shared by every command.
type stack struct {
	items *inventory.Service
	auth  *auth.AuthService
	// smtp is nil unless alerts are enabled.
	smtp *alert.SMTPNotifier

	closeStore func() error
}

func openStack(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*stack, error) {
	store, closeStore, err := repo.Open(ctx, cfg.Storage, logger.With().Str("component", "store").Logger())
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Storage.Driver, err)
	}

	alertLogger := logger.With().Str("component", "alert").Logger()
	notifiers := alert.Multi{alert.NewLogNotifier(alertLogger)}
	var smtpNotifier *alert.SMTPNotifier
	if cfg.Alert.Enabled {
		smtpNotifier = alert.NewSMTPNotifier(cfg.Alert.SMTP, alertLogger)
		notifiers = append(notifiers, smtpNotifier)
	}

	users, err := auth.LoadUsers(cfg.Auth.Users)
	if err != nil {
		_ = closeStore()
		return nil, fmt.Errorf("load users: %w", err)
	}

	return &stack{
		items: inventory.New(store,
			inventory.WithLogger(logger.With().Str("component", "inventory").Logger()),
			inventory.WithNotifier(notifiers),
		),
		auth: auth.NewAuthService(
			repo.NewInMemoryUserRepository(users...),
			auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		),
		smtp:       smtpNotifier,
		closeStore: closeStore,
	}, nil
}

func (s *stack) Close() error {
	return s.closeStore()
}
