package handlers

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/rogerio-castellano/smart-inventory/internal/auth"
	"github.com/rogerio-castellano/smart-inventory/internal/inventory"
)

// Server holds the dependencies shared by every handler.
type Server struct {
	items *inventory.Service
	auth  *auth.AuthService
	log   zerolog.Logger
	now   func() time.Time
}

func NewServer(items *inventory.Service, authSvc *auth.AuthService, logger zerolog.Logger) *Server {
	return &Server{
		items: items,
		auth:  authSvc,
		log:   logger.With().Str("component", "http").Logger(),
		now:   time.Now,
	}
}
