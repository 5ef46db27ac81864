package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rogerio-castellano/smart-inventory/internal/auth"
	"github.com/rogerio-castellano/smart-inventory/internal/models"
)

// LoginHandler godoc
// @Summary Authenticate and return a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Email and password"
// @Success 200 {object} LoginResult
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/auth/login [post]
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var creds LoginRequest
	if err := readJSON(w, r, &creds); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if strings.TrimSpace(creds.Email) == "" || creds.Password == "" {
		WriteError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	token, user, err := s.auth.Login(creds.Email, creds.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			s.log.Warn().Str("email", creds.Email).Msg("failed login attempt")
			WriteError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		s.log.Error().Err(err).Msg("login failed")
		WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	s.respond(w, http.StatusOK, LoginResult{Token: token, User: toUserResponse(user)})
}

// MeHandler godoc
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/auth/me [get]
func (s *Server) MeHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Access denied. No token provided.")
		return
	}
	s.respond(w, http.StatusOK, toUserResponse(user))
}

func toUserResponse(u models.User) UserResponse {
	perms := auth.Permissions(u.Role)
	names := make([]string, len(perms))
	for i, p := range perms {
		names[i] = string(p)
	}
	return UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        string(u.Role),
		Permissions: names,
	}
}
