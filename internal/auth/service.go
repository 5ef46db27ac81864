package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/rogerio-castellano/smart-inventory/internal/models"
	"github.com/rogerio-castellano/smart-inventory/internal/repo"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnknownUser        = errors.New("user not found")
)

type AuthService struct {
	users  repo.UserRepository
	tokens *TokenIssuer
}

func NewAuthService(users repo.UserRepository, tokens *TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Login checks the password against the stored bcrypt hash and issues a token.
func (a *AuthService) Login(email, password string) (string, models.User, error) {
	user, err := a.users.GetByEmail(email)
	if err != nil {
		return "", models.User{}, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", models.User{}, ErrInvalidCredentials
	}

	token, err := a.tokens.GenerateToken(user)
	if err != nil {
		return "", models.User{}, fmt.Errorf("could not generate token: %w", err)
	}
	return token, user, nil
}

// Authenticate resolves a bearer token to a current user.
func (a *AuthService) Authenticate(tokenStr string) (models.User, error) {
	claims, err := a.tokens.ParseToken(tokenStr)
	if err != nil {
		return models.User{}, err
	}

	user, err := a.users.GetByID(claims.UserID)
	if err != nil {
		return models.User{}, ErrUnknownUser
	}
	return user, nil
}
