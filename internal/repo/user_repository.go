package repo

import (
	"errors"

	"github.com/rogerio-castellano/smart-inventory/internal/models"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	GetByEmail(email string) (models.User, error)
	GetByID(id string) (models.User, error)
}
