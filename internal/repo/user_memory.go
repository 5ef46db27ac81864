package repo

import (
	"strings"

	"github.com/rogerio-castellano/smart-inventory/internal/models"
)

// InMemoryUserRepository serves a fixed user table loaded at startup.
type InMemoryUserRepository struct {
	users []models.User
}

func NewInMemoryUserRepository(users ...models.User) *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users: append([]models.User{}, users...),
	}
}

func (r *InMemoryUserRepository) GetByEmail(email string) (models.User, error) {
	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}

	return models.User{}, ErrUserNotFound
}

func (r *InMemoryUserRepository) GetByID(id string) (models.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}

	return models.User{}, ErrUserNotFound
}

func (r *InMemoryUserRepository) All() []models.User {
	return append([]models.User{}, r.users...)
}
