package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/rogerio-castellano/smart-inventory/internal/config"
	"github.com/rogerio-castellano/smart-inventory/internal/models"
)

type demoUser struct {
	id, name, email, password string
	role                      models.Role
}

var demoUsers = []demoUser{
	{"1", "Admin User", "admin@company.com", "admin123", models.RoleAdmin},
	{"2", "Manager User", "manager@company.com", "manager123", models.RoleManager},
	{"3", "Viewer User", "viewer@company.com", "viewer123", models.RoleViewer},
}

// DemoUsers returns the built-in accounts with freshly hashed passwords.
func DemoUsers(cost int) ([]models.User, error) {
	users := make([]models.User, 0, len(demoUsers))
	for _, d := range demoUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(d.password), cost)
		if err != nil {
			return nil, fmt.Errorf("hash password for %s: %w", d.email, err)
		}
		users = append(users, models.User{
			ID:           d.id,
			Name:         d.name,
			Email:        d.email,
			Role:         d.role,
			PasswordHash: string(hash),
		})
	}
	return users, nil
}

// LoadUsers returns the configured accounts, or the demo accounts when none
// are configured.
func LoadUsers(cfg []config.UserConfig) ([]models.User, error) {
	if len(cfg) == 0 {
		return DemoUsers(bcrypt.DefaultCost)
	}

	users := make([]models.User, 0, len(cfg))
	for _, u := range cfg {
		users = append(users, models.User{
			ID:           u.ID,
			Name:         u.Name,
			Email:        u.Email,
			Role:         models.Role(u.Role),
			PasswordHash: u.PasswordHash,
		})
	}
	return users, nil
}

// HashPassword returns a bcrypt hash suitable for auth.users[].password_hash.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
