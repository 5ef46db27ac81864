package auth

import (
	"errors"

	"github.com/rogerio-castellano/smart-inventory/internal/models"
)

var ErrForbidden = errors.New("insufficient permissions")

type Permission string

const (
	PermissionView   Permission = "view"
	PermissionCreate Permission = "create"
	PermissionEdit   Permission = "edit"
	PermissionDelete Permission = "delete"
)

var rolePermissions = map[models.Role][]Permission{
	models.RoleAdmin:   {PermissionView, PermissionCreate, PermissionEdit, PermissionDelete},
	models.RoleManager: {PermissionView, PermissionCreate, PermissionEdit},
	models.RoleViewer:  {PermissionView},
}

func HasPermission(role models.Role, p Permission) bool {
	for _, granted := range rolePermissions[role] {
		if granted == p {
			return true
		}
	}
	return false
}

// Permissions lists what role may do. Unknown roles get nothing.
func Permissions(role models.Role) []Permission {
	return append([]Permission{}, rolePermissions[role]...)
}

// Authorize returns ErrForbidden unless the user's role grants p.
func Authorize(user models.User, p Permission) error {
	if !HasPermission(user.Role, p) {
		return ErrForbidden
	}
	return nil
}
