package auth

import (
	"context"

	"github.com/rogerio-castellano/smart-inventory/internal/models"
)

type contextKey string

const userKey = contextKey("user")

func WithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the authenticated user, if any.
func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userKey).(models.User)
	return user, ok
}
