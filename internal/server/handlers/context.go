package handlers

import (
	"context"

	"github.com/iudanet/ccboard/internal/models"
)

// contextKey is a private type to avoid collisions in request contexts
type contextKey string

const userContextKey contextKey = "user"

// WithUser returns a context carrying the authenticated user
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext extracts the authenticated user set by the auth middleware
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	return user, ok
}
