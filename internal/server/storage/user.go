package storage

import (
	"context"
	"time"

	"github.com/iudanet/ccboard/internal/models"
)

// UserStorage defines interface for user data persistence
type UserStorage interface {
	// CreateUser creates a new user in the storage
	// Returns ErrUserAlreadyExists if a user with this github id exists
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByID retrieves user by ID
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByID(ctx context.Context, userID string) (*models.User, error)

	// GetUserByGithubID retrieves user by external GitHub account id
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByGithubID(ctx context.Context, githubID string) (*models.User, error)

	// GetUserByAPIKey retrieves user by exact API key equality
	// Returns ErrUserNotFound if no user holds this key
	GetUserByAPIKey(ctx context.Context, apiKey string) (*models.User, error)

	// UpdateAPIKey replaces the user's API key in place.
	// The previous key stops resolving the instant this returns.
	UpdateAPIKey(ctx context.Context, userID, apiKey string) error

	// UpdateLastSeen updates the last login timestamp
	UpdateLastSeen(ctx context.Context, userID string, lastSeen time.Time) error
}
