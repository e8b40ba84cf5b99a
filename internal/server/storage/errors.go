package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that user with this github id already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrAPIKeyTaken indicates that the generated API key collides with another user's key
	ErrAPIKeyTaken = errors.New("api key already taken")

	// ErrRateLimited indicates that the fixed window limit for (identifier, endpoint) is exhausted
	ErrRateLimited = errors.New("rate limit exceeded")
)
