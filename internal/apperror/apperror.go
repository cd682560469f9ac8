package apperror

import "errors"

var (
	// ErrNoBackendsConfigured is returned when a health check is requested
	// but neither a model list nor a CLI model is configured.
	ErrNoBackendsConfigured = errors.New("model list not initialized")

	// ErrNotFound is returned when a stored resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrAlreadyExists is returned on duplicate resource creation.
	ErrAlreadyExists = errors.New("resource already exists")

	// ErrUnauthorized is returned when the caller fails the capability check.
	ErrUnauthorized = errors.New("unauthorized")
)
