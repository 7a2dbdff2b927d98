package service

import "errors"

// Common service errors. The API layer maps these to HTTP status codes.
var (
	// ErrNotOwned indicates a resource is owned by a different user than the one making the request.
	// API layer maps this to 404 so ownership is not leaked.
	ErrNotOwned = errors.New("resource is owned by another user")
)
