package domain

import "errors"

// Error taxonomy shared by services and handlers. Repositories and
// services wrap these sentinels; the api package maps them to HTTP
// status codes in one place.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrAlreadyExists   = errors.New("already exists")
)
