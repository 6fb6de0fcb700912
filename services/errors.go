// services/errors.go
package services

import "errors"

// Domain errors. Controllers map these onto HTTP statuses; everything else
// coming out of a service is treated as an internal failure.
var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation failed")
	ErrInvalidSelection  = errors.New("selection not valid for branch")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrDuplicateEmail    = errors.New("email already registered for salon")
	ErrConflict          = errors.New("conflicting state")
)
