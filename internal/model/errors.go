package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound  = errors.New("player not found")
	ErrInvalidPlayerID = errors.New("player id must be a positive integer")

	// Input errors, raised while binding requests
	ErrInvalidRace       = errors.New("invalid race")
	ErrInvalidProfession = errors.New("invalid profession")
	ErrInvalidOrder      = errors.New("invalid order field")
	ErrInvalidPage       = errors.New("page number must be >= 0 and page size >= 1")

	// ErrValidation is wrapped by every field validation failure
	ErrValidation = errors.New("validation failed")
)
