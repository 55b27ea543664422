package domain

import "errors"

// Sentinel errors for the domain layer.
var (
	ErrNotFound         = errors.New("domain: not found")
	ErrValidation       = errors.New("domain: validation failed")
	ErrStoreUnavailable = errors.New("domain: store unavailable")
)
