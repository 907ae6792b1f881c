package contact

import "errors"

// Sentinel errors for the contact service layer.
var (
	ErrNotFound     = errors.New("contact not found")
	ErrEmailTaken   = errors.New("a contact with this email already exists in the organization")
	ErrValidation   = errors.New("validation failed")
	ErrUnknownValue = errors.New("unknown preference value")
)
