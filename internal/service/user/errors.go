package user

import "errors"

// Sentinel errors for the user service layer.
var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidRole        = errors.New("unknown role")
	ErrOrgNotFound        = errors.New("organization not found")
	ErrValidation         = errors.New("validation failed")
)
