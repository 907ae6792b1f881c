package organization

import "errors"

// Sentinel errors for the organization service layer.
var (
	ErrNotFound    = errors.New("organization not found")
	ErrNameTaken   = errors.New("organization name already in use")
	ErrInvalidName = errors.New("organization name is required and must be at most 150 characters")
	ErrNotDeleted  = errors.New("organization is not deleted")
)
