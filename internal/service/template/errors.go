package template

import "errors"

// Sentinel errors for the template service layer.
var (
	ErrNotFound     = errors.New("email template not found")
	ErrTypeNotFound = errors.New("email type not found")
	ErrTypeInUse    = errors.New("email type is referenced by templates")
	ErrValidation   = errors.New("validation failed")
)
