package audience

import "errors"

// Sentinel errors for the audience service layer.
var (
	ErrNotFound   = errors.New("audience not found")
	ErrValidation = errors.New("validation failed")
	ErrNotDeleted = errors.New("audience is not deleted")
)
