package campaign

import "errors"

// Sentinel errors for the campaign service layer.
var (
	ErrNotFound          = errors.New("campaign not found")
	ErrValidation        = errors.New("validation failed")
	ErrTemplateNotFound  = errors.New("email template not found")
	ErrAudienceNotFound  = errors.New("audience not found")
	ErrInvalidSchedule   = errors.New("invalid schedule")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotExecutable     = errors.New("campaign is not in an executable state")
)
