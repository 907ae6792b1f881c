package api

import (
	"errors"
	"net/http"

	"github.com/irfanmohammad01/real-estate-marketing/internal/pkg/httputil"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/audience"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/campaign"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/contact"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/organization"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/template"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/user"
)

// writeServiceError maps service-layer sentinels onto HTTP responses.
// Anything unmapped is a 500 with a generic body.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, organization.ErrNotFound),
		errors.Is(err, user.ErrNotFound),
		errors.Is(err, contact.ErrNotFound),
		errors.Is(err, audience.ErrNotFound),
		errors.Is(err, template.ErrNotFound),
		errors.Is(err, template.ErrTypeNotFound),
		errors.Is(err, campaign.ErrNotFound),
		errors.Is(err, campaign.ErrTemplateNotFound),
		errors.Is(err, campaign.ErrAudienceNotFound):
		httputil.NotFound(w, err.Error())

	case errors.Is(err, organization.ErrNameTaken),
		errors.Is(err, user.ErrEmailTaken),
		errors.Is(err, contact.ErrEmailTaken),
		errors.Is(err, template.ErrTypeInUse),
		errors.Is(err, campaign.ErrInvalidTransition):
		httputil.Error(w, http.StatusConflict, err.Error())

	case errors.Is(err, organization.ErrInvalidName),
		errors.Is(err, organization.ErrNotDeleted),
		errors.Is(err, audience.ErrNotDeleted),
		errors.Is(err, user.ErrValidation),
		errors.Is(err, user.ErrInvalidRole),
		errors.Is(err, user.ErrOrgNotFound),
		errors.Is(err, contact.ErrValidation),
		errors.Is(err, contact.ErrUnknownValue),
		errors.Is(err, audience.ErrValidation),
		errors.Is(err, template.ErrValidation),
		errors.Is(err, campaign.ErrValidation),
		errors.Is(err, campaign.ErrInvalidSchedule):
		httputil.Unprocessable(w, err.Error())

	case errors.Is(err, user.ErrInvalidCredentials):
		httputil.Unauthorized(w, err.Error())

	default:
		httputil.InternalError(w, err)
	}
}
