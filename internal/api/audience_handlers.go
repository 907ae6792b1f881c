package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/irfanmohammad01/real-estate-marketing/internal/domain"
	"github.com/irfanmohammad01/real-estate-marketing/internal/pkg/httputil"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/audience"
)

func (s *Server) handleListAudiences(w http.ResponseWriter, r *http.Request) {
	audiences, err := s.audiences.List(r.Context(), principal(r).OrgID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.OK(w, map[string]any{"audiences": audiences})
}

type audienceRequest struct {
	Name    string                 `json:"name"`
	Filters domain.PreferenceNames `json:"filters"`
}

func (s *Server) handleCreateAudience(w http.ResponseWriter, r *http.Request) {
	var req audienceRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	a, err := s.audiences.Create(r.Context(), principal(r).OrgID, audience.Input{
		Name:    req.Name,
		Filters: req.Filters,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.Created(w, a)
}

func (s *Server) handleGetAudience(w http.ResponseWriter, r *http.Request) {
	a, count, err := s.audiences.Get(r.Context(), principal(r).OrgID, chi.URLParam(r, "audienceID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.OK(w, map[string]any{
		"audience":      a,
		"contact_count": count,
	})
}

func (s *Server) handleUpdateAudience(w http.ResponseWriter, r *http.Request) {
	var req audienceRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	a, err := s.audiences.Update(r.Context(), principal(r).OrgID, chi.URLParam(r, "audienceID"), audience.Input{
		Name:    req.Name,
		Filters: req.Filters,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.OK(w, a)
}

func (s *Server) handleDeleteAudience(w http.ResponseWriter, r *http.Request) {
	if err := s.audiences.Delete(r.Context(), principal(r).OrgID, chi.URLParam(r, "audienceID")); err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.NoContent(w)
}

func (s *Server) handleRestoreAudience(w http.ResponseWriter, r *http.Request) {
	a, err := s.audiences.Restore(r.Context(), principal(r).OrgID, chi.URLParam(r, "audienceID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.OK(w, a)
}

func (s *Server) handleAudienceContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := s.audiences.Contacts(r.Context(), principal(r).OrgID, chi.URLParam(r, "audienceID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.OK(w, map[string]any{
		"contacts": contacts,
		"total":    len(contacts),
	})
}
