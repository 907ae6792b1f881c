package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/irfanmohammad01/real-estate-marketing/internal/pkg/httputil"
)

type organizationRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) handleListOrganizations(w http.ResponseWriter, r *http.Request) {
	includeDeleted := r.URL.Query().Get("include_deleted") == "true"
	orgs, err := s.orgs.List(r.Context(), includeDeleted)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.OK(w, map[string]any{"organizations": orgs})
}

func (s *Server) handleCreateOrganization(w http.ResponseWriter, r *http.Request) {
	var req organizationRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	o, err := s.orgs.Create(r.Context(), req.Name, req.Description)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.Created(w, o)
}

func (s *Server) handleGetOrganization(w http.ResponseWriter, r *http.Request) {
	o, err := s.orgs.Get(r.Context(), chi.URLParam(r, "orgID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.OK(w, o)
}

func (s *Server) handleUpdateOrganization(w http.ResponseWriter, r *http.Request) {
	var req organizationRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	o, err := s.orgs.Update(r.Context(), chi.URLParam(r, "orgID"), req.Name, req.Description)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.OK(w, o)
}

func (s *Server) handleDeleteOrganization(w http.ResponseWriter, r *http.Request) {
	if err := s.orgs.Delete(r.Context(), chi.URLParam(r, "orgID")); err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.NoContent(w)
}

func (s *Server) handleRestoreOrganization(w http.ResponseWriter, r *http.Request) {
	o, err := s.orgs.Restore(r.Context(), chi.URLParam(r, "orgID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.OK(w, o)
}

type createOrgAdminRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// handleCreateOrgAdmin provisions the first admin of a tenant. The
// generated password appears in this response only.
func (s *Server) handleCreateOrgAdmin(w http.ResponseWriter, r *http.Request) {
	var req createOrgAdminRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	u, password, err := s.users.CreateOrgAdmin(r.Context(), chi.URLParam(r, "orgID"), req.FullName, req.Email, req.Phone)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.Created(w, map[string]any{
		"user":     u,
		"password": password,
	})
}
