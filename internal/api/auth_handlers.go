package api

import (
	"net/http"

	"github.com/irfanmohammad01/real-estate-marketing/internal/pkg/httputil"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	result, err := s.authFlows.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.OK(w, map[string]any{
		"token": result.Token,
		"user": map[string]any{
			"id":              result.User.ID,
			"organization_id": result.User.OrganizationID,
			"full_name":       result.User.FullName,
			"email":           result.User.Email,
			"role":            result.User.RoleName,
		},
	})
}

func (s *Server) handleSuperLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	result, err := s.authFlows.SuperLogin(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.OK(w, map[string]any{
		"token": result.Token,
		"super_user": map[string]any{
			"id":    result.Super.ID,
			"email": result.Super.Email,
		},
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.authFlows.Logout(r.Context(), principal(r)); err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.NoContent(w)
}
