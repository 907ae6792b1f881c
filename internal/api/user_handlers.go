package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/irfanmohammad01/real-estate-marketing/internal/pkg/httputil"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/user"
)

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context(), principal(r).OrgID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.OK(w, map[string]any{"users": users})
}

type createUserRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	u, err := s.users.Create(r.Context(), principal(r).OrgID, user.CreateInput{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
		RoleName: req.Role,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.Created(w, u)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.users.Get(r.Context(), principal(r).OrgID, chi.URLParam(r, "userID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.OK(w, u)
}

type updateUserRequest struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
	Role     *string `json:"role"`
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var req updateUserRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	u, err := s.users.Update(r.Context(), principal(r).OrgID, chi.URLParam(r, "userID"), user.UpdateInput{
		FullName: req.FullName,
		Phone:    req.Phone,
		RoleName: req.Role,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.OK(w, u)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	p := principal(r)
	id := chi.URLParam(r, "userID")
	if id == p.ID {
		httputil.Unprocessable(w, "cannot delete your own account")
		return
	}
	if err := s.users.Delete(r.Context(), p.OrgID, id); err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.NoContent(w)
}
