package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/irfanmohammad01/real-estate-marketing/internal/pkg/httputil"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/template"
)

type emailTypeRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleListEmailTypes(w http.ResponseWriter, r *http.Request) {
	types, err := s.templates.ListTypes(r.Context(), principal(r).OrgID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.OK(w, map[string]any{"email_types": types})
}

func (s *Server) handleCreateEmailType(w http.ResponseWriter, r *http.Request) {
	var req emailTypeRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	t, err := s.templates.CreateType(r.Context(), principal(r).OrgID, req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.Created(w, t)
}

func (s *Server) handleUpdateEmailType(w http.ResponseWriter, r *http.Request) {
	var req emailTypeRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	t, err := s.templates.UpdateType(r.Context(), principal(r).OrgID, chi.URLParam(r, "typeID"), req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.OK(w, t)
}

func (s *Server) handleDeleteEmailType(w http.ResponseWriter, r *http.Request) {
	if err := s.templates.DeleteType(r.Context(), principal(r).OrgID, chi.URLParam(r, "typeID")); err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.NoContent(w)
}

type templateRequest struct {
	EmailTypeID string `json:"email_type_id"`
	Name        string `json:"name"`
	Subject     string `json:"subject"`
	Preheader   string `json:"preheader"`
	FromName    string `json:"from_name"`
	FromEmail   string `json:"from_email"`
	ReplyTo     string `json:"reply_to"`
	HTMLBody    string `json:"html_body"`
	TextBody    string `json:"text_body"`
}

func (r templateRequest) input() template.Input {
	return template.Input{
		EmailTypeID: r.EmailTypeID,
		Name:        r.Name,
		Subject:     r.Subject,
		Preheader:   r.Preheader,
		FromName:    r.FromName,
		FromEmail:   r.FromEmail,
		ReplyTo:     r.ReplyTo,
		HTMLBody:    r.HTMLBody,
		TextBody:    r.TextBody,
	}
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := s.templates.List(r.Context(), principal(r).OrgID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.OK(w, map[string]any{"email_templates": templates})
}

func (s *Server) handleCreateTemplate(w http.ResponseWriter, r *http.Request) {
	var req templateRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	t, err := s.templates.Create(r.Context(), principal(r).OrgID, req.input())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.Created(w, t)
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	t, err := s.templates.Get(r.Context(), principal(r).OrgID, chi.URLParam(r, "templateID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.OK(w, t)
}

func (s *Server) handleUpdateTemplate(w http.ResponseWriter, r *http.Request) {
	var req templateRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	t, err := s.templates.Update(r.Context(), principal(r).OrgID, chi.URLParam(r, "templateID"), req.input())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.OK(w, t)
}

func (s *Server) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := s.templates.Delete(r.Context(), principal(r).OrgID, chi.URLParam(r, "templateID")); err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.NoContent(w)
}
