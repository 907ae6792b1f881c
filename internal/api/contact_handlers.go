package api

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/irfanmohammad01/real-estate-marketing/internal/domain"
	"github.com/irfanmohammad01/real-estate-marketing/internal/pkg/httputil"
	"github.com/irfanmohammad01/real-estate-marketing/internal/pkg/logger"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/contact"
)

func (s *Server) handleListPreferences(w http.ResponseWriter, r *http.Request) {
	t, err := s.contacts.Taxonomy(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.OK(w, t)
}

func (s *Server) handleListContacts(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	contacts, total, err := s.contacts.List(r.Context(), principal(r).OrgID, contact.ListFilter{
		Search: r.URL.Query().Get("search"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.OK(w, map[string]any{
		"contacts": contacts,
		"total":    total,
		"limit":    limit,
		"offset":   offset,
	})
}

type contactRequest struct {
	FirstName   string                 `json:"first_name"`
	LastName    string                 `json:"last_name"`
	Email       string                 `json:"email"`
	Phone       string                 `json:"phone"`
	Preferences domain.PreferenceNames `json:"preferences"`
}

func (s *Server) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	c, err := s.contacts.Create(r.Context(), principal(r).OrgID, contact.Input{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		Preferences: req.Preferences,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.Created(w, c)
}

func (s *Server) handleGetContact(w http.ResponseWriter, r *http.Request) {
	c, err := s.contacts.Get(r.Context(), principal(r).OrgID, chi.URLParam(r, "contactID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.OK(w, c)
}

func (s *Server) handleUpdateContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	c, err := s.contacts.Update(r.Context(), principal(r).OrgID, chi.URLParam(r, "contactID"), contact.Input{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		Preferences: req.Preferences,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.OK(w, c)
}

func (s *Server) handleDeleteContact(w http.ResponseWriter, r *http.Request) {
	if err := s.contacts.Delete(r.Context(), principal(r).OrgID, chi.URLParam(r, "contactID")); err != nil {
		writeServiceError(w, err)
		return
	}
	httputil.NoContent(w)
}

// handleImportContacts accepts a CSV upload, validates it synchronously
// and queues a background import job. 202 means "queued", not "imported".
func (s *Server) handleImportContacts(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.cfg.Import.MaxFileSize); err != nil {
		httputil.BadRequest(w, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.BadRequest(w, "file field is required")
		return
	}
	defer file.Close()

	// Spool to a temp file the worker process can read; keep the .csv
	// extension so validation sees it.
	tmpPath := filepath.Join(s.cfg.Import.TempDir,
		"import-"+uuid.New().String()+filepath.Ext(header.Filename))
	tmp, err := os.Create(tmpPath)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	if _, err := io.Copy(tmp, file); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		httputil.InternalError(w, err)
		return
	}
	tmp.Close()

	if err := s.importer.ValidateFile(tmpPath); err != nil {
		os.Remove(tmpPath)
		switch {
		case errors.Is(err, contact.ErrNotCSV),
			errors.Is(err, contact.ErrEmptyFile),
			errors.Is(err, contact.ErrBadHeaders),
			errors.Is(err, contact.ErrFileTooLarge):
			httputil.Unprocessable(w, err.Error())
		default:
			httputil.InternalError(w, err)
		}
		return
	}

	orgID := principal(r).OrgID
	payload := domain.ImportPayload{OrganizationID: orgID, Path: tmpPath}
	jobID, err := s.jobs.Enqueue(r.Context(), domain.JobContactImport, payload, time.Now())
	if err != nil {
		os.Remove(tmpPath)
		httputil.InternalError(w, err)
		return
	}

	logger.Info("contact import queued", "org_id", orgID, "job_id", jobID)
	httputil.Accepted(w, map[string]any{
		"job_id": jobID,
		"status": "queued",
	})
}

// pagination reads limit/offset query params with sane bounds.
func pagination(r *http.Request) (limit, offset int) {
	limit = 50
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 && v <= 200 {
		limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v >= 0 {
		offset = v
	}
	return limit, offset
}
