// Package api exposes the HTTP surface of the marketing platform:
// authentication, tenant administration and the per-organization
// resources (contacts, audiences, templates, campaigns).
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/irfanmohammad01/real-estate-marketing/internal/auth"
	"github.com/irfanmohammad01/real-estate-marketing/internal/config"
	"github.com/irfanmohammad01/real-estate-marketing/internal/pkg/logger"
	"github.com/irfanmohammad01/real-estate-marketing/internal/pkg/ratelimit"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/audience"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/campaign"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/contact"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/job"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/organization"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/template"
	"github.com/irfanmohammad01/real-estate-marketing/internal/service/user"
)

// Server is the API server. It owns the router and the HTTP listener.
type Server struct {
	cfg     config.Config
	router  *chi.Mux
	server  *http.Server
	limiter *ratelimit.Limiter

	authMW    *auth.Middleware
	authFlows *user.Authenticator
	orgs      *organization.Service
	users     *user.Service
	contacts  *contact.Service
	importer  *contact.Importer
	audiences *audience.Service
	templates *template.Service
	campaigns *campaign.Service
	jobs      job.Repository
}

// Deps bundles everything the server needs.
type Deps struct {
	Config    config.Config
	AuthMW    *auth.Middleware
	AuthFlows *user.Authenticator
	Orgs      *organization.Service
	Users     *user.Service
	Contacts  *contact.Service
	Importer  *contact.Importer
	Audiences *audience.Service
	Templates *template.Service
	Campaigns *campaign.Service
	Jobs      job.Repository
	Limiter   *ratelimit.Limiter
}

// NewServer creates the API server and mounts all routes.
func NewServer(d Deps) *Server {
	s := &Server{
		cfg:       d.Config,
		limiter:   d.Limiter,
		authMW:    d.AuthMW,
		authFlows: d.AuthFlows,
		orgs:      d.Orgs,
		users:     d.Users,
		contacts:  d.Contacts,
		importer:  d.Importer,
		audiences: d.Audiences,
		templates: d.Templates,
		campaigns: d.Campaigns,
		jobs:      d.Jobs,
	}
	s.router = s.routes()
	return s
}

// ListenAndServe starts the HTTP listener.
func (s *Server) ListenAndServe(addr string) error {
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	logger.Info("api server listening", "addr", addr)
	return s.server.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler { return s.router }
