package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/irfanmohammad01/real-estate-marketing/internal/auth"
	"github.com/irfanmohammad01/real-estate-marketing/internal/domain"
	"github.com/irfanmohammad01/real-estate-marketing/internal/pkg/httputil"
)

func (s *Server) routes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.rateLimit)

		// Public authentication endpoints.
		r.Post("/auth/super/login", s.handleSuperLogin)
		r.Post("/auth/login", s.handleLogin)

		// Everything below requires a valid token.
		r.Group(func(r chi.Router) {
			r.Use(s.authMW.Authenticate)

			r.Post("/auth/logout", s.handleLogout)

			// Platform administration, super users only.
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireSuper)

				r.Route("/organizations", func(r chi.Router) {
					r.Get("/", s.handleListOrganizations)
					r.Post("/", s.handleCreateOrganization)
					r.Route("/{orgID}", func(r chi.Router) {
						r.Get("/", s.handleGetOrganization)
						r.Put("/", s.handleUpdateOrganization)
						r.Delete("/", s.handleDeleteOrganization)
						r.Post("/restore", s.handleRestoreOrganization)
						r.Post("/admins", s.handleCreateOrgAdmin)
					})
				})
			})

			// Tenant resources, organization users only.
			r.Group(func(r chi.Router) {
				r.Use(requireTenant)

				r.Route("/users", func(r chi.Router) {
					r.Use(auth.RequireRole(domain.RoleOrgAdmin))
					r.Get("/", s.handleListUsers)
					r.Post("/", s.handleCreateUser)
					r.Route("/{userID}", func(r chi.Router) {
						r.Get("/", s.handleGetUser)
						r.Put("/", s.handleUpdateUser)
						r.Delete("/", s.handleDeleteUser)
					})
				})

				r.Get("/preferences", s.handleListPreferences)

				r.Route("/contacts", func(r chi.Router) {
					r.Get("/", s.handleListContacts)
					r.Post("/", s.handleCreateContact)
					r.Post("/import", s.handleImportContacts)
					r.Route("/{contactID}", func(r chi.Router) {
						r.Get("/", s.handleGetContact)
						r.Put("/", s.handleUpdateContact)
						r.Delete("/", s.handleDeleteContact)
					})
				})

				r.Route("/audiences", func(r chi.Router) {
					r.Get("/", s.handleListAudiences)
					r.Post("/", s.handleCreateAudience)
					r.Route("/{audienceID}", func(r chi.Router) {
						r.Get("/", s.handleGetAudience)
						r.Put("/", s.handleUpdateAudience)
						r.Delete("/", s.handleDeleteAudience)
						r.Post("/restore", s.handleRestoreAudience)
						r.Get("/contacts", s.handleAudienceContacts)
					})
				})

				r.Route("/email-types", func(r chi.Router) {
					r.Get("/", s.handleListEmailTypes)
					r.Post("/", s.handleCreateEmailType)
					r.Route("/{typeID}", func(r chi.Router) {
						r.Put("/", s.handleUpdateEmailType)
						r.Delete("/", s.handleDeleteEmailType)
					})
				})

				r.Route("/email-templates", func(r chi.Router) {
					r.Get("/", s.handleListTemplates)
					r.Post("/", s.handleCreateTemplate)
					r.Route("/{templateID}", func(r chi.Router) {
						r.Get("/", s.handleGetTemplate)
						r.Put("/", s.handleUpdateTemplate)
						r.Delete("/", s.handleDeleteTemplate)
					})
				})

				r.Route("/campaigns", func(r chi.Router) {
					r.Get("/", s.handleListCampaigns)
					r.Post("/", s.handleCreateCampaign)
					r.Route("/{campaignID}", func(r chi.Router) {
						r.Get("/", s.handleGetCampaign)
						r.Post("/pause", s.handlePauseCampaign)
						r.Post("/resume", s.handleResumeCampaign)
						r.Post("/cancel", s.handleCancelCampaign)
						r.Get("/stats", s.handleCampaignStats)
						r.Get("/sends", s.handleCampaignSends)
					})
				})
			})
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, map[string]string{"status": "ok"})
}
