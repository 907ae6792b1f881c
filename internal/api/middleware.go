package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/irfanmohammad01/real-estate-marketing/internal/auth"
	"github.com/irfanmohammad01/real-estate-marketing/internal/pkg/httputil"
	"github.com/irfanmohammad01/real-estate-marketing/internal/pkg/logger"
)

// requestLogger logs one line per request with principal context when
// available.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		fields := []interface{}{
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if p, ok := auth.FromContext(r.Context()); ok {
			fields = append(fields, "principal_id", p.ID)
		}
		logger.Info("http request", fields...)
	})
}

// rateLimit enforces the per-principal (or per-IP before auth) request
// budget. A nil limiter disables limiting, for dev setups without Redis.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter == nil || !s.cfg.RateLimit.Enabled {
			next.ServeHTTP(w, r)
			return
		}
		key := r.RemoteAddr
		if p, ok := auth.FromContext(r.Context()); ok {
			key = p.ID
		}
		allowed, err := s.limiter.Allow(r.Context(), key)
		if err != nil {
			logger.Warn("rate limiter unavailable", "error", err.Error())
		}
		if !allowed {
			httputil.TooManyRequests(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireTenant rejects principals without an organization (super users)
// on tenant-scoped routes.
func requireTenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := auth.FromContext(r.Context())
		if !ok {
			httputil.Unauthorized(w, "not authenticated")
			return
		}
		if p.IsSuper() || p.OrgID == "" {
			httputil.Forbidden(w, "tenant credentials required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// principal pulls the authenticated principal; routes behind Authenticate
// always have one.
func principal(r *http.Request) auth.Principal {
	p, _ := auth.FromContext(r.Context())
	return p
}
