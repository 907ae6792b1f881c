package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/irfanmohammad01/real-estate-marketing/internal/domain"
	"github.com/irfanmohammad01/real-estate-marketing/internal/pkg/httputil"
	"github.com/irfanmohammad01/real-estate-marketing/internal/pkg/logger"
)

// PrincipalStore looks up stored principals so the middleware can verify
// that a token's jti is still current. A mismatch means the token was
// revoked by logout or superseded by a newer login.
type PrincipalStore interface {
	LookupUser(ctx context.Context, id string) (*domain.User, error)
	LookupSuperUser(ctx context.Context, id string) (*domain.SuperUser, error)
}

// Middleware validates bearer tokens and attaches the Principal to the
// request context.
type Middleware struct {
	tokens *Manager
	store  PrincipalStore
}

// NewMiddleware creates the authentication middleware.
func NewMiddleware(tokens *Manager, store PrincipalStore) *Middleware {
	return &Middleware{tokens: tokens, store: store}
}

// Authenticate rejects requests without a valid, unrevoked bearer token.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			httputil.Unauthorized(w, "authorization header is required")
			return
		}
		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(header, bearerPrefix) {
			httputil.Unauthorized(w, "invalid authorization header format")
			return
		}
		tokenString := strings.TrimSpace(header[len(bearerPrefix):])
		if tokenString == "" {
			httputil.Unauthorized(w, "token is empty")
			return
		}

		claims, err := m.tokens.Parse(tokenString)
		if err != nil {
			if errors.Is(err, ErrExpiredToken) {
				httputil.Unauthorized(w, "token expired")
				return
			}
			httputil.Unauthorized(w, "invalid token")
			return
		}

		principal, err := m.resolve(r.Context(), claims)
		if err != nil {
			httputil.Unauthorized(w, "invalid token")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
	})
}

// resolve checks the stored jti against the token's and builds the
// Principal. Deleted or inactive principals fail closed.
func (m *Middleware) resolve(ctx context.Context, claims *Claims) (Principal, error) {
	if claims.Kind == KindSuper {
		su, err := m.store.LookupSuperUser(ctx, claims.Subject)
		if err != nil {
			return Principal{}, err
		}
		if su.JTI == "" || su.JTI != claims.JTI {
			return Principal{}, ErrInvalidToken
		}
		return Principal{
			Kind: KindSuper,
			ID:   su.ID,
			Role: domain.RoleSuperUser,
			JTI:  su.JTI,
		}, nil
	}

	u, err := m.store.LookupUser(ctx, claims.Subject)
	if err != nil {
		return Principal{}, err
	}
	if u.DeletedAt != nil || u.Status != domain.UserStatusActive {
		return Principal{}, ErrInvalidToken
	}
	if u.JTI == "" || u.JTI != claims.JTI {
		return Principal{}, ErrInvalidToken
	}
	return PrincipalFor(u), nil
}

// RequireRole returns middleware allowing only principals whose role is in
// the given list. Denials are logged with the actor and path so RBAC
// problems are diagnosable.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := FromContext(r.Context())
			if !ok {
				httputil.Unauthorized(w, "not authenticated")
				return
			}
			for _, role := range roles {
				if p.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			logger.Warn("access denied",
				"actor_id", p.ID,
				"role", p.Role,
				"path", r.URL.Path,
				"reason", "role not permitted")
			httputil.Forbidden(w, "insufficient permissions")
		})
	}
}

// RequireSuper allows only super-user principals.
func RequireSuper(next http.Handler) http.Handler {
	return RequireRole(domain.RoleSuperUser)(next)
}
