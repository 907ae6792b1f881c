package auth

import (
	"context"

	"github.com/irfanmohammad01/real-estate-marketing/internal/domain"
)

type contextKey int

const principalKey contextKey = iota

// Principal is the authenticated caller attached to the request context.
type Principal struct {
	Kind  string // KindSuper or KindUser
	ID    string
	OrgID string // empty for super users
	Role  string // SUPER_USER, ORG_ADMIN or ORG_USER
	JTI   string
}

// IsSuper reports whether the principal is a super user.
func (p Principal) IsSuper() bool { return p.Kind == KindSuper }

// WithPrincipal returns a context carrying the authenticated principal.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// FromContext extracts the authenticated principal, if any.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}

// PrincipalFor builds a Principal from a tenant user record.
func PrincipalFor(u *domain.User) Principal {
	return Principal{
		Kind:  KindUser,
		ID:    u.ID,
		OrgID: u.OrganizationID,
		Role:  u.RoleName,
		JTI:   u.JTI,
	}
}
