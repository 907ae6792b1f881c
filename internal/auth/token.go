package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Principal kinds carried in the token "kind" claim.
const (
	KindSuper = "super"
	KindUser  = "user"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Claims is the JWT claim set for both realms. OrgID and Role are empty
// for super-user tokens.
type Claims struct {
	Kind  string `json:"kind"`
	OrgID string `json:"org_id,omitempty"`
	Role  string `json:"role,omitempty"`
	JTI   string `json:"jti"`
	jwt.RegisteredClaims
}

// Manager issues and verifies HS256 tokens.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager creates a token manager with the given signing secret and
// token lifetime.
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the given principal and returns the token string
// plus the jti embedded in it. The caller persists the jti so the token can
// be revoked by rotating it.
func (m *Manager) Issue(kind, subject, orgID, role string) (token, jti string, err error) {
	jti = uuid.New().String()
	now := time.Now()
	claims := Claims{
		Kind:  kind,
		OrgID: orgID,
		Role:  role,
		JTI:   jti,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", "", err
	}
	return token, jti, nil
}

// Parse verifies the signature and expiry and returns the claims.
func (m *Manager) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Kind != KindSuper && claims.Kind != KindUser {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" || claims.JTI == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
