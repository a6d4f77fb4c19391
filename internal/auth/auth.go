// Package auth issues and validates the bearer tokens that carry a faculty
// identity through the API.
package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"venue-allotment/backend/foundation/web"
)

// Roles carried in the token.
const (
	RoleAdmin   = "ADMIN"
	RoleFaculty = "FACULTY"
)

type ctxKey int

// Key is used to store/retrieve Claims in a context.Context.
const Key ctxKey = 1

var (
	ErrMissingToken = errors.New("missing bearer token")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrRevokedToken = errors.New("token has been revoked")
)

// Claims is the token payload.
type Claims struct {
	jwt.StandardClaims
	UserId int    `json:"user_id"`
	Role   string `json:"role"`
}

// Authorized reports whether the claims hold any of roles.
func (c Claims) Authorized(roles ...string) bool {
	for _, role := range roles {
		if c.Role == role {
			return true
		}
	}
	return false
}

// RoleOf maps the faculty admin flag onto a token role.
func RoleOf(isAdmin bool) string {
	if isAdmin {
		return RoleAdmin
	}
	return RoleFaculty
}

// Revoker remembers tokens that were logged out before they expired.
type Revoker interface {
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Auth signs and validates tokens with a single process wide HMAC key.
type Auth struct {
	key      []byte
	lifetime time.Duration
	issuer   string
	revoker  Revoker
	now      func() time.Time
}

// New creates an Auth. The key must not be empty.
func New(key string, lifetime time.Duration, revoker Revoker) (*Auth, error) {
	if key == "" {
		return nil, errors.New("auth: signing key is not configured")
	}
	if lifetime <= 0 {
		return nil, errors.New("auth: token lifetime must be positive")
	}

	return &Auth{
		key:      []byte(key),
		lifetime: lifetime,
		issuer:   "venue-allotment",
		revoker:  revoker,
		now:      time.Now,
	}, nil
}

// GenerateToken issues a signed token for the faculty id.
func (a *Auth) GenerateToken(userID int, role string) (string, time.Time, error) {
	now := a.now()
	expiresAt := now.Add(a.lifetime)

	claims := Claims{
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			Issuer:    a.issuer,
			IssuedAt:  now.Unix(),
			ExpiresAt: expiresAt.Unix(),
		},
		UserId: userID,
		Role:   role,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.key)
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, "signing token")
	}

	return token, expiresAt, nil
}

// ValidateToken parses tokenStr and returns its claims. The returned error is
// one of ErrMissingToken, ErrInvalidToken, ErrExpiredToken or ErrRevokedToken.
func (a *Auth) ValidateToken(ctx context.Context, tokenStr string) (Claims, error) {
	if tokenStr == "" {
		return Claims{}, ErrMissingToken
	}

	var claims Claims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.key, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return Claims{}, ErrExpiredToken
		}
		return Claims{}, ErrInvalidToken
	}
	if !token.Valid || claims.UserId == 0 {
		return Claims{}, ErrInvalidToken
	}

	if a.revoker != nil && claims.Id != "" {
		revoked, err := a.revoker.IsRevoked(ctx, claims.Id)
		if err != nil {
			return Claims{}, web.NewRequestError(errors.Wrap(err, "checking token revocation"), http.StatusServiceUnavailable)
		}
		if revoked {
			return Claims{}, ErrRevokedToken
		}
	}

	return claims, nil
}

// Revoke invalidates the token described by claims until it would have expired.
func (a *Auth) Revoke(ctx context.Context, claims Claims) error {
	if a.revoker == nil || claims.Id == "" {
		return nil
	}

	until := time.Unix(claims.ExpiresAt, 0)
	if !until.After(a.now()) {
		return nil
	}

	if err := a.revoker.Revoke(ctx, claims.Id, until); err != nil {
		return web.NewRequestError(errors.Wrap(err, "revoking token"), http.StatusServiceUnavailable)
	}
	return nil
}

// GetClaims returns the claims stored in ctx by the authentication middleware.
func GetClaims(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(Key).(Claims)
	return claims, ok
}
