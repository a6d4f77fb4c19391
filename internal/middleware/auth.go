package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"venue-allotment/backend/foundation/web"
	"venue-allotment/backend/internal/auth"
	"venue-allotment/backend/internal/entity"
)

// Validator checks a bearer token. *auth.Auth implements it.
type Validator interface {
	ValidateToken(ctx context.Context, tokenStr string) (auth.Claims, error)
}

// FacultyLookup reads the current faculty record for admin re-checks.
type FacultyLookup interface {
	GetByID(ctx context.Context, id int) (entity.Faculty, error)
}

// Authenticate requires a valid bearer token. With roles, the token must carry
// one of them; RoleAdmin is additionally confirmed against the stored record
// so a demoted admin loses access before their token expires.
func Authenticate(a Validator, faculty FacultyLookup, role ...string) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(c *web.Context) error {
			// Expecting: Bearer <token>
			authStr := c.Request.Header.Get("authorization")
			if authStr == "" {
				return c.RespondError(web.NewRequestError(auth.ErrMissingToken, http.StatusUnauthorized))
			}

			parts := strings.Split(authStr, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				err := errors.Wrap(auth.ErrInvalidToken, "expected authorization header format: Bearer <token>")
				return c.RespondError(web.NewRequestError(err, http.StatusUnauthorized))
			}

			claims, err := a.ValidateToken(c.Ctx, parts[1])
			if err != nil {
				var webErr *web.Error
				if errors.As(err, &webErr) {
					return c.RespondError(err)
				}
				return c.RespondError(web.NewRequestError(err, http.StatusUnauthorized))
			}

			if len(role) > 0 && !claims.Authorized(role...) {
				return c.RespondError(web.NewRequestError(errors.New("attempted action is not allowed"), http.StatusForbidden))
			}

			if requiresAdmin(role) && faculty != nil {
				detail, err := faculty.GetByID(c.Ctx, claims.UserId)
				if err != nil {
					if web.StatusOf(err) == http.StatusNotFound {
						return c.RespondError(web.NewRequestError(errors.New("attempted action is not allowed"), http.StatusForbidden))
					}
					return c.RespondError(err)
				}
				if !detail.IsAdmin {
					return c.RespondError(web.NewRequestError(errors.New("admin privileges are required"), http.StatusForbidden))
				}
			}

			c.Ctx = context.WithValue(c.Ctx, auth.Key, claims)

			return handler(c)
		}

		return h
	}

	return m
}

func requiresAdmin(roles []string) bool {
	for _, r := range roles {
		if r == auth.RoleAdmin {
			return true
		}
	}
	return false
}
