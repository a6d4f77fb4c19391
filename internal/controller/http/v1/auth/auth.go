package auth

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"venue-allotment/backend/foundation/web"
	"venue-allotment/backend/internal/auth"
	"venue-allotment/backend/internal/entity"
	"venue-allotment/backend/internal/metrics"
)

var errInvalidCredentials = errors.New("invalid credentials")

type Controller struct {
	faculty Faculty
	tokens  Tokens
}

func NewController(faculty Faculty, tokens Tokens) *Controller {
	return &Controller{faculty: faculty, tokens: tokens}
}

type SignInRequest struct {
	Email    *string `json:"email"    form:"email"`
	Password *string `json:"password" form:"password"`
}

// SignIn checks the password against the stored mobile number. Unknown email
// and wrong password fail the same way.
func (uc Controller) SignIn(c *web.Context) error {
	var data SignInRequest
	if err := c.BindFunc(&data, "Email", "Password"); err != nil {
		metrics.Logins.WithLabelValues(metrics.Result(err)).Inc()
		return c.RespondError(err)
	}

	detail, err := uc.authenticate(c.Ctx, strings.TrimSpace(*data.Email), *data.Password)
	metrics.Logins.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		return c.RespondError(err)
	}

	token, expiresAt, err := uc.tokens.GenerateToken(detail.ID, auth.RoleOf(detail.IsAdmin))
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"status": true,
		"data": map[string]interface{}{
			"access_token": token,
			"expires_at":   expiresAt,
			"faculty_id":   detail.ID,
			"name":         detail.Name,
			"is_admin":     detail.IsAdmin,
		},
		"error": nil,
	}, http.StatusOK)
}

func (uc Controller) authenticate(ctx context.Context, email, password string) (entity.Faculty, error) {
	detail, err := uc.faculty.GetByEmail(ctx, email)
	if err != nil {
		if status := web.StatusOf(err); status == http.StatusUnauthorized || status == http.StatusNotFound {
			return entity.Faculty{}, web.NewRequestError(errInvalidCredentials, http.StatusUnauthorized)
		}
		return entity.Faculty{}, err
	}

	if subtle.ConstantTimeCompare([]byte(detail.MobileNumber), []byte(password)) != 1 {
		return entity.Faculty{}, web.NewRequestError(errInvalidCredentials, http.StatusUnauthorized)
	}

	return detail, nil
}

func (uc Controller) SignOut(c *web.Context) error {
	claims, ok := auth.GetClaims(c.Ctx)
	if !ok {
		return c.RespondError(web.NewRequestError(auth.ErrMissingToken, http.StatusUnauthorized))
	}

	if err := uc.tokens.Revoke(c.Ctx, claims); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) CurrentIdentity(c *web.Context) error {
	claims, ok := auth.GetClaims(c.Ctx)
	if !ok {
		return c.RespondError(web.NewRequestError(auth.ErrMissingToken, http.StatusUnauthorized))
	}

	detail, err := uc.faculty.GetByID(c.Ctx, claims.UserId)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"id":       detail.ID,
			"name":     detail.Name,
			"email":    detail.EmailID,
			"is_admin": detail.IsAdmin,
			"rfid_tag": detail.RFIDTag,
		},
		"status": true,
	}, http.StatusOK)
}
