package faculty

import (
	"fmt"
	"net/http"
	"reflect"

	"github.com/pkg/errors"

	"venue-allotment/backend/foundation/web"
	"venue-allotment/backend/internal/repository/postgres/faculty"
	"venue-allotment/backend/internal/service"
)

type Controller struct {
	faculty Faculty
}

func NewController(faculty Faculty) *Controller {
	return &Controller{faculty: faculty}
}

func (uc Controller) GetList(c *web.Context) error {
	var filter faculty.Filter

	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if offset, ok := c.GetQueryFunc(reflect.Int, "offset").(*int); ok {
		filter.Offset = offset
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if search, ok := c.GetQueryFunc(reflect.String, "search").(*string); ok {
		filter.Search = search
	}
	if isAdmin, ok := c.GetQueryFunc(reflect.Bool, "is_admin").(*bool); ok {
		filter.IsAdmin = isAdmin
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, count, err := uc.faculty.GetList(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"results": list,
			"count":   count,
		},
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetDetailById(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.faculty.GetDetailById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

// GetBadge writes the faculty member's RFID tag as a PNG QR code.
func (uc Controller) GetBadge(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	detail, err := uc.faculty.GetDetailById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}
	if detail.RFIDTag == nil {
		return c.RespondError(web.NewRequestError(errors.New("faculty has no rfid tag"), http.StatusNotFound))
	}

	png, err := service.BadgeQR(*detail.RFIDTag)
	if err != nil {
		return c.RespondError(err)
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=badge_%d.png", detail.ID))
	c.Data(http.StatusOK, "image/png", png)

	return nil
}

func (uc Controller) Create(c *web.Context) error {
	var request faculty.CreateRequest
	if err := c.BindFunc(&request, "Name", "MobileNumber", "EmailID"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.faculty.Create(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) Delete(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	if err := uc.faculty.Delete(c.Ctx, id); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}
