package allocation

import (
	"net/http"
	"reflect"

	"venue-allotment/backend/foundation/web"
	"venue-allotment/backend/internal/repository/postgres/allocation"
)

type Controller struct {
	allocation Allocation
}

func NewController(allocation Allocation) *Controller {
	return &Controller{allocation: allocation}
}

func (uc Controller) Generate(c *web.Context) error {
	var request allocation.GenerateRequest
	if err := c.BindFunc(&request, "Date", "TimeSlot", "FacultyPerVenue"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.allocation.Generate(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetList(c *web.Context) error {
	var filter allocation.Filter

	if date, ok := c.GetQueryFunc(reflect.String, "date").(*string); ok {
		filter.Date = date
	}
	if slot, ok := c.GetQueryFunc(reflect.String, "time_slot").(*string); ok {
		filter.TimeSlot = slot
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, err := uc.allocation.GetList(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"results": list,
			"count":   len(list),
		},
		"status": true,
	}, http.StatusOK)
}
