package importer

import (
	"net/http"

	"github.com/pkg/errors"

	"venue-allotment/backend/foundation/web"
	"venue-allotment/backend/internal/repository/postgres/importer"
	"venue-allotment/backend/internal/service"
)

type Controller struct {
	importer Importer
}

func NewController(importer Importer) *Controller {
	return &Controller{importer: importer}
}

func (uc Controller) ImportFaculty(c *web.Context) error {
	sheet, err := uc.readSheet(c, importer.FacultyColumns)
	if err != nil {
		return c.RespondError(err)
	}

	response, err := uc.importer.ImportFaculty(c.Ctx, sheet)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) ImportVenues(c *web.Context) error {
	sheet, err := uc.readSheet(c, importer.VenueColumns)
	if err != nil {
		return c.RespondError(err)
	}

	response, err := uc.importer.ImportVenues(c.Ctx, sheet)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) readSheet(c *web.Context, columns []string) (service.Sheet, error) {
	file, err := c.FormFile("file")
	if err != nil {
		return service.Sheet{}, web.NewRequestError(errors.Wrap(err, "file is required"), http.StatusBadRequest)
	}

	workbook, err := service.OpenWorkbook(file)
	if err != nil {
		return service.Sheet{}, err
	}
	defer workbook.Close()

	return service.ReadSheet(workbook, columns...)
}
