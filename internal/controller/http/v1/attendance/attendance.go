package attendance

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"venue-allotment/backend/foundation/web"
	"venue-allotment/backend/internal/repository/postgres/attendance"
	"venue-allotment/backend/internal/service"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	pdfContentType  = "application/pdf"
)

type Controller struct {
	attendance Attendance
	pdfFont    string
}

func NewController(attendance Attendance, pdfFont string) *Controller {
	return &Controller{attendance: attendance, pdfFont: pdfFont}
}

func (uc Controller) Mark(c *web.Context) error {
	var request attendance.MarkRequest
	if err := c.BindFunc(&request, "AllocationID"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.attendance.Mark(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":    response,
		"message": "attendance marked successfully",
		"status":  true,
	}, http.StatusOK)
}

// GetList returns attendance records as JSON, or as a file when export is
// xlsx or pdf.
func (uc Controller) GetList(c *web.Context) error {
	var filter attendance.Filter

	if date, ok := c.GetQueryFunc(reflect.String, "date").(*string); ok {
		filter.Date = date
	}
	if export, ok := c.GetQueryFunc(reflect.String, "export").(*string); ok {
		format := strings.ToLower(strings.TrimSpace(*export))
		filter.Export = &format
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, err := uc.attendance.GetList(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	label := "all"
	if filter.Date != nil && *filter.Date != "" {
		label = *filter.Date
	}

	export := attendance.ExportNone
	if filter.Export != nil {
		export = *filter.Export
	}

	switch export {
	case attendance.ExportXLSX:
		data, err := service.AttendanceExcel(list)
		if err != nil {
			return c.RespondError(err)
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=attendance_%s.xlsx", label))
		c.Data(http.StatusOK, xlsxContentType, data)
		return nil
	case attendance.ExportPDF:
		data, err := service.AttendancePDF("Attendance records: "+label, list, uc.pdfFont)
		if err != nil {
			return c.RespondError(err)
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=attendance_%s.pdf", label))
		c.Data(http.StatusOK, pdfContentType, data)
		return nil
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"results": list,
			"count":   len(list),
		},
		"status": true,
	}, http.StatusOK)
}
