package service

import (
	"bytes"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"venue-allotment/backend/internal/repository/postgres/attendance"
)

var attendanceHeaders = []string{"ID", "Faculty ID", "Faculty Name", "RFID Tag", "Allocation ID", "Venue", "Time Slot", "Date", "Present"}

// AttendanceExcel renders attendance records as an .xlsx workbook.
func AttendanceExcel(records []attendance.GetListResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Attendance"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, errors.Wrap(err, "naming sheet")
	}

	if err := f.SetSheetRow(sheet, "A1", &attendanceHeaders); err != nil {
		return nil, errors.Wrap(err, "writing header")
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}

		row := []interface{}{
			r.ID,
			r.FacultyID,
			r.FacultyName,
			deref(r.RFIDTag),
			r.AllocationID,
			r.VenueName,
			deref(r.TimeSlot),
			r.Date.String(),
			yesNo(r.IsPresent),
		}
		if err = f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, errors.Wrapf(err, "writing row %d", i+2)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, errors.Wrap(err, "writing workbook")
	}

	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
