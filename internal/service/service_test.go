package service

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/jung-kurt/gofpdf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"venue-allotment/backend/foundation/web"
	"venue-allotment/backend/internal/repository/postgres/attendance"
)

func workbook(t *testing.T, rows ...[]interface{}) *excelize.File {
	t.Helper()
	f := excelize.NewFile()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	return f
}

func TestReadSheet(t *testing.T) {
	f := workbook(t,
		[]interface{}{"Name", " FACULTY_ID ", "Mobile_Number", "email_id", "is_admin"},
		[]interface{}{"Ada", 1, "9000000001", "ada@example.com", "false"},
		[]interface{}{},
		[]interface{}{"Grace", 3, "9000000002", "grace@example.com", "true"},
	)

	sheet, err := ReadSheet(f, "faculty_id", "name", "mobile_number", "email_id", "is_admin")
	require.NoError(t, err)
	require.Len(t, sheet.Rows, 2)

	assert.Equal(t, 2, sheet.Rows[0].Line)
	assert.Equal(t, "1", sheet.Get(sheet.Rows[0], "faculty_id"))
	assert.Equal(t, "ada@example.com", sheet.Get(sheet.Rows[0], "email_id"))
	assert.Equal(t, 4, sheet.Rows[1].Line)
	assert.Equal(t, "", sheet.Get(sheet.Rows[1], "rfid_tag"))
}

func TestReadSheetKeepsTrailingBlankCells(t *testing.T) {
	f := workbook(t,
		[]interface{}{"faculty_id", "name", "mobile_number", "email_id", "is_admin"},
		[]interface{}{7, "Ada", "9876543210", "ada@example.com", "true"},
		[]interface{}{8, "Grace", "9876543211", "grace@example.com", ""},
		[]interface{}{9, "Short"},
	)

	sheet, err := ReadSheet(f, "faculty_id", "name", "mobile_number", "email_id", "is_admin")
	require.NoError(t, err)
	require.Len(t, sheet.Rows, 3)

	grace := sheet.Rows[1]
	assert.Equal(t, 3, grace.Line)
	assert.Len(t, grace.Values, 5)
	assert.Equal(t, "grace@example.com", sheet.Get(grace, "email_id"))
	assert.Equal(t, "", sheet.Get(grace, "is_admin"))

	short := sheet.Rows[2]
	assert.Equal(t, "Short", sheet.Get(short, "name"))
	assert.Equal(t, "", sheet.Get(short, "email_id"))
}

func TestReadSheetMissingColumns(t *testing.T) {
	f := workbook(t, []interface{}{"venue_id", "name"}, []interface{}{1, "Hall"})

	_, err := ReadSheet(f, "venue_id", "name", "location", "capacity")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, web.StatusOf(err))
	assert.Contains(t, err.Error(), "location, capacity")
}

func TestOpenWorkbook(t *testing.T) {
	f := workbook(t, []interface{}{"venue_id"}, []interface{}{1})
	var content bytes.Buffer
	require.NoError(t, f.Write(&content))

	header := upload(t, "venues.xlsx", content.Bytes())
	opened, err := OpenWorkbook(header)
	require.NoError(t, err)
	defer opened.Close()

	sheet, err := ReadSheet(opened, "venue_id")
	require.NoError(t, err)
	assert.Len(t, sheet.Rows, 1)

	_, err = OpenWorkbook(upload(t, "venues.csv", []byte("venue_id\n1\n")))
	assert.Equal(t, http.StatusBadRequest, web.StatusOf(err))

	_, err = OpenWorkbook(nil)
	assert.Equal(t, http.StatusBadRequest, web.StatusOf(err))
}

func upload(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}

func records() []attendance.GetListResponse {
	tag := "1234567890"
	slot := "08:00-12:00"
	return []attendance.GetListResponse{
		{ID: 1, FacultyID: 2, FacultyName: "Ada", RFIDTag: &tag, AllocationID: 3, VenueName: "Main Hall", TimeSlot: &slot, Date: date.Date{Time: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}, IsPresent: true},
		{ID: 2, FacultyID: 4, FacultyName: "Grace", AllocationID: 5, VenueName: attendance.NoVenue, Date: date.Date{Time: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)}},
	}
}

func TestAttendanceExcel(t *testing.T) {
	data, err := AttendanceExcel(records())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Attendance")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, attendanceHeaders, rows[0])
	assert.Equal(t, "Ada", rows[1][2])
	assert.Equal(t, "2024-03-01", rows[1][7])
	assert.Equal(t, "Yes", rows[1][8])
	assert.Equal(t, attendance.NoVenue, rows[2][5])
	assert.Equal(t, "No", rows[2][8])
}

func TestAttendancePDF(t *testing.T) {
	list := append(records(), attendance.GetListResponse{ID: 3, FacultyName: "José Müller", VenueName: "Aula Magna"})

	data, err := AttendancePDF("Attendance records: all", list, "")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	_, err = AttendancePDF("Attendance records: all", list, "missing-font.ttf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing-font.ttf")
}

func TestPDFFontTranslatesToCoreEncoding(t *testing.T) {
	pdf := gofpdf.New("L", "mm", "A4", "")

	family, tr, err := pdfFont(pdf, "")
	require.NoError(t, err)
	assert.Equal(t, "Helvetica", family)
	assert.Equal(t, "Jos\xe9 M\xfcller", tr("José Müller"))
}

func TestBadgeQR(t *testing.T) {
	png, err := BadgeQR("1234567890")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}
