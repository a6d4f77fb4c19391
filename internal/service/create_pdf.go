package service

import (
	"bytes"
	"strconv"

	"github.com/jung-kurt/gofpdf/v2"
	"github.com/pkg/errors"

	"venue-allotment/backend/internal/repository/postgres/attendance"
)

var attendanceColumns = []struct {
	title string
	width float64
}{
	{"Faculty", 55},
	{"RFID", 30},
	{"Venue", 55},
	{"Time Slot", 30},
	{"Date", 25},
	{"Present", 20},
}

const unicodeFamily = "export"

// pdfFont registers the TrueType font at path for every style used by the
// export. Without a path the core Helvetica font is used and text is mapped to
// cp1252, which covers Latin accents only.
func pdfFont(pdf *gofpdf.Fpdf, path string) (string, func(string) string, error) {
	if path == "" {
		return "Helvetica", pdf.UnicodeTranslatorFromDescriptor(""), nil
	}

	for _, style := range []string{"", "B", "I"} {
		pdf.AddUTF8Font(unicodeFamily, style, path)
	}
	if err := pdf.Error(); err != nil {
		return "", nil, errors.Wrapf(err, "loading pdf font %s", path)
	}

	return unicodeFamily, func(s string) string { return s }, nil
}

// AttendancePDF renders attendance records as a printable landscape table.
// fontPath names an optional UTF-8 TrueType font for non-Latin names.
func AttendancePDF(title string, records []attendance.GetListResponse, fontPath string) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	family, tr, err := pdfFont(pdf, fontPath)
	if err != nil {
		return nil, err
	}

	pdf.SetTitle(title, true)
	pdf.AddPage()

	pdf.SetFont(family, "B", 14)
	pdf.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont(family, "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for _, c := range attendanceColumns {
		pdf.CellFormat(c.width, 8, c.title, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(family, "", 10)
	for _, r := range records {
		cells := []string{
			r.FacultyName,
			deref(r.RFIDTag),
			r.VenueName,
			deref(r.TimeSlot),
			r.Date.String(),
			yesNo(r.IsPresent),
		}
		for i, c := range attendanceColumns {
			pdf.CellFormat(c.width, 7, tr(cells[i]), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(2)
	pdf.SetFont(family, "I", 9)
	pdf.CellFormat(0, 6, "Total records: "+strconv.Itoa(len(records)), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "rendering pdf")
	}

	return buf.Bytes(), nil
}
