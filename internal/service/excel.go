package service

import (
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"venue-allotment/backend/foundation/web"
)

// Sheet is the first worksheet of an import workbook with its header row
// resolved to column positions.
type Sheet struct {
	Columns map[string]int
	Rows    []Row
}

// Row is a data row and its 1-based line number in the worksheet.
type Row struct {
	Line   int
	Values []string
}

// Get returns the trimmed value of the named column, or "" when the row is too
// short or the column is unknown.
func (s Sheet) Get(row Row, column string) string {
	i, ok := s.Columns[column]
	if !ok || i >= len(row.Values) {
		return ""
	}
	return strings.TrimSpace(row.Values[i])
}

// ReadSheet reads the first sheet of f. Header names are matched case
// insensitively. Rows are padded to the required columns and fully empty rows
// are skipped.
func ReadSheet(f *excelize.File, required ...string) (Sheet, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Sheet{}, web.NewRequestError(errors.New("workbook has no sheets"), http.StatusBadRequest)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return Sheet{}, web.NewRequestError(errors.Wrap(err, "reading sheet"), http.StatusBadRequest)
	}
	if len(rows) == 0 {
		return Sheet{}, web.NewRequestError(errors.New("sheet has no header row"), http.StatusBadRequest)
	}

	sheet := Sheet{Columns: make(map[string]int, len(rows[0]))}
	for i, name := range rows[0] {
		name = strings.ToLower(strings.TrimSpace(name))
		if _, ok := sheet.Columns[name]; !ok && name != "" {
			sheet.Columns[name] = i
		}
	}

	var missing []string
	width := 0
	for _, name := range required {
		i, ok := sheet.Columns[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		if i+1 > width {
			width = i + 1
		}
	}
	if len(missing) > 0 {
		return Sheet{}, web.NewRequestError(errors.Errorf("missing required columns: %s", strings.Join(missing, ", ")), http.StatusBadRequest)
	}

	for n, values := range rows[1:] {
		if blank(values) {
			continue
		}
		// GetRows trims empty trailing cells.
		for len(values) < width {
			values = append(values, "")
		}
		sheet.Rows = append(sheet.Rows, Row{Line: n + 2, Values: values})
	}

	return sheet, nil
}

func blank(values []string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
