package service

import (
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"venue-allotment/backend/foundation/web"
)

func InArray[T comparable](val T, array []T) bool {
	for _, v := range array {
		if val == v {
			return true
		}
	}
	return false
}

var workbookContentTypes = []string{
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"application/octet-stream",
	"",
}

// OpenWorkbook opens an uploaded .xlsx file in memory.
func OpenWorkbook(file *multipart.FileHeader) (*excelize.File, error) {
	if file == nil {
		return nil, web.NewRequestError(errors.New("file is required"), http.StatusBadRequest)
	}

	if !strings.EqualFold(filepath.Ext(file.Filename), ".xlsx") {
		return nil, web.NewRequestError(errors.Errorf("invalid file type %q, expected .xlsx", file.Filename), http.StatusBadRequest)
	}
	if ct := file.Header.Get("Content-Type"); !InArray(ct, workbookContentTypes) {
		return nil, web.NewRequestError(errors.Errorf("invalid content type %q", ct), http.StatusBadRequest)
	}

	src, err := file.Open()
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "opening upload"), http.StatusBadRequest)
	}
	defer src.Close()

	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "reading workbook"), http.StatusBadRequest)
	}

	return f, nil
}
