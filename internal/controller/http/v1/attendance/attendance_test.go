package attendance

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"venue-allotment/backend/foundation/web"
	"venue-allotment/backend/internal/controller/http/v1/attendance/mocks"
	"venue-allotment/backend/internal/repository/postgres/attendance"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newApp(t *testing.T) (*web.App, *mocks.MockAttendance) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockAttendance(ctrl)

	uc := NewController(repo, "")
	app := web.NewApp(zerolog.Nop())
	app.Post("/api/attendance", uc.Mark)
	app.Get("/api/attendance-records", uc.GetList)

	return app, repo
}

func TestMark(t *testing.T) {
	app, repo := newApp(t)

	repo.EXPECT().Mark(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ interface{}, req attendance.MarkRequest) (attendance.MarkResponse, error) {
			require.NotNil(t, req.AllocationID)
			assert.Equal(t, 12, *req.AllocationID)
			return attendance.MarkResponse{ID: 1, AllocationID: 12, IsPresent: true}, nil
		})

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/attendance", strings.NewReader(`{"allocation_id":12,"date":"2024-03-01"}`))
	r.Header.Set("Content-Type", "application/json")
	app.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "attendance marked successfully")
}

func TestMarkConflict(t *testing.T) {
	app, repo := newApp(t)

	repo.EXPECT().Mark(gomock.Any(), gomock.Any()).
		Return(attendance.MarkResponse{}, web.NewRequestError(errors.New("redundant"), http.StatusConflict))

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/attendance", strings.NewReader(`{"allocation_id":12}`))
	r.Header.Set("Content-Type", "application/json")
	app.ServeHTTP(w, r)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestMarkRequiresAllocation(t *testing.T) {
	app, _ := newApp(t)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/attendance", strings.NewReader(`{"date":"2024-03-01"}`))
	r.Header.Set("Content-Type", "application/json")
	app.ServeHTTP(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetListFormats(t *testing.T) {
	rows := []attendance.GetListResponse{{ID: 1, FacultyName: "Ada", VenueName: "Main Hall", IsPresent: true}}

	cases := []struct {
		query       string
		contentType string
		prefix      []byte
	}{
		{"", "application/json; charset=utf-8", []byte(`{`)},
		{"?export=xlsx&date=2024-03-01", xlsxContentType, []byte("PK")},
		{"?export=PDF", pdfContentType, []byte("%PDF-")},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			app, repo := newApp(t)
			repo.EXPECT().GetList(gomock.Any(), gomock.Any()).Return(rows, nil)

			w := httptest.NewRecorder()
			app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/attendance-records"+tc.query, nil))

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tc.contentType, w.Header().Get("Content-Type"))
			assert.True(t, bytes.HasPrefix(w.Body.Bytes(), tc.prefix))
		})
	}
}

func TestGetListPassesFilter(t *testing.T) {
	app, repo := newApp(t)

	repo.EXPECT().GetList(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ interface{}, filter attendance.Filter) ([]attendance.GetListResponse, error) {
			require.NotNil(t, filter.Date)
			assert.Equal(t, "all", *filter.Date)
			require.NotNil(t, filter.Export)
			assert.Equal(t, "csv", *filter.Export)
			return nil, web.NewRequestError(errors.New("export must be xlsx or pdf"), http.StatusBadRequest)
		})

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/attendance-records?date=all&export=csv", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
