package importer

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"venue-allotment/backend/foundation/web"
	"venue-allotment/backend/internal/entity"
	"venue-allotment/backend/internal/pkg/repository/postgresql/dbtest"
	"venue-allotment/backend/internal/service"
)

func sheet(header []string, rows ...[]string) service.Sheet {
	s := service.Sheet{Columns: map[string]int{}}
	for i, h := range header {
		s.Columns[h] = i
	}
	for i, r := range rows {
		s.Rows = append(s.Rows, service.Row{Line: i + 2, Values: r})
	}
	return s
}

var facultyHeader = []string{"faculty_id", "name", "mobile_number", "email_id", "is_admin", "rfid_tag"}

func TestImportFacultyUpsert(t *testing.T) {
	db := dbtest.New(t)
	repo := NewRepository(db)
	admin := dbtest.AdminContext(1)

	existing := dbtest.Faculty(t, db, entity.Faculty{Name: "Old Name", MobileNumber: "1", EmailID: "old@example.com"})

	resp, err := repo.ImportFaculty(admin, sheet(facultyHeader,
		[]string{"1", "New Name", "1", "new@example.com", "false", "1234567890"},
		[]string{"5", "Grace", "2", "grace@example.com", "TRUE", ""},
		[]string{"", "Linus", "3", "linus@example.com", "0"},
	))
	require.NoError(t, err)
	assert.Equal(t, Response{Imported: 2, Updated: 1}, resp)

	var updated entity.Faculty
	require.NoError(t, db.NewSelect().Model(&updated).Where("faculty_id = ?", existing.ID).Scan(context.Background()))
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "new@example.com", updated.EmailID)
	require.NotNil(t, updated.RFIDTag)
	assert.Equal(t, "1234567890", *updated.RFIDTag)

	var grace entity.Faculty
	require.NoError(t, db.NewSelect().Model(&grace).Where("faculty_id = ?", 5).Scan(context.Background()))
	assert.True(t, grace.IsAdmin)
	assert.Nil(t, grace.RFIDTag)

	n, err := db.NewSelect().Model((*entity.Faculty)(nil)).Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestImportFacultyRollsBackOnRowError(t *testing.T) {
	db := dbtest.New(t)
	repo := NewRepository(db)
	admin := dbtest.AdminContext(1)

	_, err := repo.ImportFaculty(admin, sheet(facultyHeader,
		[]string{"1", "Ada", "1", "ada@example.com", "false", ""},
		[]string{"2", "Grace", "2", "grace@example.com", "false", "12AB"},
	))
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, web.StatusOf(err))
	assert.Contains(t, err.Error(), "row 3")

	_, err = repo.ImportFaculty(admin, sheet(facultyHeader,
		[]string{"1", "Ada", "1", "ada@example.com", "false", ""},
		[]string{"2", "Grace", "1", "grace@example.com", "false", ""},
	))
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, web.StatusOf(err))

	n, err := db.NewSelect().Model((*entity.Faculty)(nil)).Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestImportMissingColumns(t *testing.T) {
	db := dbtest.New(t)
	repo := NewRepository(db)
	admin := dbtest.AdminContext(1)

	_, err := repo.ImportFaculty(admin, sheet([]string{"faculty_id", "name"}, []string{"1", "Ada"}))
	assert.Equal(t, http.StatusBadRequest, web.StatusOf(err))
	assert.Contains(t, err.Error(), "mobile_number")

	_, err = repo.ImportVenues(admin, sheet([]string{"venue_id", "name"}, []string{"1", "Hall"}))
	assert.Equal(t, http.StatusBadRequest, web.StatusOf(err))

	n, err := db.NewSelect().Model((*entity.Faculty)(nil)).Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestImportVenues(t *testing.T) {
	db := dbtest.New(t)
	repo := NewRepository(db)
	admin := dbtest.AdminContext(1)

	dbtest.Venue(t, db, entity.Venue{Name: "Hall", Location: "A", Capacity: 10})

	header := []string{"venue_id", "name", "location", "capacity"}
	resp, err := repo.ImportVenues(admin, sheet(header,
		[]string{"1", "Main Hall", "Block A", "50"},
		[]string{"2", "Lab", "Block B", "20"},
	))
	require.NoError(t, err)
	assert.Equal(t, Response{Imported: 1, Updated: 1}, resp)

	var hall entity.Venue
	require.NoError(t, db.NewSelect().Model(&hall).Where("venue_id = ?", 1).Scan(context.Background()))
	assert.Equal(t, 50, hall.Capacity)

	_, err = repo.ImportVenues(admin, sheet(header, []string{"3", "Closet", "C", "0"}))
	assert.Equal(t, http.StatusBadRequest, web.StatusOf(err))

	_, err = repo.ImportVenues(dbtest.FacultyContext(2), sheet(header))
	assert.Equal(t, http.StatusForbidden, web.StatusOf(err))
}

func workbookSheet(t *testing.T, columns []string, rows ...[]interface{}) service.Sheet {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	for i, row := range append([][]interface{}{header}, rows...) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		r := row
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}

	s, err := service.ReadSheet(f, columns...)
	require.NoError(t, err)
	return s
}

func TestImportFacultyFromWorkbookWithBlankAdminCell(t *testing.T) {
	db := dbtest.New(t)
	repo := NewRepository(db)

	resp, err := repo.ImportFaculty(dbtest.AdminContext(1), workbookSheet(t, FacultyColumns,
		[]interface{}{7, "Ada", "9876543210", "ada@example.com", "true"},
		[]interface{}{8, "Grace", "9876543211", "grace@example.com", ""},
	))
	require.NoError(t, err)
	assert.Equal(t, Response{Imported: 2}, resp)

	var grace entity.Faculty
	require.NoError(t, db.NewSelect().Model(&grace).Where("faculty_id = ?", 8).Scan(context.Background()))
	assert.Equal(t, "Grace", grace.Name)
	assert.False(t, grace.IsAdmin)
}

func TestImportVenuesFromWorkbookRejectsBlankCapacity(t *testing.T) {
	db := dbtest.New(t)
	repo := NewRepository(db)

	_, err := repo.ImportVenues(dbtest.AdminContext(1), workbookSheet(t, VenueColumns,
		[]interface{}{1, "Main Hall", "Block A", 50},
		[]interface{}{2, "Lab", "Block B"},
	))
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, web.StatusOf(err))
	assert.Contains(t, err.Error(), "row 3")

	n, err := db.NewSelect().Model((*entity.Venue)(nil)).Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}
