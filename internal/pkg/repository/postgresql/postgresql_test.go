package postgresql_test

import (
	"context"
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venue-allotment/backend/foundation/web"
	"venue-allotment/backend/internal/entity"
	"venue-allotment/backend/internal/pkg/repository/postgresql"
	"venue-allotment/backend/internal/pkg/repository/postgresql/dbtest"
)

func TestClassifyConstraintViolations(t *testing.T) {
	db := dbtest.New(t)
	ctx := context.Background()
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	ada := dbtest.Faculty(t, db, entity.Faculty{Name: "Ada", MobileNumber: "1", EmailID: "ada@example.com"})
	hall := dbtest.Venue(t, db, entity.Venue{Name: "Hall", Location: "A", Capacity: 10})
	allocation := dbtest.Allocation(t, db, entity.VenueAllocation{FacultyID: ada.ID, VenueID: hall.ID, Date: day, TimeSlot: entity.TimeSlotMorning})
	_, err := db.NewInsert().Model(&entity.Attendance{FacultyID: ada.ID, AllocationID: allocation.ID, Date: day, IsPresent: true}).Exec(ctx)
	require.NoError(t, err)

	// A writer that skipped the attendance check loses to the foreign key.
	_, err = db.NewDelete().Model((*entity.VenueAllocation)(nil)).Where("allocation_id = ?", allocation.ID).Exec(ctx)
	require.Error(t, err)
	assert.True(t, postgresql.IsForeignKeyViolation(err))
	assert.Equal(t, http.StatusConflict, web.StatusOf(postgresql.Classify(err, "deleting previous allocations")))

	_, err = db.NewInsert().Model(&entity.Faculty{Name: "Copy", MobileNumber: "2", EmailID: "ada@example.com"}).Exec(ctx)
	require.Error(t, err)
	assert.True(t, postgresql.IsUniqueViolation(err))
	assert.Equal(t, http.StatusConflict, web.StatusOf(postgresql.Classify(err, "creating faculty")))
}

func TestClassify(t *testing.T) {
	assert.NoError(t, postgresql.Classify(nil, "noop"))
	assert.Equal(t, http.StatusNotFound, web.StatusOf(postgresql.Classify(sql.ErrNoRows, "selecting venue")))
	assert.Equal(t, http.StatusServiceUnavailable, web.StatusOf(postgresql.Classify(context.DeadlineExceeded, "selecting venue")))
	assert.Equal(t, http.StatusInternalServerError, web.StatusOf(postgresql.Classify(errors.New("boom"), "selecting venue")))

	teapot := web.NewRequestError(errors.New("kept"), http.StatusTeapot)
	assert.Equal(t, teapot, postgresql.Classify(teapot, "selecting venue"))
}
