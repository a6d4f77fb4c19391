package venue

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"venue-allotment/backend/foundation/web"
	"venue-allotment/backend/internal/entity"
	"venue-allotment/backend/internal/pkg/repository/postgresql/dbtest"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestCreateAndList(t *testing.T) {
	db := dbtest.New(t)
	repo := NewRepository(db)
	admin := dbtest.AdminContext(1)

	created, err := repo.Create(admin, CreateRequest{Name: strPtr("Main Hall"), Location: strPtr("Block A"), Capacity: intPtr(40)})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	_, err = repo.Create(admin, CreateRequest{Name: strPtr("Lab"), Location: strPtr("Block B"), Capacity: intPtr(0)})
	assert.Equal(t, http.StatusBadRequest, web.StatusOf(err))

	_, err = repo.Create(dbtest.FacultyContext(2), CreateRequest{Name: strPtr("Lab"), Location: strPtr("Block B"), Capacity: intPtr(10)})
	assert.Equal(t, http.StatusForbidden, web.StatusOf(err))

	list, count, err := repo.GetList(dbtest.FacultyContext(2), Filter{})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, "Main Hall", list[0].Name)

	detail, err := repo.GetDetailById(dbtest.FacultyContext(2), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 40, detail.Capacity)

	_, err = repo.GetDetailById(admin, created.ID+100)
	assert.Equal(t, http.StatusNotFound, web.StatusOf(err))
}

func TestDeleteRestrictsAllocatedVenue(t *testing.T) {
	db := dbtest.New(t)
	repo := NewRepository(db)
	admin := dbtest.AdminContext(1)

	f := dbtest.Faculty(t, db, entity.Faculty{Name: "Ada", MobileNumber: "1", EmailID: "ada@example.com"})
	used := dbtest.Venue(t, db, entity.Venue{Name: "Hall", Location: "A", Capacity: 10})
	unused := dbtest.Venue(t, db, entity.Venue{Name: "Lab", Location: "B", Capacity: 10})
	dbtest.Allocation(t, db, entity.VenueAllocation{FacultyID: f.ID, VenueID: used.ID, Date: time.Now(), TimeSlot: entity.TimeSlotAfternoon})

	err := repo.Delete(admin, used.ID)
	assert.Equal(t, http.StatusConflict, web.StatusOf(err))

	require.NoError(t, repo.Delete(admin, unused.ID))

	_, count, err := repo.GetList(admin, Filter{})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
