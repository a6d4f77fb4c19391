package faculty

import (
	"context"
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

func TestCreateAndGet(t *testing.T) {
	db := dbtest.New(t)
	repo := NewRepository(db)
	ctx := dbtest.AdminContext(1)

	created, err := repo.Create(ctx, CreateRequest{
		Name:         strPtr(" Ada "),
		MobileNumber: strPtr("9000000001"),
		EmailID:      strPtr("ada@example.com"),
		RFIDTag:      strPtr("1234567890"),
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Ada", created.Name)

	detail, err := repo.GetDetailById(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", detail.EmailID)
	require.NotNil(t, detail.RFIDTag)
	assert.Equal(t, "1234567890", *detail.RFIDTag)
	assert.Zero(t, detail.Allocations)

	byEmail, err := repo.GetByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	_, err = repo.GetByEmail(context.Background(), "nobody@example.com")
	assert.Equal(t, http.StatusUnauthorized, web.StatusOf(err))

	_, err = repo.GetByID(context.Background(), 999)
	assert.Equal(t, http.StatusNotFound, web.StatusOf(err))
}

func TestCreateValidation(t *testing.T) {
	db := dbtest.New(t)
	repo := NewRepository(db)
	ctx := dbtest.AdminContext(1)

	_, err := repo.Create(ctx, CreateRequest{Name: strPtr("Ada")})
	assert.Equal(t, http.StatusBadRequest, web.StatusOf(err))

	_, err = repo.Create(ctx, CreateRequest{
		Name:         strPtr("Ada"),
		MobileNumber: strPtr("9000000001"),
		EmailID:      strPtr("ada@example.com"),
		RFIDTag:      strPtr("12345"),
	})
	assert.Equal(t, http.StatusBadRequest, web.StatusOf(err))

	_, err = repo.Create(dbtest.FacultyContext(2), CreateRequest{
		Name:         strPtr("Ada"),
		MobileNumber: strPtr("9000000001"),
		EmailID:      strPtr("ada@example.com"),
	})
	assert.Equal(t, http.StatusForbidden, web.StatusOf(err))

	_, err = repo.Create(context.Background(), CreateRequest{})
	assert.Equal(t, http.StatusUnauthorized, web.StatusOf(err))
}

func TestCreateConflicts(t *testing.T) {
	db := dbtest.New(t)
	repo := NewRepository(db)
	ctx := dbtest.AdminContext(1)

	dbtest.Faculty(t, db, entity.Faculty{
		Name:         "Ada",
		MobileNumber: "9000000001",
		EmailID:      "ada@example.com",
		RFIDTag:      strPtr("1234567890"),
	})

	cases := map[string]CreateRequest{
		"mobile": {Name: strPtr("B"), MobileNumber: strPtr("9000000001"), EmailID: strPtr("b@example.com")},
		"email":  {Name: strPtr("B"), MobileNumber: strPtr("9000000002"), EmailID: strPtr("ada@example.com")},
		"rfid":   {Name: strPtr("B"), MobileNumber: strPtr("9000000002"), EmailID: strPtr("b@example.com"), RFIDTag: strPtr("1234567890")},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := repo.Create(ctx, req)
			assert.Equal(t, http.StatusConflict, web.StatusOf(err))
		})
	}
}

func TestGetList(t *testing.T) {
	db := dbtest.New(t)
	repo := NewRepository(db)
	ctx := dbtest.AdminContext(1)

	dbtest.Faculty(t, db, entity.Faculty{Name: "Ada", MobileNumber: "1", EmailID: "ada@example.com", IsAdmin: true})
	dbtest.Faculty(t, db, entity.Faculty{Name: "Grace", MobileNumber: "2", EmailID: "grace@example.com"})
	dbtest.Faculty(t, db, entity.Faculty{Name: "Linus", MobileNumber: "3", EmailID: "linus@example.com"})

	list, count, err := repo.GetList(ctx, Filter{})
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	require.Len(t, list, 3)
	assert.Equal(t, "Ada", list[0].Name)

	list, count, err = repo.GetList(ctx, Filter{Search: strPtr("GRA")})
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, "Grace", list[0].Name)

	notAdmin := false
	_, count, err = repo.GetList(ctx, Filter{IsAdmin: &notAdmin})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	limit, page := 1, 2
	list, count, err = repo.GetList(ctx, Filter{Limit: &limit, Page: &page})
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	require.Len(t, list, 1)
	assert.Equal(t, "Grace", list[0].Name)
}

func TestDeleteRestrictsReferencedFaculty(t *testing.T) {
	db := dbtest.New(t)
	repo := NewRepository(db)
	ctx := dbtest.AdminContext(1)

	free := dbtest.Faculty(t, db, entity.Faculty{Name: "Free", MobileNumber: "1", EmailID: "free@example.com"})
	busy := dbtest.Faculty(t, db, entity.Faculty{Name: "Busy", MobileNumber: "2", EmailID: "busy@example.com"})
	v := dbtest.Venue(t, db, entity.Venue{Name: "Hall", Location: "A", Capacity: 10})
	dbtest.Allocation(t, db, entity.VenueAllocation{FacultyID: busy.ID, VenueID: v.ID, Date: time.Now(), TimeSlot: entity.TimeSlotMorning})

	err := repo.Delete(ctx, busy.ID)
	assert.Equal(t, http.StatusConflict, web.StatusOf(err))

	_, err = repo.GetByID(context.Background(), busy.ID)
	assert.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, free.ID))
	_, err = repo.GetByID(context.Background(), free.ID)
	assert.Equal(t, http.StatusNotFound, web.StatusOf(err))

	err = repo.Delete(ctx, free.ID)
	assert.Equal(t, http.StatusNotFound, web.StatusOf(err))
}
