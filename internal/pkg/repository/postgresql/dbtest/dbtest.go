// Package dbtest provides an in-memory database with the service schema for
// repository tests.
package dbtest

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "modernc.org/sqlite"

	"venue-allotment/backend/internal/auth"
	"venue-allotment/backend/internal/entity"
	"venue-allotment/backend/internal/pkg/repository/postgresql"
)

// New opens a fresh SQLite database with every table created. A single
// connection keeps the in-memory database alive and serializes transactions.
func New(t *testing.T) *postgresql.Database {
	t.Helper()

	sqldb, err := sql.Open("sqlite", "file::memory:?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	tables := []struct {
		model interface{}
		fks   []string
	}{
		{model: (*entity.Faculty)(nil)},
		{model: (*entity.Venue)(nil)},
		{model: (*entity.VenueAllocation)(nil), fks: []string{
			`("faculty_id") REFERENCES "faculty" ("faculty_id")`,
			`("venue_id") REFERENCES "venues" ("venue_id")`,
		}},
		{model: (*entity.AllocationBatch)(nil)},
		{model: (*entity.Attendance)(nil), fks: []string{
			`("faculty_id") REFERENCES "faculty" ("faculty_id")`,
			`("allocation_id") REFERENCES "venue_allocations" ("allocation_id")`,
		}},
	}
	for _, table := range tables {
		q := db.NewCreateTable().Model(table.model)
		for _, fk := range table.fks {
			q = q.ForeignKey(fk)
		}
		_, err := q.Exec(ctx)
		require.NoError(t, err)
	}

	return postgresql.New(db, 5*time.Second)
}

// AdminContext returns a context carrying admin claims for id.
func AdminContext(id int) context.Context {
	return WithClaims(id, auth.RoleAdmin)
}

// FacultyContext returns a context carrying faculty claims for id.
func FacultyContext(id int) context.Context {
	return WithClaims(id, auth.RoleFaculty)
}

func WithClaims(id int, role string) context.Context {
	return context.WithValue(context.Background(), auth.Key, auth.Claims{UserId: id, Role: role})
}

// Faculty inserts a faculty member and returns it with its id.
func Faculty(t *testing.T, db *postgresql.Database, f entity.Faculty) entity.Faculty {
	t.Helper()
	_, err := db.NewInsert().Model(&f).Exec(context.Background())
	require.NoError(t, err)
	return f
}

// Venue inserts a venue and returns it with its id.
func Venue(t *testing.T, db *postgresql.Database, v entity.Venue) entity.Venue {
	t.Helper()
	_, err := db.NewInsert().Model(&v).Exec(context.Background())
	require.NoError(t, err)
	return v
}

// Allocation inserts an allocation row.
func Allocation(t *testing.T, db *postgresql.Database, a entity.VenueAllocation) entity.VenueAllocation {
	t.Helper()
	a.Date = entity.Day(a.Date)
	_, err := db.NewInsert().Model(&a).Exec(context.Background())
	require.NoError(t, err)
	return a
}
