package commands

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"venue-allotment/backend/internal/pkg/repository/postgresql"
)

// ErrHelp provides context that help was given.
var ErrHelp = errors.New("provided help")

type Scheme struct {
	Index       int
	Description string
	Query       string
}

var scheme = []Scheme{
	{
		Index:       1,
		Description: "Create table: faculty.",
		Query: `
        CREATE TABLE IF NOT EXISTS faculty (
            faculty_id serial primary key,
            name varchar(255) not null,
            mobile_number varchar(15) not null unique,
            email_id varchar(255) not null unique,
            rfid_tag varchar(10) unique check (rfid_tag ~ '^[0-9]{10}$'),
            is_admin boolean not null default false
        );`,
	},
	{
		Index:       2,
		Description: "Create table: venues.",
		Query: `
        CREATE TABLE IF NOT EXISTS venues (
            venue_id serial primary key,
            name varchar(255) not null,
            location varchar(255) not null,
            capacity int not null check (capacity > 0)
        );`,
	},
	{
		Index:       3,
		Description: "Create table: venue_allocations.",
		Query: `
        CREATE TABLE IF NOT EXISTS venue_allocations (
            allocation_id serial primary key,
            faculty_id int not null references faculty(faculty_id),
            venue_id int not null references venues(venue_id),
            date date not null,
            time_slot varchar(11) not null check (time_slot in ('08:00-12:00', '12:00-15:00'))
        );
        CREATE INDEX IF NOT EXISTS venue_allocations_batch_idx ON venue_allocations (date, time_slot);`,
	},
	{
		Index:       4,
		Description: "Create table: allocation_batches.",
		Query: `
        CREATE TABLE IF NOT EXISTS allocation_batches (
            id serial primary key,
            date date not null,
            time_slot varchar(11) not null,
            faculty_per_venue int not null,
            generated_at timestamptz not null default now(),
            generated_by int not null,
            CONSTRAINT allocation_batch_key UNIQUE (date, time_slot)
        );`,
	},
	{
		Index:       5,
		Description: "Create table: attendance.",
		Query: `
        CREATE TABLE IF NOT EXISTS attendance (
            id serial primary key,
            faculty_id int not null references faculty(faculty_id),
            allocation_id int not null unique references venue_allocations(allocation_id),
            date date not null,
            is_present boolean not null default false
        );`,
	},
	{
		Index:       6,
		Description: "Create admin with email: admin@example.com, password: 0000000000",
		Query: `
        INSERT INTO faculty(name, mobile_number, email_id, is_admin)
        SELECT 'Administrator', '0000000000', 'admin@example.com', true
        WHERE NOT EXISTS (SELECT faculty_id FROM faculty WHERE is_admin);`,
	},
}

// MigrateUP applies the scheme entries newer than the version recorded in
// schema_migrations. A dirty version is re-applied first.
func MigrateUP(ctx context.Context, db *postgresql.Database, log zerolog.Logger) error {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (version int not null, dirty bool not null, error text);
		INSERT INTO schema_migrations (version, dirty)
		SELECT 0, false WHERE NOT EXISTS (SELECT 1 FROM schema_migrations);
	`); err != nil {
		return errors.Wrap(err, "migrate schema_migrations create")
	}

	var (
		version int
		dirty   bool
	)
	if err := db.QueryRowContext(ctx, "SELECT version, dirty FROM schema_migrations").Scan(&version, &dirty); err != nil {
		return errors.Wrap(err, "migrate schema_migrations scan")
	}

	apply := func(s Scheme) error {
		if _, err := db.ExecContext(ctx, s.Query); err != nil {
			if _, uerr := db.ExecContext(ctx, `UPDATE schema_migrations SET error = ?, version = ?, dirty = true`, err.Error(), s.Index); uerr != nil {
				return errors.Wrap(uerr, "migrate error")
			}
			return errors.Wrap(err, fmt.Sprintf("migrate error version: %d", s.Index))
		}
		if _, err := db.ExecContext(ctx, `UPDATE schema_migrations SET version = ?, dirty = false, error = null`, s.Index); err != nil {
			return errors.Wrap(err, "migrate error")
		}

		log.Info().Int("version", s.Index).Str("description", s.Description).Msg("migration applied")
		return nil
	}

	for _, s := range scheme {
		if (dirty && s.Index == version) || s.Index > version {
			if err := apply(s); err != nil {
				return err
			}
		}
	}

	return nil
}
