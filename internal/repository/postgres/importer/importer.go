// Package importer upserts faculty and venue rows read from a spreadsheet.
package importer

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"venue-allotment/backend/foundation/web"
	"venue-allotment/backend/internal/auth"
	"venue-allotment/backend/internal/entity"
	"venue-allotment/backend/internal/pkg/repository/postgresql"
	"venue-allotment/backend/internal/service"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

// ImportFaculty inserts or updates one faculty row per sheet row, keyed by
// faculty_id. Any failing row rolls the whole sheet back.
func (r Repository) ImportFaculty(ctx context.Context, sheet service.Sheet) (Response, error) {
	if _, err := r.CheckClaims(ctx, auth.RoleAdmin); err != nil {
		return Response{}, err
	}
	if err := requireColumns(sheet, FacultyColumns); err != nil {
		return Response{}, err
	}

	var response Response
	err := r.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, row := range sheet.Rows {
			detail, err := facultyFromRow(sheet, row)
			if err != nil {
				return rowError(row, err)
			}

			updated, err := upsert(ctx, tx, &detail, "faculty_id", detail.ID)
			if err != nil {
				return rowError(row, err)
			}
			if updated {
				response.Updated++
			} else {
				response.Imported++
			}
		}

		return r.advanceSequence(ctx, tx, "faculty", "faculty_id")
	})
	if err != nil {
		return Response{}, err
	}

	return response, nil
}

// ImportVenues inserts or updates one venue per sheet row, keyed by venue_id.
func (r Repository) ImportVenues(ctx context.Context, sheet service.Sheet) (Response, error) {
	if _, err := r.CheckClaims(ctx, auth.RoleAdmin); err != nil {
		return Response{}, err
	}
	if err := requireColumns(sheet, VenueColumns); err != nil {
		return Response{}, err
	}

	var response Response
	err := r.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, row := range sheet.Rows {
			detail, err := venueFromRow(sheet, row)
			if err != nil {
				return rowError(row, err)
			}

			updated, err := upsert(ctx, tx, &detail, "venue_id", detail.ID)
			if err != nil {
				return rowError(row, err)
			}
			if updated {
				response.Updated++
			} else {
				response.Imported++
			}
		}

		return r.advanceSequence(ctx, tx, "venues", "venue_id")
	})
	if err != nil {
		return Response{}, err
	}

	return response, nil
}

// upsert updates the row with the given key when it exists and inserts it
// otherwise. A zero key always inserts and lets the database pick the id.
func upsert(ctx context.Context, tx bun.Tx, model interface{}, key string, id int) (bool, error) {
	if id != 0 {
		exists, err := tx.NewSelect().Model(model).Where("? = ?", bun.Ident(key), id).Exists(ctx)
		if err != nil {
			return false, err
		}
		if exists {
			_, err = tx.NewUpdate().Model(model).WherePK().Exec(ctx)
			return true, err
		}
	}

	_, err := tx.NewInsert().Model(model).Exec(ctx)
	return false, err
}

// advanceSequence moves a serial sequence past MAX(id) after explicit id
// inserts. SQLite tracks AUTOINCREMENT itself.
func (r Repository) advanceSequence(ctx context.Context, tx bun.Tx, table, column string) error {
	if !r.IsPostgres() {
		return nil
	}

	_, err := tx.ExecContext(ctx,
		"SELECT setval(pg_get_serial_sequence(?, ?), COALESCE((SELECT MAX(?) FROM ?), 0) + 1, false)",
		table, column, bun.Ident(column), bun.Ident(table))
	if err != nil {
		return postgresql.Classify(err, "advancing "+table+" sequence")
	}
	return nil
}

func requireColumns(sheet service.Sheet, columns []string) error {
	var missing []string
	for _, c := range columns {
		if _, ok := sheet.Columns[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return web.NewRequestError(errors.Errorf("missing required columns: %s", strings.Join(missing, ", ")), http.StatusBadRequest)
	}
	return nil
}

func rowError(row service.Row, err error) error {
	var webErr *web.Error
	if errors.As(err, &webErr) {
		return web.NewRequestError(errors.Wrapf(webErr.Err, "row %d", row.Line), webErr.Status)
	}

	switch {
	case postgresql.IsUniqueViolation(err):
		return web.NewRequestError(errors.Wrapf(err, "row %d: duplicate value", row.Line), http.StatusConflict)
	case postgresql.IsForeignKeyViolation(err):
		return web.NewRequestError(errors.Wrapf(err, "row %d", row.Line), http.StatusConflict)
	}

	return postgresql.Classify(err, "row "+strconv.Itoa(row.Line))
}

func facultyFromRow(sheet service.Sheet, row service.Row) (entity.Faculty, error) {
	id, err := parseID(sheet.Get(row, "faculty_id"))
	if err != nil {
		return entity.Faculty{}, err
	}

	detail := entity.Faculty{
		ID:           id,
		Name:         sheet.Get(row, "name"),
		MobileNumber: sheet.Get(row, "mobile_number"),
		EmailID:      sheet.Get(row, "email_id"),
	}
	if detail.Name == "" || detail.MobileNumber == "" || detail.EmailID == "" {
		return entity.Faculty{}, web.NewRequestError(errors.New("name, mobile_number and email_id are required"), http.StatusBadRequest)
	}

	if detail.IsAdmin, err = parseBool(sheet.Get(row, "is_admin")); err != nil {
		return entity.Faculty{}, err
	}

	if tag := sheet.Get(row, rfidColumn); tag != "" {
		if !entity.ValidRFIDTag(tag) {
			return entity.Faculty{}, web.NewRequestError(errors.Errorf("rfid_tag %q must be exactly 10 digits", tag), http.StatusBadRequest)
		}
		detail.RFIDTag = &tag
	}

	return detail, nil
}

func venueFromRow(sheet service.Sheet, row service.Row) (entity.Venue, error) {
	id, err := parseID(sheet.Get(row, "venue_id"))
	if err != nil {
		return entity.Venue{}, err
	}

	capacity, err := strconv.Atoi(sheet.Get(row, "capacity"))
	if err != nil || capacity <= 0 {
		return entity.Venue{}, web.NewRequestError(errors.Errorf("capacity %q must be a positive integer", sheet.Get(row, "capacity")), http.StatusBadRequest)
	}

	detail := entity.Venue{
		ID:       id,
		Name:     sheet.Get(row, "name"),
		Location: sheet.Get(row, "location"),
		Capacity: capacity,
	}
	if detail.Name == "" || detail.Location == "" {
		return entity.Venue{}, web.NewRequestError(errors.New("name and location are required"), http.StatusBadRequest)
	}

	return detail, nil
}

// parseID accepts an empty cell as "no id" and a positive integer otherwise.
func parseID(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, web.NewRequestError(errors.Errorf("id %q must be a positive integer", raw), http.StatusBadRequest)
	}
	return id, nil
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "y":
		return true, nil
	case "", "0", "false", "no", "n":
		return false, nil
	}
	return false, web.NewRequestError(errors.Errorf("is_admin %q must be true or false", raw), http.StatusBadRequest)
}
