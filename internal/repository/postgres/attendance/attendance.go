package attendance

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"venue-allotment/backend/foundation/web"
	"venue-allotment/backend/internal/auth"
	"venue-allotment/backend/internal/entity"
	"venue-allotment/backend/internal/metrics"
	"venue-allotment/backend/internal/pkg/repository/postgresql"
	"venue-allotment/backend/internal/repository/postgres"
)

var errRedundant = errors.New("attendance already marked as present: redundant")

type Repository struct {
	*postgresql.Database
	now func() time.Time
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database, now: time.Now}
}

// Mark records the actor as present for one of their allocations. The actor is
// the owner of the RFID tag when a non-blank one is given, the authenticated
// caller otherwise.
func (r Repository) Mark(ctx context.Context, request MarkRequest) (response MarkResponse, err error) {
	var tag string
	if request.RFIDTag != nil {
		tag = strings.TrimSpace(*request.RFIDTag)
	}
	method := "bearer"
	if tag != "" {
		method = "rfid"
	}
	defer func() { metrics.AttendanceMarks.WithLabelValues(method, metrics.Result(err)).Inc() }()

	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return MarkResponse{}, err
	}

	if err = r.ValidateStruct(&request, "AllocationID"); err != nil {
		return MarkResponse{}, err
	}

	day := date.Date{Time: r.now()}
	if request.Date != nil && strings.TrimSpace(*request.Date) != "" {
		if day, err = date.ParseDate(strings.TrimSpace(*request.Date)); err != nil {
			return MarkResponse{}, web.NewRequestError(errors.Wrap(err, "date must be YYYY-MM-DD"), http.StatusBadRequest)
		}
	}
	stored := entity.Day(day.ToTime())

	actor := claims.UserId
	if tag != "" {
		if actor, err = r.ownerOf(ctx, tag); err != nil {
			return MarkResponse{}, err
		}
	}

	err = r.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var allocation entity.VenueAllocation
		q := tx.NewSelect().
			Model(&allocation).
			Where("va.allocation_id = ?", *request.AllocationID).
			Where("va.faculty_id = ?", actor).
			Where("va.date = ?", stored)
		if r.IsPostgres() {
			q.For("UPDATE")
		}
		if err := q.Scan(ctx); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return web.NewRequestError(errors.New("no matching allocation for this faculty and date"), http.StatusNotFound)
			}
			return postgresql.Classify(err, "selecting allocation")
		}

		var record entity.Attendance
		err := tx.NewSelect().Model(&record).Where("a.allocation_id = ?", allocation.ID).Scan(ctx)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			record = entity.Attendance{
				FacultyID:    actor,
				AllocationID: allocation.ID,
				Date:         stored,
				IsPresent:    true,
			}
			if _, err := tx.NewInsert().Model(&record).Exec(ctx); err != nil {
				if postgresql.IsUniqueViolation(err) {
					return web.NewRequestError(errRedundant, http.StatusConflict)
				}
				return postgresql.Classify(err, "inserting attendance")
			}
		case err != nil:
			return postgresql.Classify(err, "selecting attendance")
		case record.IsPresent:
			return web.NewRequestError(errRedundant, http.StatusConflict)
		default:
			record.IsPresent = true
			if _, err := tx.NewUpdate().
				Model(&record).
				Column("is_present").
				WherePK().
				Exec(ctx); err != nil {
				return postgresql.Classify(err, "updating attendance")
			}
		}

		response = MarkResponse{
			ID:           record.ID,
			AllocationID: record.AllocationID,
			FacultyID:    record.FacultyID,
			Date:         date.Date{Time: record.Date},
			IsPresent:    record.IsPresent,
		}
		return nil
	})
	if err != nil {
		return MarkResponse{}, err
	}

	return response, nil
}

func (r Repository) ownerOf(ctx context.Context, tag string) (int, error) {
	if !entity.ValidRFIDTag(tag) {
		return 0, web.NewRequestError(errors.New("rfid_tag must be exactly 10 digits"), http.StatusBadRequest)
	}

	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var id int
	err := r.NewSelect().
		Model((*entity.Faculty)(nil)).
		Column("faculty_id").
		Where("f.rfid_tag = ?", tag).
		Scan(ctx, &id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, web.NewRequestError(errors.Wrap(postgres.ErrNotFound, "rfid tag"), http.StatusNotFound)
	}
	if err != nil {
		return 0, postgresql.Classify(err, "selecting rfid owner")
	}

	return id, nil
}

// GetList returns the ledger joined with faculty and venue names. A date
// filter of "all" or empty selects every day.
func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, error) {
	if _, err := r.CheckClaims(ctx, auth.RoleAdmin); err != nil {
		return nil, err
	}

	if filter.Export != nil {
		switch *filter.Export {
		case ExportNone, ExportXLSX, ExportPDF:
		default:
			return nil, web.NewRequestError(errors.Errorf("export must be %q or %q", ExportXLSX, ExportPDF), http.StatusBadRequest)
		}
	}

	q := r.NewSelect().
		Model((*entity.Attendance)(nil)).
		Column("a.id", "a.faculty_id", "a.allocation_id", "a.date", "a.is_present").
		ColumnExpr("f.name AS faculty_name").
		ColumnExpr("f.rfid_tag").
		ColumnExpr("COALESCE(v.name, ?) AS venue_name", NoVenue).
		ColumnExpr("va.time_slot").
		Join("JOIN faculty AS f ON f.faculty_id = a.faculty_id").
		Join("LEFT JOIN venue_allocations AS va ON va.allocation_id = a.allocation_id").
		Join("LEFT JOIN venues AS v ON v.venue_id = va.venue_id")

	if filter.Date != nil {
		raw := strings.TrimSpace(*filter.Date)
		if raw != "" && !strings.EqualFold(raw, "all") {
			day, err := date.ParseDate(raw)
			if err != nil {
				return nil, web.NewRequestError(errors.Wrap(err, "date must be YYYY-MM-DD or all"), http.StatusBadRequest)
			}
			q.Where("a.date = ?", entity.Day(day.ToTime()))
		}
	}

	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	list := make([]GetListResponse, 0)
	if err := q.OrderExpr("a.date, f.name, a.id").Scan(ctx, &list); err != nil {
		return nil, postgresql.Classify(err, "selecting attendance")
	}

	for i := range list {
		list[i].Date = date.Date{Time: list[i].StoredDate}
	}

	return list, nil
}
