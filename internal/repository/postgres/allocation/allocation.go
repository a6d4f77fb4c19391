package allocation

import (
	"context"
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
	service "venue-allotment/backend/internal/service/allocation"
)

// Assigner deals faculty out to venues. *service.Source implements it.
type Assigner interface {
	Assign(venueIDs, facultyIDs []int, perVenue int) []service.Assignment
}

type Repository struct {
	*postgresql.Database
	assigner Assigner
	now      func() time.Time
}

func NewRepository(database *postgresql.Database, assigner Assigner) *Repository {
	return &Repository{Database: database, assigner: assigner, now: time.Now}
}

// Generate replaces the allocation batch of (date, time slot) with a fresh
// random one. Concurrent calls for the same key serialize on the batch row.
func (r Repository) Generate(ctx context.Context, request GenerateRequest) (response GenerateResponse, err error) {
	defer func() { metrics.AllocationGenerations.WithLabelValues(metrics.Result(err)).Inc() }()

	claims, err := r.CheckClaims(ctx, auth.RoleAdmin)
	if err != nil {
		return GenerateResponse{}, err
	}

	if err = r.ValidateStruct(&request, "Date", "TimeSlot", "FacultyPerVenue"); err != nil {
		return GenerateResponse{}, err
	}

	day, err := date.ParseDate(strings.TrimSpace(*request.Date))
	if err != nil {
		return GenerateResponse{}, web.NewRequestError(errors.Wrap(err, "date must be YYYY-MM-DD"), http.StatusBadRequest)
	}
	slot := strings.TrimSpace(*request.TimeSlot)
	if !entity.ValidTimeSlot(slot) {
		return GenerateResponse{}, web.NewRequestError(errors.Errorf("time_slot must be one of %s", strings.Join(entity.TimeSlots, ", ")), http.StatusBadRequest)
	}
	perVenue := *request.FacultyPerVenue
	if perVenue < 1 || perVenue > service.MaxFacultyPerVenue {
		return GenerateResponse{}, web.NewRequestError(errors.Errorf("faculty_per_venue must be between 1 and %d", service.MaxFacultyPerVenue), http.StatusBadRequest)
	}

	stored := entity.Day(day.ToTime())
	response = GenerateResponse{Date: day, TimeSlot: slot, FacultyPerVenue: perVenue, Allocations: make([]Allocated, 0)}

	err = r.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		batch := entity.AllocationBatch{
			Date:            stored,
			TimeSlot:        slot,
			FacultyPerVenue: perVenue,
			GeneratedAt:     r.now().UTC(),
			GeneratedBy:     claims.UserId,
		}
		if _, err := tx.NewInsert().
			Model(&batch).
			On("CONFLICT (date, time_slot) DO UPDATE").
			Set("faculty_per_venue = EXCLUDED.faculty_per_venue").
			Set("generated_at = EXCLUDED.generated_at").
			Set("generated_by = EXCLUDED.generated_by").
			Exec(ctx); err != nil {
			return postgresql.Classify(err, "locking allocation batch")
		}

		var venueIDs []int
		if err := tx.NewSelect().
			Model((*entity.Venue)(nil)).
			Column("venue_id").
			Order("v.venue_id").
			Scan(ctx, &venueIDs); err != nil {
			return postgresql.Classify(err, "selecting venues")
		}

		var facultyIDs []int
		if err := tx.NewSelect().
			Model((*entity.Faculty)(nil)).
			Column("faculty_id").
			Where("f.is_admin = ?", false).
			Order("f.faculty_id").
			Scan(ctx, &facultyIDs); err != nil {
			return postgresql.Classify(err, "selecting faculty")
		}

		if err := service.CheckCapacity(len(venueIDs), len(facultyIDs), perVenue); err != nil {
			return web.NewRequestError(err, http.StatusConflict)
		}

		// Concurrent marks hold these rows; wait for them so the check below
		// sees their attendance.
		if r.IsPostgres() {
			var locked []int
			if err := tx.NewSelect().
				Model((*entity.VenueAllocation)(nil)).
				Column("va.allocation_id").
				Where("va.date = ?", stored).
				Where("va.time_slot = ?", slot).
				For("UPDATE").
				Scan(ctx, &locked); err != nil {
				return postgresql.Classify(err, "locking previous allocations")
			}
		}

		marked, err := tx.NewSelect().
			Model((*entity.Attendance)(nil)).
			Join("JOIN venue_allocations AS va ON va.allocation_id = a.allocation_id").
			Where("va.date = ?", stored).
			Where("va.time_slot = ?", slot).
			Exists(ctx)
		if err != nil {
			return postgresql.Classify(err, "checking attendance")
		}
		if marked {
			return web.NewRequestError(errors.New("attendance has already been recorded for this allocation batch"), http.StatusConflict)
		}

		if _, err := tx.NewDelete().
			Model((*entity.VenueAllocation)(nil)).
			Where("date = ?", stored).
			Where("time_slot = ?", slot).
			Exec(ctx); err != nil {
			return postgresql.Classify(err, "deleting previous allocations")
		}

		assignments := r.assigner.Assign(venueIDs, facultyIDs, perVenue)
		if len(assignments) == 0 {
			return nil
		}

		rows := make([]entity.VenueAllocation, 0, len(assignments))
		for _, a := range assignments {
			rows = append(rows, entity.VenueAllocation{
				FacultyID: a.FacultyID,
				VenueID:   a.VenueID,
				Date:      stored,
				TimeSlot:  slot,
			})
		}
		if _, err := tx.NewInsert().Model(&rows).Exec(ctx); err != nil {
			return postgresql.Classify(err, "inserting allocations")
		}

		for _, row := range rows {
			response.Allocations = append(response.Allocations, Allocated{
				ID:        row.ID,
				VenueID:   row.VenueID,
				FacultyID: row.FacultyID,
			})
		}
		return nil
	})
	if err != nil {
		return GenerateResponse{}, err
	}

	metrics.AllocationsCreated.Add(float64(len(response.Allocations)))

	return response, nil
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, error) {
	if _, err := r.CheckClaims(ctx); err != nil {
		return nil, err
	}

	q := r.NewSelect().
		Model((*entity.VenueAllocation)(nil)).
		Column("va.allocation_id", "va.date", "va.time_slot", "va.faculty_id", "va.venue_id").
		ColumnExpr("f.name AS faculty_name").
		ColumnExpr("v.name AS venue_name").
		ColumnExpr("v.location AS venue_location").
		ColumnExpr("COALESCE(a.is_present, ?) AS is_present", false).
		Join("JOIN faculty AS f ON f.faculty_id = va.faculty_id").
		Join("JOIN venues AS v ON v.venue_id = va.venue_id").
		Join("LEFT JOIN attendance AS a ON a.allocation_id = va.allocation_id")

	if filter.Date != nil && strings.TrimSpace(*filter.Date) != "" {
		day, err := date.ParseDate(strings.TrimSpace(*filter.Date))
		if err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "date must be YYYY-MM-DD"), http.StatusBadRequest)
		}
		q.Where("va.date = ?", entity.Day(day.ToTime()))
	}
	if filter.TimeSlot != nil && strings.TrimSpace(*filter.TimeSlot) != "" {
		slot := strings.TrimSpace(*filter.TimeSlot)
		if !entity.ValidTimeSlot(slot) {
			return nil, web.NewRequestError(errors.Errorf("time_slot must be one of %s", strings.Join(entity.TimeSlots, ", ")), http.StatusBadRequest)
		}
		q.Where("va.time_slot = ?", slot)
	}

	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	list := make([]GetListResponse, 0)
	if err := q.
		OrderExpr("va.date, va.time_slot, va.venue_id, va.allocation_id").
		Scan(ctx, &list); err != nil {
		return nil, postgresql.Classify(err, "selecting allocations")
	}

	for i := range list {
		list[i].Date = date.Date{Time: list[i].StoredDate}
	}

	return list, nil
}
