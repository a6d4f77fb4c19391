package faculty

import (
	"context"
	"database/sql"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"

	"venue-allotment/backend/foundation/web"
	"venue-allotment/backend/internal/auth"
	"venue-allotment/backend/internal/entity"
	"venue-allotment/backend/internal/pkg/repository/postgresql"
	"venue-allotment/backend/internal/repository/postgres"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

func (r Repository) GetByID(ctx context.Context, id int) (entity.Faculty, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var detail entity.Faculty
	err := r.NewSelect().Model(&detail).Where("f.faculty_id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Faculty{}, web.NewRequestError(errors.Wrap(postgres.ErrNotFound, "faculty"), http.StatusNotFound)
	}
	if err != nil {
		return entity.Faculty{}, postgresql.Classify(err, "selecting faculty")
	}

	return detail, nil
}

// GetByEmail is used by sign in, so a missing row is reported as an
// authentication failure rather than not found.
func (r Repository) GetByEmail(ctx context.Context, email string) (entity.Faculty, error) {
	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var detail entity.Faculty
	err := r.NewSelect().Model(&detail).Where("f.email_id = ?", strings.TrimSpace(email)).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Faculty{}, web.NewRequestError(errors.New("invalid credentials"), http.StatusUnauthorized)
	}
	if err != nil {
		return entity.Faculty{}, postgresql.Classify(err, "selecting faculty by email")
	}

	return detail, nil
}

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	if _, err := r.CheckClaims(ctx, auth.RoleAdmin); err != nil {
		return nil, 0, err
	}

	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	list := make([]GetListResponse, 0)
	q := r.NewSelect().
		Model((*entity.Faculty)(nil)).
		Column("faculty_id", "name", "mobile_number", "email_id", "rfid_tag", "is_admin")

	if filter.Search != nil {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.Search)) + "%"
		q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("LOWER(f.name) LIKE ?", search).
				WhereOr("LOWER(f.email_id) LIKE ?", search).
				WhereOr("f.mobile_number LIKE ?", search)
		})
	}
	if filter.IsAdmin != nil {
		q.Where("f.is_admin = ?", *filter.IsAdmin)
	}

	if filter.Page != nil && filter.Limit != nil {
		offset := (*filter.Page - 1) * (*filter.Limit)
		filter.Offset = &offset
	}
	if filter.Limit != nil {
		q.Limit(*filter.Limit)
	}
	if filter.Offset != nil {
		q.Offset(*filter.Offset)
	}

	count, err := q.Order("f.faculty_id").ScanAndCount(ctx, &list)
	if err != nil {
		return nil, 0, postgresql.Classify(err, "selecting faculty")
	}

	return list, count, nil
}

func (r Repository) GetDetailById(ctx context.Context, id int) (GetDetailByIdResponse, error) {
	if _, err := r.CheckClaims(ctx, auth.RoleAdmin); err != nil {
		return GetDetailByIdResponse{}, err
	}

	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var detail GetDetailByIdResponse
	err := r.NewSelect().
		Model((*entity.Faculty)(nil)).
		Column("faculty_id", "name", "mobile_number", "email_id", "rfid_tag", "is_admin").
		ColumnExpr("(SELECT COUNT(*) FROM venue_allocations AS va WHERE va.faculty_id = f.faculty_id) AS allocations").
		Where("f.faculty_id = ?", id).
		Scan(ctx, &detail)
	if errors.Is(err, sql.ErrNoRows) {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(postgres.ErrNotFound, "faculty"), http.StatusNotFound)
	}
	if err != nil {
		return GetDetailByIdResponse{}, postgresql.Classify(err, "selecting faculty detail")
	}

	return detail, nil
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	if _, err := r.CheckClaims(ctx, auth.RoleAdmin); err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "Name", "MobileNumber", "EmailID"); err != nil {
		return CreateResponse{}, err
	}

	detail := entity.Faculty{
		Name:         strings.TrimSpace(*request.Name),
		MobileNumber: strings.TrimSpace(*request.MobileNumber),
		EmailID:      strings.TrimSpace(*request.EmailID),
		IsAdmin:      request.IsAdmin,
	}
	if request.RFIDTag != nil && strings.TrimSpace(*request.RFIDTag) != "" {
		tag := strings.TrimSpace(*request.RFIDTag)
		if !entity.ValidRFIDTag(tag) {
			return CreateResponse{}, web.NewRequestError(errors.New("rfid_tag must be exactly 10 digits"), http.StatusBadRequest)
		}
		detail.RFIDTag = &tag
	}

	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	if err := r.checkUnique(ctx, r.DB, detail, 0); err != nil {
		return CreateResponse{}, err
	}

	if _, err := r.NewInsert().Model(&detail).Exec(ctx); err != nil {
		if postgresql.IsUniqueViolation(err) {
			return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "faculty already exists"), http.StatusConflict)
		}
		return CreateResponse{}, postgresql.Classify(err, "creating faculty")
	}

	return CreateResponse{
		ID:           detail.ID,
		Name:         detail.Name,
		MobileNumber: detail.MobileNumber,
		EmailID:      detail.EmailID,
		RFIDTag:      detail.RFIDTag,
		IsAdmin:      detail.IsAdmin,
	}, nil
}

// checkUnique rejects a record whose mobile number, email or rfid tag belongs
// to a faculty member other than exceptID.
func (r Repository) checkUnique(ctx context.Context, db bun.IDB, detail entity.Faculty, exceptID int) error {
	checks := []struct {
		column string
		value  interface{}
	}{
		{"mobile_number", detail.MobileNumber},
		{"email_id", detail.EmailID},
	}
	if detail.RFIDTag != nil {
		checks = append(checks, struct {
			column string
			value  interface{}
		}{"rfid_tag", *detail.RFIDTag})
	}

	for _, c := range checks {
		exists, err := db.NewSelect().
			Model((*entity.Faculty)(nil)).
			Where("? = ?", bun.Ident(c.column), c.value).
			Where("f.faculty_id != ?", exceptID).
			Exists(ctx)
		if err != nil {
			return postgresql.Classify(err, c.column+" check")
		}
		if exists {
			return web.NewRequestError(errors.Errorf("%s is used", c.column), http.StatusConflict)
		}
	}

	return nil
}

// Delete removes a faculty member that no allocation or attendance row
// refers to.
func (r Repository) Delete(ctx context.Context, id int) error {
	if _, err := r.CheckClaims(ctx, auth.RoleAdmin); err != nil {
		return err
	}

	return r.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().Model((*entity.Faculty)(nil)).Where("f.faculty_id = ?", id).Exists(ctx)
		if err != nil {
			return postgresql.Classify(err, "selecting faculty")
		}
		if !exists {
			return web.NewRequestError(errors.Wrap(postgres.ErrNotFound, "faculty"), http.StatusNotFound)
		}

		referenced, err := tx.NewSelect().Model((*entity.VenueAllocation)(nil)).Where("va.faculty_id = ?", id).Exists(ctx)
		if err != nil {
			return postgresql.Classify(err, "checking allocations")
		}
		if !referenced {
			referenced, err = tx.NewSelect().Model((*entity.Attendance)(nil)).Where("a.faculty_id = ?", id).Exists(ctx)
			if err != nil {
				return postgresql.Classify(err, "checking attendance")
			}
		}
		if referenced {
			return web.NewRequestError(errors.Wrap(postgres.ErrReference, "deleting faculty"), http.StatusConflict)
		}

		if _, err = tx.NewDelete().Model((*entity.Faculty)(nil)).Where("faculty_id = ?", id).Exec(ctx); err != nil {
			return postgresql.Classify(err, "deleting faculty")
		}
		return nil
	})
}
