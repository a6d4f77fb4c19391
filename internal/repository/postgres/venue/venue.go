package venue

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

func (r Repository) GetList(ctx context.Context, filter Filter) ([]GetListResponse, int, error) {
	if _, err := r.CheckClaims(ctx); err != nil {
		return nil, 0, err
	}

	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	list := make([]GetListResponse, 0)
	q := r.NewSelect().
		Model((*entity.Venue)(nil)).
		Column("venue_id", "name", "location", "capacity")

	if filter.Search != nil {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.Search)) + "%"
		q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("LOWER(v.name) LIKE ?", search).
				WhereOr("LOWER(v.location) LIKE ?", search)
		})
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

	count, err := q.Order("v.venue_id").ScanAndCount(ctx, &list)
	if err != nil {
		return nil, 0, postgresql.Classify(err, "selecting venues")
	}

	return list, count, nil
}

func (r Repository) GetDetailById(ctx context.Context, id int) (GetDetailByIdResponse, error) {
	if _, err := r.CheckClaims(ctx); err != nil {
		return GetDetailByIdResponse{}, err
	}

	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	var detail GetDetailByIdResponse
	err := r.NewSelect().
		Model((*entity.Venue)(nil)).
		Column("venue_id", "name", "location", "capacity").
		ColumnExpr("(SELECT COUNT(*) FROM venue_allocations AS va WHERE va.venue_id = v.venue_id) AS allocations").
		Where("v.venue_id = ?", id).
		Scan(ctx, &detail)
	if errors.Is(err, sql.ErrNoRows) {
		return GetDetailByIdResponse{}, web.NewRequestError(errors.Wrap(postgres.ErrNotFound, "venue"), http.StatusNotFound)
	}
	if err != nil {
		return GetDetailByIdResponse{}, postgresql.Classify(err, "selecting venue detail")
	}

	return detail, nil
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	if _, err := r.CheckClaims(ctx, auth.RoleAdmin); err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "Name", "Location", "Capacity"); err != nil {
		return CreateResponse{}, err
	}
	if *request.Capacity <= 0 {
		return CreateResponse{}, web.NewRequestError(errors.New("capacity must be positive"), http.StatusBadRequest)
	}

	detail := entity.Venue{
		Name:     strings.TrimSpace(*request.Name),
		Location: strings.TrimSpace(*request.Location),
		Capacity: *request.Capacity,
	}

	ctx, cancel := r.WithTimeout(ctx)
	defer cancel()

	if _, err := r.NewInsert().Model(&detail).Exec(ctx); err != nil {
		return CreateResponse{}, postgresql.Classify(err, "creating venue")
	}

	return CreateResponse{
		ID:       detail.ID,
		Name:     detail.Name,
		Location: detail.Location,
		Capacity: detail.Capacity,
	}, nil
}

// Delete removes a venue that has never been allocated.
func (r Repository) Delete(ctx context.Context, id int) error {
	if _, err := r.CheckClaims(ctx, auth.RoleAdmin); err != nil {
		return err
	}

	return r.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().Model((*entity.Venue)(nil)).Where("v.venue_id = ?", id).Exists(ctx)
		if err != nil {
			return postgresql.Classify(err, "selecting venue")
		}
		if !exists {
			return web.NewRequestError(errors.Wrap(postgres.ErrNotFound, "venue"), http.StatusNotFound)
		}

		referenced, err := tx.NewSelect().Model((*entity.VenueAllocation)(nil)).Where("va.venue_id = ?", id).Exists(ctx)
		if err != nil {
			return postgresql.Classify(err, "checking allocations")
		}
		if referenced {
			return web.NewRequestError(errors.Wrap(postgres.ErrReference, "deleting venue"), http.StatusConflict)
		}

		if _, err = tx.NewDelete().Model((*entity.Venue)(nil)).Where("venue_id = ?", id).Exec(ctx); err != nil {
			return postgresql.Classify(err, "deleting venue")
		}
		return nil
	})
}
