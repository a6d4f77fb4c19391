package venue

import (
	"context"

	"venue-allotment/backend/internal/repository/postgres/venue"
)

//go:generate mockgen -source=interface.go -destination=mocks/mocks.go -package=mocks

type Venue interface {
	GetList(ctx context.Context, filter venue.Filter) ([]venue.GetListResponse, int, error)
	GetDetailById(ctx context.Context, id int) (venue.GetDetailByIdResponse, error)
	Create(ctx context.Context, request venue.CreateRequest) (venue.CreateResponse, error)
	Delete(ctx context.Context, id int) error
}
