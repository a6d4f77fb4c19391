package faculty

import (
	"context"

	"venue-allotment/backend/internal/repository/postgres/faculty"
)

//go:generate mockgen -source=interface.go -destination=mocks/mocks.go -package=mocks

type Faculty interface {
	GetList(ctx context.Context, filter faculty.Filter) ([]faculty.GetListResponse, int, error)
	GetDetailById(ctx context.Context, id int) (faculty.GetDetailByIdResponse, error)
	Create(ctx context.Context, request faculty.CreateRequest) (faculty.CreateResponse, error)
	Delete(ctx context.Context, id int) error
}
