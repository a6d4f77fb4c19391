package allocation

import (
	"context"

	"venue-allotment/backend/internal/repository/postgres/allocation"
)

//go:generate mockgen -source=interface.go -destination=mocks/mocks.go -package=mocks

type Allocation interface {
	Generate(ctx context.Context, request allocation.GenerateRequest) (allocation.GenerateResponse, error)
	GetList(ctx context.Context, filter allocation.Filter) ([]allocation.GetListResponse, error)
}
