package attendance

import (
	"context"

	"venue-allotment/backend/internal/repository/postgres/attendance"
)

//go:generate mockgen -source=interface.go -destination=mocks/mocks.go -package=mocks

type Attendance interface {
	Mark(ctx context.Context, request attendance.MarkRequest) (attendance.MarkResponse, error)
	GetList(ctx context.Context, filter attendance.Filter) ([]attendance.GetListResponse, error)
}
