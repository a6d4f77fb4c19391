package importer

import (
	"context"

	"venue-allotment/backend/internal/repository/postgres/importer"
	"venue-allotment/backend/internal/service"
)

//go:generate mockgen -source=interface.go -destination=mocks/mocks.go -package=mocks

type Importer interface {
	ImportFaculty(ctx context.Context, sheet service.Sheet) (importer.Response, error)
	ImportVenues(ctx context.Context, sheet service.Sheet) (importer.Response, error)
}
