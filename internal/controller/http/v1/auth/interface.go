package auth

import (
	"context"
	"time"

	"venue-allotment/backend/internal/auth"
	"venue-allotment/backend/internal/entity"
)

//go:generate mockgen -source=interface.go -destination=mocks/mocks.go -package=mocks

type Faculty interface {
	GetByEmail(ctx context.Context, email string) (entity.Faculty, error)
	GetByID(ctx context.Context, id int) (entity.Faculty, error)
}

type Tokens interface {
	GenerateToken(userID int, role string) (string, time.Time, error)
	Revoke(ctx context.Context, claims auth.Claims) error
}
