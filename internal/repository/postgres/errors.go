package postgres

import "github.com/pkg/errors"

var (
	ErrNotFound  = errors.New("not found")
	ErrReference = errors.New("record is still referenced by allocations or attendance")
)
