package department

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("department not found")

// Department is master data with a validity window. Imports stamp StartDate
// with the run date; backdating is not supported.
type Department struct {
	ID              int
	Name            string
	ExtensionNumber string
	StartDate       time.Time
	EndDate         time.Time
	UpdatedAt       time.Time
}

type Repository interface {
	Exists(ctx context.Context, id int) (bool, error)
	Create(ctx context.Context, d *Department) error
}
