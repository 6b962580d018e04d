package position

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("position not found")

// Position is master data: created by insert-if-absent import, never
// modified by the pipeline afterwards.
type Position struct {
	ID        int
	Name      string
	UpdatedAt time.Time
}

type Repository interface {
	Exists(ctx context.Context, id int) (bool, error)
	Create(ctx context.Context, p *Position) error
}
