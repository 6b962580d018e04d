package persistence

import (
	"context"
	"time"

	gerrors "github.com/go-faster/errors"

	"staffledger/modules/staff/domain/entities/position"
	"staffledger/pkg/composables"
)

type PositionRepository struct{}

func NewPositionRepository() position.Repository {
	return &PositionRepository{}
}

func (r *PositionRepository) Exists(ctx context.Context, id int) (bool, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return false, err
	}

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM positions WHERE position_id = $1)`, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PositionRepository) Create(ctx context.Context, p *position.Position) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(
		ctx,
		`INSERT INTO positions (position_id, position_name, updated_at) VALUES ($1, $2, $3)`,
		p.ID, p.Name, time.Now().UTC(),
	); err != nil {
		return gerrors.Wrap(err, "failed to create position")
	}
	return nil
}
