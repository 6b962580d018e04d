package schema

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var bootstrapDDL string

// Apply creates the ledger tables if they do not exist yet. Safe to run
// repeatedly; it never alters existing tables.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, bootstrapDDL); err != nil {
		return fmt.Errorf("apply bootstrap schema: %w", err)
	}
	return nil
}
