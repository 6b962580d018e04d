package exportmap

import (
	"context"
	"time"
)

// ExternalSystem and ExportMapping describe which (table, column) pairs feed
// which downstream system. Static configuration: the import pipeline never
// touches these tables, they only share the store.

type ExternalSystem struct {
	ID        int
	Name      string
	StartDate time.Time
	EndDate   time.Time
	UpdatedAt time.Time
}

type ExportMapping struct {
	ID          int
	SystemID    int
	TableName   string
	ColumnName  string
	TransformID string
	UpdatedAt   time.Time
}

type Repository interface {
	GetSystems(ctx context.Context) ([]*ExternalSystem, error)
	GetMappings(ctx context.Context) ([]*ExportMapping, error)
}
