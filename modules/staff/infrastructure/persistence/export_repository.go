package persistence

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"

	"staffledger/modules/staff/domain/entities/exportmap"
	"staffledger/pkg/composables"
)

type ExportRepository struct{}

func NewExportRepository() exportmap.Repository {
	return &ExportRepository{}
}

func (r *ExportRepository) GetSystems(ctx context.Context) ([]*exportmap.ExternalSystem, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(
		ctx,
		`SELECT system_id, system_name, start_date, end_date, updated_at
		 FROM external_systems ORDER BY system_id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var systems []*exportmap.ExternalSystem
	for rows.Next() {
		var (
			s     exportmap.ExternalSystem
			start pgtype.Date
			end   pgtype.Date
		)
		if err := rows.Scan(&s.ID, &s.Name, &start, &end, &s.UpdatedAt); err != nil {
			return nil, err
		}
		s.StartDate = dateValue(start)
		s.EndDate = dateValue(end)
		systems = append(systems, &s)
	}
	return systems, rows.Err()
}

func (r *ExportRepository) GetMappings(ctx context.Context) ([]*exportmap.ExportMapping, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(
		ctx,
		`SELECT export_setting_id, system_id, table_name, column_name, transform_id, updated_at
		 FROM external_system_exports ORDER BY export_setting_id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mappings []*exportmap.ExportMapping
	for rows.Next() {
		var (
			m         exportmap.ExportMapping
			transform pgtype.Text
		)
		if err := rows.Scan(&m.ID, &m.SystemID, &m.TableName, &m.ColumnName, &transform, &m.UpdatedAt); err != nil {
			return nil, err
		}
		m.TransformID = transform.String
		mappings = append(mappings, &m)
	}
	return mappings, rows.Err()
}
