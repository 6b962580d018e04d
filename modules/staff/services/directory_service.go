package services

import (
	"context"

	"staffledger/modules/staff/domain/aggregates/staff"
	"staffledger/modules/staff/domain/entities/exportmap"
)

// DirectoryService serves the read side: flat per-identity projections and
// the export mapping catalogue. All queries run on whatever querier the
// context carries, so it works both under a transaction and straight off the
// pool.
type DirectoryService struct {
	staff     staff.Repository
	directory staff.DirectoryRepository
	exports   exportmap.Repository
}

func NewDirectoryService(
	staffRepo staff.Repository,
	directoryRepo staff.DirectoryRepository,
	exportRepo exportmap.Repository,
) *DirectoryService {
	return &DirectoryService{
		staff:     staffRepo,
		directory: directoryRepo,
		exports:   exportRepo,
	}
}

// ListStaff returns identities ordered by hire date. limit <= 0 means all.
func (s *DirectoryService) ListStaff(ctx context.Context, limit int) ([]staff.Staff, error) {
	return s.staff.ListByHireDate(ctx, limit)
}

func (s *DirectoryService) GetUser(ctx context.Context, userID string) (staff.FlatUser, error) {
	return s.directory.Project(ctx, userID)
}

// ListUsers returns the flat projection for every identity, hire date order.
func (s *DirectoryService) ListUsers(ctx context.Context, limit int) ([]staff.FlatUser, error) {
	return s.directory.ListFlat(ctx, limit)
}

func (s *DirectoryService) ListExportSystems(ctx context.Context) ([]*exportmap.ExternalSystem, error) {
	return s.exports.GetSystems(ctx)
}

func (s *DirectoryService) ListExportMappings(ctx context.Context) ([]*exportmap.ExportMapping, error) {
	return s.exports.GetMappings(ctx)
}
