package integrity

import (
	"context"

	"locale-manager/core/storage"
	"locale-manager/core/store"
	"locale-manager/feature/integrity/checks"

	"go.uber.org/zap"
)

// Service handles integrity checks.
type Service struct {
	client storage.Client
	bucket string
	logger *zap.Logger
	store  *store.Store
}

// NewService creates a new integrity service. st may be nil when no
// database is connected; the database checks then fail.
func NewService(client storage.Client, bucket string, logger *zap.Logger, st *store.Store) *Service {
	return &Service{
		client: client,
		bucket: bucket,
		logger: logger,
		store:  st,
	}
}

// CheckStorage returns a list of missing folders.
func (s *Service) CheckStorage(ctx context.Context) ([]string, error) {
	return checks.CheckStorage(ctx, s.client, s.bucket)
}

// FixStorage creates the missing folders.
func (s *Service) FixStorage(ctx context.Context, missing []string) error {
	return checks.FixStorage(ctx, s.client, s.bucket, s.logger, missing)
}

// CheckSchema compares the records table with the model.
func (s *Service) CheckSchema(ctx context.Context) (*checks.SchemaReport, error) {
	return checks.CheckSchema(ctx, s.store)
}

// CheckRecords validates the stored records of every application.
func (s *Service) CheckRecords(ctx context.Context) ([]*checks.AppReport, error) {
	return checks.CheckRecords(ctx, s.store)
}
