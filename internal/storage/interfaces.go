package storage

import (
	"context"

	"github.com/google/uuid"

	"payroll-gini/internal/domain"
)

// TeamSeasonStore provides access to ingested team-season records.
// Batches are append-only: a stored batch is never modified.
type TeamSeasonStore interface {
	// InsertBatch stores records under batch.ID atomically.
	// Returns ErrDuplicateKey if the batch exists, ErrInvalidInput for a nil ID or no records.
	InsertBatch(ctx context.Context, batch domain.Batch, records []domain.TeamSeasonRecord) error

	// GetBatch retrieves records of a batch in insertion order. Returns ErrNotFound if not exists.
	GetBatch(ctx context.Context, batchID uuid.UUID) ([]domain.TeamSeasonRecord, error)

	// LatestBatch returns the most recently inserted batch. Returns ErrNotFound if none.
	LatestBatch(ctx context.Context) (*domain.Batch, error)

	// ListBatches returns all batches, oldest first.
	ListBatches(ctx context.Context) ([]*domain.Batch, error)
}
