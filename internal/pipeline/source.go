package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"payroll-gini/internal/domain"
	"payroll-gini/internal/loader"
	"payroll-gini/internal/storage"
)

// Source names used as metric labels.
const (
	SourceCSV   = "csv"
	SourceStore = "store"
)

// RecordSource supplies team-season records in input order.
type RecordSource interface {
	Records(ctx context.Context) ([]domain.TeamSeasonRecord, error)
	Name() string
}

// CSVSource reads records from a CSV file.
type CSVSource struct {
	Path string
}

// Records loads the file with the loader.
func (s CSVSource) Records(_ context.Context) ([]domain.TeamSeasonRecord, error) {
	return loader.LoadFile(s.Path)
}

// Name returns SourceCSV.
func (s CSVSource) Name() string { return SourceCSV }

// StoreSource reads a stored batch. A nil BatchID selects the latest batch.
type StoreSource struct {
	Store   storage.TeamSeasonStore
	BatchID uuid.UUID
}

// Records fetches the batch records.
func (s StoreSource) Records(ctx context.Context) ([]domain.TeamSeasonRecord, error) {
	id := s.BatchID
	if id == uuid.Nil {
		latest, err := s.Store.LatestBatch(ctx)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, fmt.Errorf("no stored batches: %w", err)
			}
			return nil, fmt.Errorf("latest batch: %w", err)
		}
		id = latest.ID
	}

	records, err := s.Store.GetBatch(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("batch %s: %w", id, err)
	}
	return records, nil
}

// Name returns SourceStore.
func (s StoreSource) Name() string { return SourceStore }

// Compile-time interface checks.
var (
	_ RecordSource = CSVSource{}
	_ RecordSource = StoreSource{}
)
