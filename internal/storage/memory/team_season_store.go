package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"payroll-gini/internal/domain"
	"payroll-gini/internal/storage"
)

// TeamSeasonStore is an in-memory implementation of storage.TeamSeasonStore.
type TeamSeasonStore struct {
	mu      sync.RWMutex
	batches map[uuid.UUID]*domain.Batch
	records map[uuid.UUID][]domain.TeamSeasonRecord
	order   []uuid.UUID // insertion order
	now     func() time.Time
}

// NewTeamSeasonStore creates a new in-memory team-season store.
func NewTeamSeasonStore() *TeamSeasonStore {
	return &TeamSeasonStore{
		batches: make(map[uuid.UUID]*domain.Batch),
		records: make(map[uuid.UUID][]domain.TeamSeasonRecord),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic CreatedAt values.
func (s *TeamSeasonStore) WithClock(now func() time.Time) *TeamSeasonStore {
	s.now = now
	return s
}

// InsertBatch stores records under batch.ID atomically.
func (s *TeamSeasonStore) InsertBatch(_ context.Context, batch domain.Batch, records []domain.TeamSeasonRecord) error {
	if batch.ID == uuid.Nil || len(records) == 0 {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.batches[batch.ID]; exists {
		return storage.ErrDuplicateKey
	}

	// Store copies to prevent external mutation
	stored := batch
	stored.Records = len(records)
	stored.CreatedAt = s.now()
	s.batches[batch.ID] = &stored

	recordsCopy := make([]domain.TeamSeasonRecord, len(records))
	copy(recordsCopy, records)
	s.records[batch.ID] = recordsCopy

	s.order = append(s.order, batch.ID)
	return nil
}

// GetBatch retrieves records of a batch in insertion order.
func (s *TeamSeasonStore) GetBatch(_ context.Context, batchID uuid.UUID) ([]domain.TeamSeasonRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, exists := s.records[batchID]
	if !exists {
		return nil, storage.ErrNotFound
	}

	result := make([]domain.TeamSeasonRecord, len(records))
	copy(result, records)
	return result, nil
}

// LatestBatch returns the most recently inserted batch.
func (s *TeamSeasonStore) LatestBatch(_ context.Context) (*domain.Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.order) == 0 {
		return nil, storage.ErrNotFound
	}

	batchCopy := *s.batches[s.order[len(s.order)-1]]
	return &batchCopy, nil
}

// ListBatches returns all batches, oldest first.
func (s *TeamSeasonStore) ListBatches(_ context.Context) ([]*domain.Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Batch, 0, len(s.order))
	for _, id := range s.order {
		batchCopy := *s.batches[id]
		result = append(result, &batchCopy)
	}
	return result, nil
}

// Verify interface compliance at compile time.
var _ storage.TeamSeasonStore = (*TeamSeasonStore)(nil)
