package postgres

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payroll-gini/internal/domain"
	"payroll-gini/internal/storage"
)

func testRecords() []domain.TeamSeasonRecord {
	return []domain.TeamSeasonRecord{
		{Season: 2001, Payroll: 112287143, WinPct: 0.59375},
		{Season: 2000, Payroll: 92538260, WinPct: 87.0 / 161.0},
		{Season: 2001, Payroll: 24130000, WinPct: 85.0 / 162.0},
	}
}

func TestTeamSeasonStore_InsertAndGetBatch(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewTeamSeasonStore(pool)
	ctx := context.Background()

	batch := domain.Batch{ID: uuid.New(), Source: "payroll.csv"}
	require.NoError(t, store.InsertBatch(ctx, batch, testRecords()))

	got, err := store.GetBatch(ctx, batch.ID)
	require.NoError(t, err)
	assert.Equal(t, testRecords(), got)
}

func TestTeamSeasonStore_InsertDuplicate(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewTeamSeasonStore(pool)
	ctx := context.Background()

	batch := domain.Batch{ID: uuid.New(), Source: "payroll.csv"}
	require.NoError(t, store.InsertBatch(ctx, batch, testRecords()))

	err := store.InsertBatch(ctx, batch, testRecords())
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)

	// Failed insert must not add rows to the existing batch.
	got, err := store.GetBatch(ctx, batch.ID)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestTeamSeasonStore_InvalidInput(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewTeamSeasonStore(pool)
	ctx := context.Background()

	assert.ErrorIs(t, store.InsertBatch(ctx, domain.Batch{}, testRecords()), storage.ErrInvalidInput)
	assert.ErrorIs(t, store.InsertBatch(ctx, domain.Batch{ID: uuid.New()}, nil), storage.ErrInvalidInput)
}

func TestTeamSeasonStore_NotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewTeamSeasonStore(pool)
	ctx := context.Background()

	_, err := store.GetBatch(ctx, uuid.New())
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = store.LatestBatch(ctx)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	batches, err := store.ListBatches(ctx)
	require.NoError(t, err)
	assert.Empty(t, batches)
}

func TestTeamSeasonStore_LatestAndList(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewTeamSeasonStore(pool)
	ctx := context.Background()

	first := domain.Batch{ID: uuid.New(), Source: "a.csv"}
	second := domain.Batch{ID: uuid.New(), Source: "b.csv"}
	require.NoError(t, store.InsertBatch(ctx, first, testRecords()))
	require.NoError(t, store.InsertBatch(ctx, second, testRecords()[:2]))

	latest, err := store.LatestBatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)
	assert.Equal(t, "b.csv", latest.Source)
	assert.Equal(t, 2, latest.Records)
	assert.False(t, latest.CreatedAt.IsZero())

	batches, err := store.ListBatches(ctx)
	require.NoError(t, err)
	require.Len(t, batches, 2)
	assert.Equal(t, first.ID, batches[0].ID)
	assert.Equal(t, 3, batches[0].Records)
	assert.Equal(t, second.ID, batches[1].ID)
}
