package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"payroll-gini/internal/domain"
	"payroll-gini/internal/storage"
)

// TeamSeasonStore implements storage.TeamSeasonStore using PostgreSQL.
type TeamSeasonStore struct {
	pool *Pool
}

// NewTeamSeasonStore creates a new TeamSeasonStore.
func NewTeamSeasonStore(pool *Pool) *TeamSeasonStore {
	return &TeamSeasonStore{pool: pool}
}

// Compile-time interface check.
var _ storage.TeamSeasonStore = (*TeamSeasonStore)(nil)

// InsertBatch stores the batch row and its records in one transaction.
// Records are written with COPY; row_index preserves input order.
func (s *TeamSeasonStore) InsertBatch(ctx context.Context, batch domain.Batch, records []domain.TeamSeasonRecord) error {
	if batch.ID == uuid.Nil || len(records) == 0 {
		return storage.ErrInvalidInput
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO ingest_batches (batch_id, source, record_count)
		VALUES ($1, $2, $3)
	`, batch.ID, batch.Source, len(records))
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert batch: %w", err)
	}

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"team_seasons"},
		[]string{"batch_id", "row_index", "season", "payroll", "win_pct"},
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			r := records[i]
			return []any{batch.ID, i, r.Season, r.Payroll, r.WinPct}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("copy team seasons: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// GetBatch retrieves records of a batch in insertion order. Returns ErrNotFound if not exists.
func (s *TeamSeasonStore) GetBatch(ctx context.Context, batchID uuid.UUID) ([]domain.TeamSeasonRecord, error) {
	query := `
		SELECT season, payroll, win_pct
		FROM team_seasons
		WHERE batch_id = $1
		ORDER BY row_index ASC
	`

	rows, err := s.pool.Query(ctx, query, batchID)
	if err != nil {
		return nil, fmt.Errorf("get team seasons by batch: %w", err)
	}
	defer rows.Close()

	var records []domain.TeamSeasonRecord
	for rows.Next() {
		var r domain.TeamSeasonRecord
		if err := rows.Scan(&r.Season, &r.Payroll, &r.WinPct); err != nil {
			return nil, fmt.Errorf("scan team season row: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate team season rows: %w", err)
	}

	// Batches always hold at least one record.
	if len(records) == 0 {
		return nil, storage.ErrNotFound
	}
	return records, nil
}

// LatestBatch returns the most recently inserted batch. Returns ErrNotFound if none.
func (s *TeamSeasonStore) LatestBatch(ctx context.Context) (*domain.Batch, error) {
	query := `
		SELECT batch_id, source, record_count, created_at
		FROM ingest_batches
		ORDER BY seq DESC
		LIMIT 1
	`

	b, err := scanBatch(s.pool.QueryRow(ctx, query))
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get latest batch: %w", err)
	}
	return b, nil
}

// ListBatches returns all batches, oldest first.
func (s *TeamSeasonStore) ListBatches(ctx context.Context) ([]*domain.Batch, error) {
	query := `
		SELECT batch_id, source, record_count, created_at
		FROM ingest_batches
		ORDER BY seq ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var batches []*domain.Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan batch row: %w", err)
		}
		batches = append(batches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate batch rows: %w", err)
	}
	return batches, nil
}

// scanBatch scans a single row into a Batch.
func scanBatch(row pgx.Row) (*domain.Batch, error) {
	var b domain.Batch
	if err := row.Scan(&b.ID, &b.Source, &b.Records, &b.CreatedAt); err != nil {
		return nil, err
	}
	b.CreatedAt = b.CreatedAt.UTC()
	return &b, nil
}
