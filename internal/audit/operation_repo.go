package audit

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/clusterkv/go-cache-gateway/internal/cache/domain"
	"github.com/google/uuid"
)

// OperationRepository handles PostgreSQL persistence of cache operation
// audit records
type OperationRepository struct {
	db *sql.DB
}

// NewOperationRepository creates a new OperationRepository
func NewOperationRepository(db *sql.DB) *OperationRepository {
	return &OperationRepository{db: db}
}

// Record inserts one audit record
func (r *OperationRepository) Record(ctx context.Context, rec *domain.OperationRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}

	query := `
		INSERT INTO cache_operations (
			id, store, operation, category, duration_ms, timed_out, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		rec.ID,
		rec.Store,
		rec.Operation,
		rec.Category,
		rec.DurationMs,
		rec.TimedOut,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record operation: %w", err)
	}

	return nil
}

// ListByStore returns the most recent audit records for a store, newest
// first
func (r *OperationRepository) ListByStore(ctx context.Context, store string, limit int) ([]*domain.OperationRecord, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT id, store, operation, category, duration_ms, timed_out, created_at
		FROM cache_operations
		WHERE store = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, store, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list operations: %w", err)
	}
	defer rows.Close()

	var records []*domain.OperationRecord
	for rows.Next() {
		var rec domain.OperationRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.Store,
			&rec.Operation,
			&rec.Category,
			&rec.DurationMs,
			&rec.TimedOut,
			&rec.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan operation: %w", err)
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate operations: %w", err)
	}

	return records, nil
}

// CountTimedOut returns how many recorded operations on a store exhausted
// their timeout budget
func (r *OperationRepository) CountTimedOut(ctx context.Context, store string) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM cache_operations WHERE store = $1 AND timed_out`,
		store,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count timed out operations: %w", err)
	}
	return count, nil
}
