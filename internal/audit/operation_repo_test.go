package audit

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/clusterkv/go-cache-gateway/internal/cache/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupOperationRepo(t *testing.T) (*OperationRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewOperationRepository(db)
	return repo, mock, db
}

func TestOperationRepository_Record(t *testing.T) {
	repo, mock, db := setupOperationRepo(t)
	defer db.Close()

	t.Run("inserts a record and assigns an id", func(t *testing.T) {
		rec := &domain.OperationRecord{
			Store:      "users",
			Operation:  "put",
			Category:   domain.CategoryMutative,
			DurationMs: 12,
			TimedOut:   false,
			CreatedAt:  time.Now().UTC(),
		}

		mock.ExpectExec(`INSERT INTO cache_operations`).
			WithArgs(
				sqlmock.AnyArg(), // id (UUID)
				"users",
				"put",
				domain.CategoryMutative,
				int64(12),
				false,
				sqlmock.AnyArg(), // created_at
			).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Record(context.Background(), rec)
		require.NoError(t, err)
		assert.NotEmpty(t, rec.ID)

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("keeps a caller-provided id", func(t *testing.T) {
		rec := &domain.OperationRecord{
			ID:        "fixed-id",
			Store:     "users",
			Operation: "get",
			Category:  domain.CategoryRead,
			CreatedAt: time.Now().UTC(),
		}

		mock.ExpectExec(`INSERT INTO cache_operations`).
			WithArgs("fixed-id", "users", "get", domain.CategoryRead, int64(0), false, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Record(context.Background(), rec))
		assert.Equal(t, "fixed-id", rec.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOperationRepository_ListByStore(t *testing.T) {
	repo, mock, db := setupOperationRepo(t)
	defer db.Close()

	t.Run("lists records newest first", func(t *testing.T) {
		now := time.Now().UTC()

		mock.ExpectQuery(`SELECT id, store, operation, category`).
			WithArgs("users", 100).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "store", "operation", "category", "duration_ms", "timed_out", "created_at",
			}).
				AddRow("id-2", "users", "get", domain.CategoryRead, int64(3), false, now).
				AddRow("id-1", "users", "put", domain.CategoryMutative, int64(15), true, now.Add(-time.Minute)))

		records, err := repo.ListByStore(context.Background(), "users", 0)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "id-2", records[0].ID)
		assert.True(t, records[1].TimedOut)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("caps negative limits at the default", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, store, operation, category`).
			WithArgs("users", 100).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "store", "operation", "category", "duration_ms", "timed_out", "created_at",
			}))

		records, err := repo.ListByStore(context.Background(), "users", -5)
		require.NoError(t, err)
		assert.Empty(t, records)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOperationRepository_CountTimedOut(t *testing.T) {
	repo, mock, db := setupOperationRepo(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM cache_operations`).
		WithArgs("users").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(4)))

	count, err := repo.CountTimedOut(context.Background(), "users")
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
	require.NoError(t, mock.ExpectationsWereMet())
}
