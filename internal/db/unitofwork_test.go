package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/alexanderramin/scalehouse/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openUoW(t *testing.T) (*sql.DB, *db.SQLiteUnitOfWork) {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database, db.NewSQLiteUnitOfWork(database)
}

func insertProduct(ctx context.Context, tx db.DBTX, id, code string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO products (id, code, name, created_at, updated_at)
		VALUES (?, ?, ?, '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`, id, code, code)
	return err
}

func productCount(t *testing.T, database *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM products`).Scan(&n))
	return n
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	database, uow := openUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertProduct(ctx, tx, "p1", "WOOD-A")
	})
	require.NoError(t, err)
	assert.Equal(t, 1, productCount(t, database))
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	database, uow := openUoW(t)
	sentinel := errors.New("history write failed")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertProduct(ctx, tx, "p1", "WOOD-A"); err != nil {
			return err
		}
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)
	assert.Equal(t, 0, productCount(t, database), "row should not exist after rollback")
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	database, uow := openUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertProduct(ctx, tx, "p1", "WOOD-A")
			panic("boom")
		})
	})
	assert.Equal(t, 0, productCount(t, database), "row should not exist after panic rollback")
}

func TestWithinTx_ConstraintViolationRollsBackEarlierWrites(t *testing.T) {
	database, uow := openUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertProduct(ctx, tx, "p1", "WOOD-A"); err != nil {
			return err
		}
		return insertProduct(ctx, tx, "p2", "WOOD-A")
	})
	require.Error(t, err)
	assert.Equal(t, 0, productCount(t, database))
}

func TestWithinReadTx_SeesCommittedRows(t *testing.T) {
	_, uow := openUoW(t)
	ctx := context.Background()
	require.NoError(t, uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return insertProduct(ctx, tx, "p1", "WOOD-A")
	}))

	var code string
	err := uow.WithinReadTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return tx.QueryRowContext(ctx, `SELECT code FROM products WHERE id = 'p1'`).Scan(&code)
	})
	require.NoError(t, err)
	assert.Equal(t, "WOOD-A", code)
}
