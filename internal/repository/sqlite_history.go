package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/scalehouse/internal/db"
	"github.com/alexanderramin/scalehouse/internal/domain"
)

// SQLitePriceHistoryRepo implements PriceHistoryRepo. History is
// append-only; there is no Update or Delete.
type SQLitePriceHistoryRepo struct {
	db db.DBTX
}

// NewSQLitePriceHistoryRepo creates a new SQLitePriceHistoryRepo.
func NewSQLitePriceHistoryRepo(db db.DBTX) *SQLitePriceHistoryRepo {
	return &SQLitePriceHistoryRepo{db: db}
}

const historyColumns = `id, price_id, product_id, action,
	old_unit_price, new_unit_price, old_start_date, new_start_date, old_end_date, new_end_date,
	changed_by, changed_at`

func (r *SQLitePriceHistoryRepo) Append(ctx context.Context, h *domain.PriceHistory) error {
	query := `INSERT INTO price_history (` + historyColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		h.ID,
		h.PriceID,
		h.ProductID,
		string(h.Action),
		nullableFloat(h.OldUnitPrice),
		nullableFloat(h.NewUnitPrice),
		nullableTimeToString(h.OldStartDate, domain.DateLayout),
		nullableTimeToString(h.NewStartDate, domain.DateLayout),
		nullableTimeToString(h.OldEndDate, domain.DateLayout),
		nullableTimeToString(h.NewEndDate, domain.DateLayout),
		h.ChangedBy,
		formatTimestamp(h.ChangedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting price history: %w", err)
	}
	return nil
}

// ListByPrice returns the history of one card, oldest first.
func (r *SQLitePriceHistoryRepo) ListByPrice(ctx context.Context, priceID string) ([]*domain.PriceHistory, error) {
	return r.query(ctx, `SELECT `+historyColumns+` FROM price_history WHERE price_id = ? ORDER BY changed_at, rowid`, priceID)
}

// ListRecent returns the latest entries across all cards, newest first.
func (r *SQLitePriceHistoryRepo) ListRecent(ctx context.Context, limit int) ([]*domain.PriceHistory, error) {
	if limit <= 0 {
		limit = 50
	}
	return r.query(ctx, `SELECT `+historyColumns+` FROM price_history ORDER BY changed_at DESC, rowid DESC LIMIT ?`, limit)
}

func (r *SQLitePriceHistoryRepo) query(ctx context.Context, query string, args ...any) ([]*domain.PriceHistory, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing price history: %w", err)
	}
	defer rows.Close()

	var entries []*domain.PriceHistory
	for rows.Next() {
		h, err := scanHistory(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating price history: %w", err)
	}
	return entries, nil
}

func scanHistory(row rowScanner) (*domain.PriceHistory, error) {
	var h domain.PriceHistory
	var action, changedAtStr string
	var oldPrice, newPrice sql.NullFloat64
	var oldStart, newStart, oldEnd, newEnd sql.NullString

	err := row.Scan(
		&h.ID, &h.PriceID, &h.ProductID, &action,
		&oldPrice, &newPrice, &oldStart, &newStart, &oldEnd, &newEnd,
		&h.ChangedBy, &changedAtStr,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning price history: %w", err)
	}

	h.Action = domain.HistoryAction(action)
	h.OldUnitPrice = parseNullableFloat(oldPrice)
	h.NewUnitPrice = parseNullableFloat(newPrice)
	h.OldStartDate = parseNullableTime(oldStart, domain.DateLayout)
	h.NewStartDate = parseNullableTime(newStart, domain.DateLayout)
	h.OldEndDate = parseNullableTime(oldEnd, domain.DateLayout)
	h.NewEndDate = parseNullableTime(newEnd, domain.DateLayout)

	h.ChangedAt, err = time.Parse(time.RFC3339, changedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing changed_at: %w", err)
	}
	return &h, nil
}
