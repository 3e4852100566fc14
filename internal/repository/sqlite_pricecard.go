package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/scalehouse/internal/db"
	"github.com/alexanderramin/scalehouse/internal/domain"
)

// SQLitePriceCardRepo implements PriceCardRepo using a SQLite database.
// Reads join products so that cards carry their code and name.
type SQLitePriceCardRepo struct {
	db db.DBTX
}

// NewSQLitePriceCardRepo creates a new SQLitePriceCardRepo.
func NewSQLitePriceCardRepo(db db.DBTX) *SQLitePriceCardRepo {
	return &SQLitePriceCardRepo{db: db}
}

const cardSelect = `SELECT c.id, c.product_id, c.start_date, c.end_date, c.unit_price,
		c.created_by, c.created_at, c.updated_at, p.code, p.name
	FROM price_cards c
	JOIN products p ON p.id = c.product_id`

const cardOrder = ` ORDER BY p.code, c.start_date, c.end_date, c.id`

func (r *SQLitePriceCardRepo) Create(ctx context.Context, c *domain.PriceCard) error {
	query := `INSERT INTO price_cards (id, product_id, start_date, end_date, unit_price, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.ProductID,
		formatDate(c.StartDate),
		formatDate(c.EndDate),
		c.UnitPrice,
		c.CreatedBy,
		formatTimestamp(c.CreatedAt),
		formatTimestamp(c.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting price card: %w", err)
	}
	return nil
}

func (r *SQLitePriceCardRepo) GetByID(ctx context.Context, id string) (*domain.PriceCard, error) {
	row := r.db.QueryRowContext(ctx, cardSelect+` WHERE c.id = ?`, id)
	c, err := scanPriceCard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("price card %s: %w", id, ErrNotFound)
	}
	return c, err
}

func (r *SQLitePriceCardRepo) ListByProduct(ctx context.Context, productID string) ([]*domain.PriceCard, error) {
	return r.List(ctx, PriceCardFilter{ProductID: productID})
}

func (r *SQLitePriceCardRepo) List(ctx context.Context, f PriceCardFilter) ([]*domain.PriceCard, error) {
	var (
		where []string
		args  []any
	)
	if f.ProductID != "" {
		where = append(where, `c.product_id = ?`)
		args = append(args, f.ProductID)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToUpper(s) + "%"
		where = append(where, `(UPPER(p.code) LIKE ? OR UPPER(p.name) LIKE ?)`)
		args = append(args, like, like)
	}
	if f.From != nil {
		where = append(where, `c.end_date >= ?`)
		args = append(args, formatDate(*f.From))
	}
	if f.To != nil {
		where = append(where, `c.start_date <= ?`)
		args = append(args, formatDate(*f.To))
	}

	query := cardSelect
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += cardOrder

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing price cards: %w", err)
	}
	defer rows.Close()

	var cards []*domain.PriceCard
	for rows.Next() {
		c, err := scanPriceCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating price cards: %w", err)
	}
	return cards, nil
}

func (r *SQLitePriceCardRepo) CountByProduct(ctx context.Context, productID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM price_cards WHERE product_id = ?`, productID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting price cards: %w", err)
	}
	return n, nil
}

func (r *SQLitePriceCardRepo) Update(ctx context.Context, c *domain.PriceCard) error {
	query := `UPDATE price_cards SET product_id = ?, start_date = ?, end_date = ?, unit_price = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		c.ProductID,
		formatDate(c.StartDate),
		formatDate(c.EndDate),
		c.UnitPrice,
		formatTimestamp(c.UpdatedAt),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating price card: %w", err)
	}
	return expectOneRow(res, "price card", c.ID)
}

func (r *SQLitePriceCardRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM price_cards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting price card: %w", err)
	}
	return expectOneRow(res, "price card", id)
}

func scanPriceCard(row rowScanner) (*domain.PriceCard, error) {
	var c domain.PriceCard
	var startStr, endStr, createdAtStr, updatedAtStr string

	err := row.Scan(
		&c.ID, &c.ProductID, &startStr, &endStr, &c.UnitPrice,
		&c.CreatedBy, &createdAtStr, &updatedAtStr,
		&c.ProductCode, &c.ProductName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning price card: %w", err)
	}

	var parseErr error
	c.StartDate, parseErr = time.Parse(domain.DateLayout, startStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing start_date: %w", parseErr)
	}
	c.EndDate, parseErr = time.Parse(domain.DateLayout, endStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing end_date: %w", parseErr)
	}
	c.CreatedAt, c.UpdatedAt, parseErr = parseTimestamps(createdAtStr, updatedAtStr)
	if parseErr != nil {
		return nil, parseErr
	}
	return &c, nil
}
