package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillCreateHistory(db); err != nil {
		return fmt.Errorf("backfilling price history: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id         TEXT PRIMARY KEY,
		code       TEXT NOT NULL UNIQUE,
		name       TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS price_cards (
		id         TEXT PRIMARY KEY,
		product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		start_date TEXT NOT NULL,
		end_date   TEXT NOT NULL,
		unit_price REAL NOT NULL CHECK(unit_price >= 0),
		created_by TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		CHECK(end_date >= start_date)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_price_cards_product ON price_cards(product_id)`,
	`CREATE INDEX IF NOT EXISTS idx_price_cards_range ON price_cards(product_id, start_date, end_date)`,

	// price_history keeps rows for deleted cards, so price_id is not a
	// foreign key.
	`CREATE TABLE IF NOT EXISTS price_history (
		id             TEXT PRIMARY KEY,
		price_id       TEXT NOT NULL,
		product_id     TEXT NOT NULL,
		action         TEXT NOT NULL CHECK(action IN ('CREATE','UPDATE','DELETE')),
		old_unit_price REAL,
		new_unit_price REAL,
		old_start_date TEXT,
		new_start_date TEXT,
		old_end_date   TEXT,
		new_end_date   TEXT,
		changed_by     TEXT NOT NULL DEFAULT '',
		changed_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_price_history_price ON price_history(price_id)`,
	`CREATE INDEX IF NOT EXISTS idx_price_history_changed ON price_history(changed_at)`,
}

// migrateBackfillCreateHistory writes a synthetic CREATE row for every card
// that has no history at all, e.g. cards inserted by an older build or by
// hand. Idempotent: cards with any history row are skipped.
func migrateBackfillCreateHistory(db *sql.DB) error {
	ctx := context.Background()

	query := `INSERT INTO price_history (
			id, price_id, product_id, action,
			new_unit_price, new_start_date, new_end_date,
			changed_by, changed_at)
		SELECT lower(hex(randomblob(16))), c.id, c.product_id, 'CREATE',
			c.unit_price, c.start_date, c.end_date,
			c.created_by, c.created_at
		FROM price_cards c
		WHERE NOT EXISTS (SELECT 1 FROM price_history h WHERE h.price_id = c.id)`
	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("inserting missing CREATE rows: %w", err)
	}
	return nil
}
