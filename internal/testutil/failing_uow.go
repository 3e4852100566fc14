package testutil

import (
	"context"
	"database/sql"
	"strings"

	"github.com/alexanderramin/scalehouse/internal/db"
)

// FailingUoW runs transactions on DB but fails the first statement that
// writes to Table with Err. Pointing it at price_history breaks the audit
// row that follows a card write, so tests can check both roll back.
type FailingUoW struct {
	DB    *sql.DB
	Table string
	Err   error

	// Tripped is set once Err has been returned.
	Tripped bool
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return db.NewSQLiteUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failingTx{DBTX: tx, uow: u})
	})
}

func (u *FailingUoW) WithinReadTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return db.NewSQLiteUnitOfWork(u.DB).WithinReadTx(ctx, fn)
}

type failingTx struct {
	db.DBTX
	uow *FailingUoW
}

func (f *failingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if !f.uow.Tripped && writesTo(query, f.uow.Table) {
		f.uow.Tripped = true
		return nil, f.uow.Err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

// writesTo reports whether query is an INSERT, UPDATE or DELETE on table.
func writesTo(query, table string) bool {
	q := strings.ToLower(strings.Join(strings.Fields(query), " "))
	table = strings.ToLower(table)
	for _, prefix := range []string{"insert into ", "update ", "delete from "} {
		if strings.HasPrefix(q, prefix+table+" ") || strings.HasPrefix(q, prefix+table+"(") {
			return true
		}
	}
	return false
}
