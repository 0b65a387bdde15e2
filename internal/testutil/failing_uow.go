package testutil

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/alexanderramin/studyplanner/internal/db"
)

// FailingUoW wraps a real unit of work and makes the FailOn-th ExecContext
// inside each transaction return Err, counting from 1. Reads are not counted.
// Rollback is left to the wrapped unit of work.
type FailingUoW struct {
	Inner  db.UnitOfWork
	FailOn int32
	Err    error
}

// FailOnNthExec wraps the SQLite unit of work over database.
func FailOnNthExec(database *sql.DB, n int32, err error) *FailingUoW {
	return &FailingUoW{Inner: db.NewSQLiteUnitOfWork(database), FailOn: n, Err: err}
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return u.Inner.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &countingExec{DBTX: tx, failOn: u.FailOn, err: u.Err})
	})
}

type countingExec struct {
	db.DBTX
	count  atomic.Int32
	failOn int32
	err    error
}

func (c *countingExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if c.count.Add(1) == c.failOn {
		return nil, c.err
	}
	return c.DBTX.ExecContext(ctx, query, args...)
}
