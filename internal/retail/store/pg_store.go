package store

import (
	"context"
	"errors"

	retailerrors "github.com/finwatch/finwatch/internal/retail/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgStore implements Directory, Catalog and Sales on a PostgreSQL pool.
type PgStore struct {
	db *pgxpool.Pool
}

var _ Directory = (*PgStore)(nil)
var _ Catalog = (*PgStore)(nil)
var _ Sales = (*PgStore)(nil)

// NewPgStore creates a new retail store backed by a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{db: dbp}
}

// withTransaction runs fn inside a transaction, rolling back on any error.
func (p *PgStore) withTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := p.db.Begin(ctx)
	if err != nil {
		return retailerrors.ErrTransactionAborted
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return retailerrors.ErrTransactionAborted
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return retailerrors.ErrTransactionAborted
	}
	return nil
}
