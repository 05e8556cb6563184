package store

import (
	"context"
	"errors"

	fisheryerrors "github.com/finwatch/finwatch/internal/fishery/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgStore implements all fishery store interfaces on a PostgreSQL pool.
type PgStore struct {
	db *pgxpool.Pool
}

var _ Users = (*PgStore)(nil)
var _ Ships = (*PgStore)(nil)
var _ Permits = (*PgStore)(nil)
var _ Trips = (*PgStore)(nil)
var _ Inspections = (*PgStore)(nil)
var _ Tickets = (*PgStore)(nil)

// NewPgStore creates a new fishery store backed by a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{db: dbp}
}

// withTransaction runs fn inside a transaction, rolling back on any error.
func (p *PgStore) withTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := p.db.Begin(ctx)
	if err != nil {
		return fisheryerrors.ErrTransactionAborted
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return fisheryerrors.ErrTransactionAborted
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fisheryerrors.ErrTransactionAborted
	}
	return nil
}
