package pgsql

import (
	"context"

	"github.com/SscSPs/school_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/school_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pgxUnitOfWork struct {
	pool *pgxpool.Pool
}

var _ portsrepo.UnitOfWork = (*pgxUnitOfWork)(nil)

// WithinTx runs fn in a READ COMMITTED transaction. Row locks taken with FOR UPDATE
// and advisory locks on sequence prefixes serialise the writes that need it.
func (u *pgxUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, repos portsrepo.Repositories) error) error {
	tx, err := u.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return apperrors.NewPersistenceError("failed to begin transaction", err)
	}
	// Will be ignored if the transaction is committed successfully
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(ctx, newRepositories(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return mapError(err, "commit transaction")
	}
	return nil
}
