package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/school_ledger/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx, so a repository runs unchanged
// inside or outside a unit of work.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	db DBTX
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgSerialization       = "40001"
	pgDeadlockDetected    = "40P01"
)

// mapError turns a pgx error into the matching application error kind.
func mapError(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFoundError(what + " not found")
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s (%s)", apperrors.ErrDuplicate, what, pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return apperrors.NewAppError(apperrors.ErrNotFound, what+" references a missing row", err)
		case pgCheckViolation:
			return apperrors.NewAppError(apperrors.ErrValidation, what+" violates "+pgErr.ConstraintName, err)
		case pgSerialization, pgDeadlockDetected:
			return apperrors.NewAppError(apperrors.ErrConflict, what+" conflicted with a concurrent change", err)
		}
	}
	return apperrors.NewPersistenceError(what, err)
}
