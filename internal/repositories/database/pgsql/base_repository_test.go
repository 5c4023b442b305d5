package pgsql

import (
	"errors"
	"testing"

	"github.com/SscSPs/school_ledger/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no rows", pgx.ErrNoRows, apperrors.ErrNotFound},
		{"unique", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "transactions_transaction_no_key"}, apperrors.ErrDuplicate},
		{"foreign key", &pgconn.PgError{Code: pgForeignKeyViolation}, apperrors.ErrNotFound},
		{"check", &pgconn.PgError{Code: pgCheckViolation, ConstraintName: "journal_lines_one_side"}, apperrors.ErrValidation},
		{"deadlock", &pgconn.PgError{Code: pgDeadlockDetected}, apperrors.ErrConflict},
		{"other", errors.New("connection refused"), apperrors.ErrPersistence},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapError(tt.err, "thing"), tt.want)
		})
	}
	assert.NoError(t, mapError(nil, "thing"))
}
