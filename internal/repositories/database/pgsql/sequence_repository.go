package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/school_ledger/internal/apperrors"
	"github.com/SscSPs/school_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/school_ledger/internal/core/ports/repositories"
)

type PgxSequenceRepository struct {
	BaseRepository
}

func newPgxSequenceRepository(db DBTX) portsrepo.SequenceRepository {
	return &PgxSequenceRepository{BaseRepository: BaseRepository{db: db}}
}

var _ portsrepo.SequenceRepository = (*PgxSequenceRepository)(nil)

// sequenceSources maps each document kind to the table and column holding its numbers.
var sequenceSources = map[domain.DocumentKind]struct{ table, column string }{
	domain.DocTransaction:    {"transactions", "transaction_no"},
	domain.DocJournalEntry:   {"journal_entries", "entry_no"},
	domain.DocJournalReverse: {"journal_entries", "entry_no"},
}

// NextSequence takes a transaction-scoped advisory lock on the prefix, then returns one
// more than the highest number already issued under it. The lock is held until the
// caller's unit of work ends, so concurrent allocators for the same prefix queue up.
func (r *PgxSequenceRepository) NextSequence(ctx context.Context, kind domain.DocumentKind, prefix string) (int, error) {
	src, ok := sequenceSources[kind]
	if !ok {
		return 0, fmt.Errorf("%w: unknown document kind %q", apperrors.ErrValidation, kind)
	}

	if _, err := r.db.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, prefix); err != nil {
		return 0, mapError(err, "sequence lock for "+prefix)
	}

	query := fmt.Sprintf(`
		SELECT COALESCE(MAX(substring(%[1]s FROM char_length($1) + 1)::int), 0)
		FROM %[2]s
		WHERE starts_with(%[1]s, $1)
		  AND substring(%[1]s FROM char_length($1) + 1) ~ '^[0-9]+$';
	`, src.column, src.table)

	var highest int
	if err := r.db.QueryRow(ctx, query, prefix).Scan(&highest); err != nil {
		return 0, mapError(err, "sequence for "+prefix)
	}
	return highest + 1, nil
}
