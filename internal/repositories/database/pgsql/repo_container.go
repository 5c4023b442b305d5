package pgsql

import (
	portsrepo "github.com/SscSPs/school_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every repository against the pool plus a unit of work that
// hands out the same repositories bound to a pgx.Tx.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		Repositories: newRepositories(dbPool),
		UnitOfWork:   &pgxUnitOfWork{pool: dbPool},
	}
}

func newRepositories(db DBTX) portsrepo.Repositories {
	return portsrepo.Repositories{
		Accounts:     newPgxAccountRepository(db),
		Categories:   newPgxCategoryRepository(db),
		Transactions: newPgxTransactionRepository(db),
		Journals:     newPgxJournalRepository(db),
		Sequences:    newPgxSequenceRepository(db),
		Budgets:      newPgxBudgetRepository(db),
	}
}
