package repositories

import (
	"context"
)

// Repositories bundles every repository the ledger core needs. Inside a unit of work
// all of them share the same underlying datastore transaction.
type Repositories struct {
	Accounts     AccountRepository
	Categories   CategoryRepository
	Transactions TransactionRepository
	Journals     JournalRepository
	Sequences    SequenceRepository
	Budgets      BudgetRepository
}

// UnitOfWork runs a function atomically: either every write made through the supplied
// repositories commits, or none does.
type UnitOfWork interface {
	// WithinTx begins a transaction, runs fn, and commits if fn returns nil.
	// Any error from fn rolls the whole unit back and is returned unchanged.
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
