package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionFilter narrows a transaction listing.
type TransactionFilter struct {
	Type       *domain.TransactionType
	Status     *domain.TransactionStatus
	CategoryID *string
	From       *time.Time
	To         *time.Time
	Limit      int
	NextToken  *string
}

// TransactionReader defines read operations for transactions
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction by its ID.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a page of transactions ordered by date then creation time, newest first.
	// It returns the transactions, a token for the next page, and an error.
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]domain.Transaction, *string, error)

	// SumPostedByCategory sums the amounts of POSTED transactions of a category dated within [from, to].
	SumPostedByCategory(ctx context.Context, categoryID string, from, to time.Time) (decimal.Decimal, error)
}

// TransactionWriter defines write operations for transactions
type TransactionWriter interface {
	// SaveTransaction persists a new transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransaction overwrites the mutable fields of an existing transaction.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error

	// DeleteTransaction hard-deletes a transaction that was never posted to the journal.
	DeleteTransaction(ctx context.Context, transactionID string) error

	// LockTransactionForUpdate selects a transaction and locks it until the surrounding unit of work ends.
	LockTransactionForUpdate(ctx context.Context, transactionID string) (*domain.Transaction, error)
}

// TransactionRepository combines all transaction-related repository interfaces
type TransactionRepository interface {
	TransactionReader
	TransactionWriter
}
