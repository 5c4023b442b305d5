package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for the chart of accounts
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its unique code (e.g. "1001").
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// ListAccounts retrieves the whole chart of accounts ordered by code.
	ListAccounts(ctx context.Context) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// LockAccountForUpdate selects an account and locks it until the surrounding unit of work ends.
	LockAccountForUpdate(ctx context.Context, accountID string) (*domain.Account, error)

	// AddToBalance adds delta to the stored balance and returns the new balance.
	AddToBalance(ctx context.Context, accountID string, delta decimal.Decimal, userID string, now time.Time) (decimal.Decimal, error)
}

// AccountRepository combines all account-related repository interfaces
type AccountRepository interface {
	AccountReader
	AccountWriter
}
