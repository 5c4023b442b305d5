package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/school_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/school_ledger/internal/models"
	"github.com/SscSPs/school_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(db DBTX) portsrepo.AccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{db: db}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepository
var _ portsrepo.AccountRepository = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, code, name, account_type, description, is_active, balance,
	created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.Code,
		&m.Name,
		&m.AccountType,
		&m.Description,
		&m.IsActive,
		&m.Balance,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.db.Exec(ctx, query,
		m.AccountID,
		m.Code,
		m.Name,
		m.AccountType,
		m.Description,
		m.IsActive,
		m.Balance,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return mapError(err, "account "+m.Code)
}

func (r *PgxAccountRepository) findOne(ctx context.Context, what, where string, arg any) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE ` + where
	m, err := scanAccount(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		return nil, mapError(err, what)
	}
	acc := mapping.ToDomainAccount(m)
	return &acc, nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return r.findOne(ctx, "account "+accountID, "account_id = $1", accountID)
}

// FindAccountByCode retrieves an account by its chart-of-accounts code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	return r.findOne(ctx, "account code "+code, "code = $1", code)
}

// LockAccountForUpdate reads the account with a row lock held until the surrounding
// transaction ends.
func (r *PgxAccountRepository) LockAccountForUpdate(ctx context.Context, accountID string) (*domain.Account, error) {
	return r.findOne(ctx, "account "+accountID, "account_id = $1 FOR UPDATE", accountID)
}

// ListAccounts returns the chart of accounts ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	rows, err := r.db.Query(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY code`)
	if err != nil {
		return nil, mapError(err, "list accounts")
	}
	defer rows.Close()

	var ms []models.Account
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, mapError(err, "scan account")
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err, "iterate accounts")
	}
	return mapping.ToDomainAccountSlice(ms), nil
}

// AddToBalance applies delta in a single statement so the database does the arithmetic
// on the locked row, and returns the new balance.
func (r *PgxAccountRepository) AddToBalance(ctx context.Context, accountID string, delta decimal.Decimal, userID string, now time.Time) (decimal.Decimal, error) {
	query := `
		UPDATE accounts
		SET balance = balance + $1, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $4
		RETURNING balance;
	`
	var balance decimal.Decimal
	if err := r.db.QueryRow(ctx, query, delta, now, userID, accountID).Scan(&balance); err != nil {
		return decimal.Zero, mapError(err, fmt.Sprintf("account %s balance", accountID))
	}
	return balance, nil
}
