package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/school_ledger/internal/apperrors"
	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

func (r *repo) FindAccountByID(_ context.Context, accountID string) (*domain.Account, error) {
	defer r.read()()
	acc, ok := r.st().accounts[accountID]
	if !ok {
		return nil, notFound("account", accountID)
	}
	return &acc, nil
}

func (r *repo) FindAccountByCode(_ context.Context, code string) (*domain.Account, error) {
	defer r.read()()
	for _, acc := range r.st().accounts {
		if acc.Code == code {
			return &acc, nil
		}
	}
	return nil, notFound("account code", code)
}

func (r *repo) ListAccounts(_ context.Context) ([]domain.Account, error) {
	defer r.read()()
	out := make([]domain.Account, 0, len(r.st().accounts))
	for _, acc := range r.st().accounts {
		out = append(out, acc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *repo) SaveAccount(_ context.Context, account domain.Account) error {
	defer r.write()()
	if err := r.fail("SaveAccount"); err != nil {
		return err
	}
	for _, acc := range r.st().accounts {
		if acc.Code == account.Code || acc.AccountID == account.AccountID {
			return fmt.Errorf("%w: account code %s", apperrors.ErrDuplicate, account.Code)
		}
	}
	r.st().accounts[account.AccountID] = account
	return nil
}

// LockAccountForUpdate only checks existence; the unit of work already holds the store lock.
func (r *repo) LockAccountForUpdate(ctx context.Context, accountID string) (*domain.Account, error) {
	return r.FindAccountByID(ctx, accountID)
}

func (r *repo) AddToBalance(_ context.Context, accountID string, delta decimal.Decimal, userID string, now time.Time) (decimal.Decimal, error) {
	defer r.write()()
	if err := r.fail("AddToBalance"); err != nil {
		return decimal.Zero, err
	}
	acc, ok := r.st().accounts[accountID]
	if !ok {
		return decimal.Zero, notFound("account", accountID)
	}
	acc.Balance = acc.Balance.Add(delta)
	acc.LastUpdatedAt = now
	acc.LastUpdatedBy = userID
	r.st().accounts[accountID] = acc
	return acc.Balance, nil
}
