package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/SscSPs/school_ledger/internal/apperrors"
	"github.com/SscSPs/school_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/school_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/school_ledger/internal/core/ports/services"
	"github.com/SscSPs/school_ledger/internal/dto"
	"github.com/SscSPs/school_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// AccountLedger owns the chart of accounts and is the only component that moves balances.
type AccountLedger struct {
	BaseService
	accounts portsrepo.AccountRepository
}

var _ portssvc.AccountSvcFacade = (*AccountLedger)(nil)

// NewAccountLedger creates the ledger over the given account repository.
func NewAccountLedger(accounts portsrepo.AccountRepository, opts ...Option) *AccountLedger {
	return &AccountLedger{
		BaseService: newBaseService(opts),
		accounts:    accounts,
	}
}

// FindByCode resolves an account by code through reader, which may be transaction-scoped.
func (l *AccountLedger) FindByCode(ctx context.Context, reader portsrepo.AccountReader, code string) (*domain.Account, error) {
	account, err := reader.FindAccountByCode(ctx, code)
	if err != nil {
		return nil, notFoundAs(err, ErrAccountNotFound, "code "+code)
	}
	return account, nil
}

// ApplyDelta locks the account and adds delta to its balance. It must be called inside the
// caller's unit of work so a failed posting never leaves a partial balance change.
func (l *AccountLedger) ApplyDelta(ctx context.Context, accounts portsrepo.AccountWriter, accountID string, delta decimal.Decimal, userID string) (decimal.Decimal, error) {
	if _, err := accounts.LockAccountForUpdate(ctx, accountID); err != nil {
		return decimal.Zero, notFoundAs(err, ErrAccountNotFound, accountID)
	}
	balance, err := accounts.AddToBalance(ctx, accountID, delta, userID, l.Now())
	if err != nil {
		l.LogError(ctx, err, "Failed to apply balance delta", slog.String("account_id", accountID), slog.String("delta", delta.String()))
		return decimal.Zero, fmt.Errorf("failed to update balance of account %s: %w", accountID, err)
	}
	return balance, nil
}

// ApplyLines nets the lines into one delta per account (debits minus credits) and applies
// them. Every affected account is locked first in ID order so concurrent postings cannot deadlock.
func (l *AccountLedger) ApplyLines(ctx context.Context, accounts portsrepo.AccountWriter, lines []domain.JournalLine, userID string) error {
	deltas := accounting.BalanceDeltas(lines)
	ids := make([]string, 0, len(deltas))
	for id := range deltas {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if _, err := accounts.LockAccountForUpdate(ctx, id); err != nil {
			return notFoundAs(err, ErrAccountNotFound, id)
		}
	}

	for _, id := range ids {
		if _, err := l.ApplyDelta(ctx, accounts, id, deltas[id], userID); err != nil {
			return err
		}
	}
	return nil
}

// CreateAccount adds an account to the chart of accounts with a zero balance.
func (l *AccountLedger) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if existing, err := l.accounts.FindAccountByCode(ctx, req.Code); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: account code %s", apperrors.ErrDuplicate, req.Code)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check account code %s: %w", req.Code, err)
	}

	account := domain.Account{
		AccountID:   l.NewID(),
		Code:        req.Code,
		Name:        req.Name,
		AccountType: req.AccountType,
		Description: req.Description,
		IsActive:    true,
		Balance:     decimal.Zero,
		AuditFields: domain.NewAuditFields(creatorUserID, l.Now()),
	}

	if err := l.accounts.SaveAccount(ctx, account); err != nil {
		l.LogError(ctx, err, "Failed to save account", slog.String("code", account.Code))
		return nil, fmt.Errorf("failed to save account %s: %w", account.Code, err)
	}

	l.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

func (l *AccountLedger) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := l.accounts.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, notFoundAs(err, ErrAccountNotFound, accountID)
	}
	return account, nil
}

func (l *AccountLedger) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	return l.FindByCode(ctx, l.accounts, code)
}

func (l *AccountLedger) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	accounts, err := l.accounts.ListAccounts(ctx)
	if err != nil {
		l.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}
