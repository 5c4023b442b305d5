package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/school_ledger/internal/apperrors"
	"github.com/SscSPs/school_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/school_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/school_ledger/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

func copyTransaction(t domain.Transaction) domain.Transaction {
	t.Tags = append([]string(nil), t.Tags...)
	t.Attachments = append([]string(nil), t.Attachments...)
	return t
}

func (r *repo) SaveTransaction(_ context.Context, txn domain.Transaction) error {
	defer r.write()()
	if err := r.fail("SaveTransaction"); err != nil {
		return err
	}
	for _, existing := range r.st().transactions {
		if existing.TransactionNo == txn.TransactionNo || existing.TransactionID == txn.TransactionID {
			return fmt.Errorf("%w: transaction number %s", apperrors.ErrDuplicate, txn.TransactionNo)
		}
	}
	r.st().transactions[txn.TransactionID] = copyTransaction(txn)
	return nil
}

func (r *repo) UpdateTransaction(_ context.Context, txn domain.Transaction) error {
	defer r.write()()
	if err := r.fail("UpdateTransaction"); err != nil {
		return err
	}
	if _, ok := r.st().transactions[txn.TransactionID]; !ok {
		return notFound("transaction", txn.TransactionID)
	}
	r.st().transactions[txn.TransactionID] = copyTransaction(txn)
	return nil
}

func (r *repo) DeleteTransaction(_ context.Context, transactionID string) error {
	defer r.write()()
	if err := r.fail("DeleteTransaction"); err != nil {
		return err
	}
	if _, ok := r.st().transactions[transactionID]; !ok {
		return notFound("transaction", transactionID)
	}
	for _, entry := range r.st().journals {
		if entry.TransactionID != nil && *entry.TransactionID == transactionID {
			return fmt.Errorf("%w: transaction %s has journal entries", apperrors.ErrConflict, transactionID)
		}
	}
	delete(r.st().transactions, transactionID)
	return nil
}

func (r *repo) FindTransactionByID(_ context.Context, transactionID string) (*domain.Transaction, error) {
	defer r.read()()
	txn, ok := r.st().transactions[transactionID]
	if !ok {
		return nil, notFound("transaction", transactionID)
	}
	txn = copyTransaction(txn)
	return &txn, nil
}

func (r *repo) LockTransactionForUpdate(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return r.FindTransactionByID(ctx, transactionID)
}

func (r *repo) ListTransactions(_ context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, *string, error) {
	defer r.read()()

	var cursor *pagination.Cursor
	if filter.NextToken != nil && *filter.NextToken != "" {
		c, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		cursor = &c
	}
	matched := make([]domain.Transaction, 0)
	for _, txn := range r.st().transactions {
		switch {
		case filter.Type != nil && txn.Type != *filter.Type:
			continue
		case filter.Status != nil && txn.Status != *filter.Status:
			continue
		case filter.CategoryID != nil && txn.CategoryID != *filter.CategoryID:
			continue
		case !domain.WithinDays(txn.Date, filter.From, filter.To):
			continue
		case cursor != nil && !cursor.After(txn.Date, txn.CreatedAt, txn.TransactionID):
			continue
		}
		matched = append(matched, copyTransaction(txn))
	}
	sortNewestFirst(matched)

	limit := pagination.NormalizeLimit(filter.Limit)
	if len(matched) <= limit {
		return matched, nil, nil
	}
	page := matched[:limit]
	last := page[len(page)-1]
	token := pagination.EncodeToken(pagination.Cursor{Date: last.Date, CreatedAt: last.CreatedAt, ID: last.TransactionID})
	return page, &token, nil
}

func sortNewestFirst(txns []domain.Transaction) {
	sort.Slice(txns, func(i, j int) bool {
		a, b := txns[i], txns[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.TransactionID > b.TransactionID
	})
}

func (r *repo) SumPostedByCategory(_ context.Context, categoryID string, from, to time.Time) (decimal.Decimal, error) {
	defer r.read()()
	if err := r.fail("SumPostedByCategory"); err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, txn := range r.st().transactions {
		if txn.Status == domain.StatusPosted && txn.CategoryID == categoryID && domain.WithinDays(txn.Date, &from, &to) {
			total = total.Add(txn.Amount)
		}
	}
	return total, nil
}
