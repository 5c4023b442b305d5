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
)

func copyEntry(e domain.JournalEntry) domain.JournalEntry {
	e.Lines = append([]domain.JournalLine(nil), e.Lines...)
	return e
}

func (r *repo) SaveJournalEntry(_ context.Context, entry domain.JournalEntry) error {
	defer r.write()()
	if err := r.fail("SaveJournalEntry"); err != nil {
		return err
	}
	for _, existing := range r.st().journals {
		if existing.EntryNo == entry.EntryNo || existing.JournalEntryID == entry.JournalEntryID {
			return fmt.Errorf("%w: journal entry number %s", apperrors.ErrDuplicate, entry.EntryNo)
		}
	}
	if entry.TransactionID != nil {
		if _, ok := r.st().transactions[*entry.TransactionID]; !ok {
			return notFound("transaction", *entry.TransactionID)
		}
	}
	for _, line := range entry.Lines {
		if _, ok := r.st().accounts[line.AccountID]; !ok {
			return notFound("account", line.AccountID)
		}
	}
	r.st().journals[entry.JournalEntryID] = copyEntry(entry)
	return nil
}

func (r *repo) FindJournalEntryByID(_ context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	defer r.read()()
	entry, ok := r.st().journals[journalEntryID]
	if !ok {
		return nil, notFound("journal entry", journalEntryID)
	}
	entry = copyEntry(entry)
	return &entry, nil
}

func (r *repo) FindJournalEntryByTransactionID(_ context.Context, transactionID string) (*domain.JournalEntry, error) {
	defer r.read()()
	for _, entry := range r.st().journals {
		if entry.TransactionID != nil && *entry.TransactionID == transactionID && !entry.IsReversal() {
			entry = copyEntry(entry)
			return &entry, nil
		}
	}
	return nil, notFound("journal entry for transaction", transactionID)
}

func (r *repo) LockJournalEntryForUpdate(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	return r.FindJournalEntryByID(ctx, journalEntryID)
}

func (r *repo) MarkJournalEntryReversed(_ context.Context, journalEntryID string, reversingEntryID string, reversedBy string, reversedAt time.Time) error {
	defer r.write()()
	if err := r.fail("MarkJournalEntryReversed"); err != nil {
		return err
	}
	entry, ok := r.st().journals[journalEntryID]
	if !ok {
		return notFound("journal entry", journalEntryID)
	}
	entry.Status = domain.JournalReversed
	entry.ReversedByEntryID = &reversingEntryID
	entry.ReversedBy = &reversedBy
	entry.ReversedAt = &reversedAt
	entry.LastUpdatedAt = reversedAt
	entry.LastUpdatedBy = reversedBy
	r.st().journals[journalEntryID] = entry
	return nil
}

func (r *repo) ListJournalEntries(_ context.Context, filter portsrepo.JournalEntryFilter) ([]domain.JournalEntry, *string, error) {
	defer r.read()()

	var cursor *pagination.Cursor
	if filter.NextToken != nil && *filter.NextToken != "" {
		c, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		cursor = &c
	}

	matched := make([]domain.JournalEntry, 0)
	for _, entry := range r.st().journals {
		if filter.Status != nil && entry.Status != *filter.Status {
			continue
		}
		if !filter.IncludeReversals && entry.IsReversal() {
			continue
		}
		if cursor != nil && !cursor.After(entry.Date, entry.CreatedAt, entry.JournalEntryID) {
			continue
		}
		matched = append(matched, copyEntry(entry))
	}
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.JournalEntryID > b.JournalEntryID
	})

	limit := pagination.NormalizeLimit(filter.Limit)
	if len(matched) <= limit {
		return matched, nil, nil
	}
	page := matched[:limit]
	last := page[len(page)-1]
	token := pagination.EncodeToken(pagination.Cursor{Date: last.Date, CreatedAt: last.CreatedAt, ID: last.JournalEntryID})
	return page, &token, nil
}
