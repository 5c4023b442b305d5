package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/school_ledger/internal/apperrors"
	"github.com/SscSPs/school_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/school_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/school_ledger/internal/utils/accounting"
)

// ReversalEngine undoes posted journal entries by posting their mirror image.
type ReversalEngine struct {
	BaseService
	ledger    *AccountLedger
	sequences *SequenceGenerator
	uow       portsrepo.UnitOfWork
	cache     portsrepo.BudgetActualsCache
}

// NewReversalEngine creates the engine. cache may be nil.
func NewReversalEngine(ledger *AccountLedger, sequences *SequenceGenerator, uow portsrepo.UnitOfWork, cache portsrepo.BudgetActualsCache, opts ...Option) *ReversalEngine {
	return &ReversalEngine{
		BaseService: newBaseService(opts),
		ledger:      ledger,
		sequences:   sequences,
		uow:         uow,
		cache:       cache,
	}
}

// Reverse reverses the journal entry posted for a transaction inside the caller's unit of
// work. It returns nil, nil when the transaction never reached the journal.
func (r *ReversalEngine) Reverse(ctx context.Context, repos portsrepo.Repositories, transactionID string, userID string) (*domain.JournalEntry, error) {
	original, err := repos.Journals.FindJournalEntryByTransactionID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load journal entry of transaction %s: %w", transactionID, err)
	}
	return r.reverseEntry(ctx, repos, original.JournalEntryID, userID)
}

func (r *ReversalEngine) reverseEntry(ctx context.Context, repos portsrepo.Repositories, journalEntryID string, userID string) (*domain.JournalEntry, error) {
	// Re-read under lock so two concurrent reversals cannot both pass the guard.
	original, err := repos.Journals.LockJournalEntryForUpdate(ctx, journalEntryID)
	if err != nil {
		return nil, notFoundAs(err, ErrJournalEntryNotFound, journalEntryID)
	}
	if original.Status == domain.JournalReversed || original.IsReversal() {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyReversed, original.EntryNo)
	}

	reversalID := r.NewID()
	lines := accounting.MirrorLines(reversalID, original.Lines, r.NewID)
	if _, _, err := accounting.ValidateBalanced(lines); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrValidation, "original journal entry is not balanced", err)
	}

	entryNo, err := r.sequences.Next(ctx, repos.Sequences, domain.DocJournalReverse)
	if err != nil {
		return nil, err
	}

	now := r.Now()
	originalID := original.JournalEntryID
	reversal := domain.JournalEntry{
		JournalEntryID: reversalID,
		EntryNo:        entryNo,
		TransactionID:  original.TransactionID,
		Description:    fmt.Sprintf("Reversal of %s: %s", original.EntryNo, original.Description),
		Date:           now,
		Reference:      original.EntryNo,
		TotalDebit:     original.TotalCredit,
		TotalCredit:    original.TotalDebit,
		IsBalanced:     true,
		Status:         domain.JournalPosted,
		ReversalOfID:   &originalID,
		Lines:          lines,
		AuditFields:    domain.NewAuditFields(userID, now),
	}

	if err := repos.Journals.SaveJournalEntry(ctx, reversal); err != nil {
		r.LogError(ctx, err, "Failed to save reversal entry", slog.String("entry_no", entryNo))
		return nil, fmt.Errorf("failed to save reversal entry %s: %w", entryNo, err)
	}

	if err := r.ledger.ApplyLines(ctx, repos.Accounts, lines, userID); err != nil {
		return nil, fmt.Errorf("failed to apply reversal entry %s: %w", entryNo, err)
	}

	if err := repos.Journals.MarkJournalEntryReversed(ctx, originalID, reversalID, userID, now); err != nil {
		r.LogError(ctx, err, "Failed to mark journal entry reversed", slog.String("original_entry_no", original.EntryNo))
		return nil, fmt.Errorf("failed to mark journal entry %s reversed: %w", original.EntryNo, err)
	}

	r.LogInfo(ctx, "Journal entry reversed", slog.String("original_entry_no", original.EntryNo), slog.String("reversal_entry_no", entryNo))
	return &reversal, nil
}

// ReverseEntry reverses a journal entry in its own unit of work and moves the owning
// transaction, if any, to REVERSED.
func (r *ReversalEngine) ReverseEntry(ctx context.Context, actor domain.Actor, journalEntryID string) (*domain.JournalEntry, error) {
	if !actor.IsElevated() {
		return nil, ErrElevatedRoleRequired
	}

	var reversal *domain.JournalEntry
	err := r.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		entry, err := repos.Journals.FindJournalEntryByID(ctx, journalEntryID)
		if err != nil {
			return notFoundAs(err, ErrJournalEntryNotFound, journalEntryID)
		}

		var txn *domain.Transaction
		if entry.TransactionID != nil && !entry.IsReversal() {
			// Lock order matches the transaction update path: transaction row, then entry.
			txn, err = repos.Transactions.LockTransactionForUpdate(ctx, *entry.TransactionID)
			if err != nil {
				return notFoundAs(err, ErrTransactionNotFound, *entry.TransactionID)
			}
		}

		reversal, err = r.reverseEntry(ctx, repos, journalEntryID, actor.UserID)
		if err != nil {
			return err
		}

		if txn != nil {
			txn.Status = domain.StatusReversed
			txn.LastUpdatedAt = r.Now()
			txn.LastUpdatedBy = actor.UserID
			if err := repos.Transactions.UpdateTransaction(ctx, *txn); err != nil {
				return fmt.Errorf("failed to mark transaction %s reversed: %w", txn.TransactionNo, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	invalidateBudgetActuals(ctx, &r.BaseService, r.cache)
	return reversal, nil
}
