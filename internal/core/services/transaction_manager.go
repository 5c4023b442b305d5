package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/school_ledger/internal/apperrors"
	"github.com/SscSPs/school_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/school_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/school_ledger/internal/core/ports/services"
	"github.com/SscSPs/school_ledger/internal/dto"
	"github.com/SscSPs/school_ledger/internal/utils/pagination"
)

// TransactionManager is the entry point for recording and changing monetary transactions.
type TransactionManager struct {
	BaseService
	repos     portsrepo.Repositories
	uow       portsrepo.UnitOfWork
	sequences *SequenceGenerator
	journal   *JournalEntryEngine
	reversal  *ReversalEngine
	cache     portsrepo.BudgetActualsCache
}

var _ portssvc.TransactionSvcFacade = (*TransactionManager)(nil)

// NewTransactionManager wires the manager. cache may be nil.
func NewTransactionManager(
	provider portsrepo.RepositoryProvider,
	sequences *SequenceGenerator,
	journal *JournalEntryEngine,
	reversal *ReversalEngine,
	cache portsrepo.BudgetActualsCache,
	opts ...Option,
) *TransactionManager {
	return &TransactionManager{
		BaseService: newBaseService(opts),
		repos:       provider.Repositories,
		uow:         provider.UnitOfWork,
		sequences:   sequences,
		journal:     journal,
		reversal:    reversal,
		cache:       cache,
	}
}

// CreateTransaction validates the request, then numbers, stores and posts the transaction in
// one unit of work. The stored transaction is always POSTED and linked to its journal entry.
func (m *TransactionManager) CreateTransaction(ctx context.Context, actor domain.Actor, req dto.CreateTransactionRequest) (*domain.Transaction, *domain.JournalEntry, error) {
	if err := validateRequest(req, checkAmount("amount", req.Amount)...); err != nil {
		return nil, nil, err
	}

	category, err := resolveCategory(ctx, m.repos.Categories, req.CategoryID, req.Type)
	if err != nil {
		m.LogInfo(ctx, "Rejected transaction category", slog.String("category_id", req.CategoryID), slog.String("reason", err.Error()))
		return nil, nil, err
	}

	now := m.Now()
	date := now
	if req.Date != nil {
		date = *req.Date
	}

	var (
		txn   domain.Transaction
		entry *domain.JournalEntry
	)
	err = m.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		transactionNo, err := m.sequences.Next(ctx, repos.Sequences, domain.DocTransaction)
		if err != nil {
			return err
		}

		txn = domain.Transaction{
			TransactionID: m.NewID(),
			TransactionNo: transactionNo,
			Type:          req.Type,
			CategoryID:    category.CategoryID,
			Amount:        req.Amount,
			Description:   req.Description,
			Date:          date,
			DueDate:       req.DueDate,
			Status:        domain.StatusPosted,
			Tags:          req.Tags,
			Attachments:   req.Attachments,
			Notes:         req.Notes,
			AuditFields:   domain.NewAuditFields(actor.UserID, now),
		}
		if err := repos.Transactions.SaveTransaction(ctx, txn); err != nil {
			return fmt.Errorf("failed to save transaction %s: %w", transactionNo, err)
		}

		entry, err = m.journal.Post(ctx, repos, txn, *category, actor.UserID)
		if err != nil {
			return err
		}
		txn.JournalEntryID = &entry.JournalEntryID
		if err := repos.Transactions.UpdateTransaction(ctx, txn); err != nil {
			return fmt.Errorf("failed to link transaction %s to its journal entry: %w", transactionNo, err)
		}
		return nil
	})
	if err != nil {
		m.LogError(ctx, err, "Failed to create transaction", slog.String("type", string(req.Type)))
		return nil, nil, err
	}

	invalidateBudgetActuals(ctx, &m.BaseService, m.cache)
	m.LogInfo(ctx, "Transaction created", slog.String("transaction_no", txn.TransactionNo), slog.String("status", string(txn.Status)))
	return &txn, entry, nil
}

// UpdateTransaction applies a partial update. Status changes to CANCELLED or REVERSED reverse
// the journal entry first; approval of a draft posts it. Everything happens in one unit of work.
func (m *TransactionManager) UpdateTransaction(ctx context.Context, actor domain.Actor, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	var extra []apperrors.FieldError
	if req.Amount != nil {
		extra = checkAmount("amount", *req.Amount)
	}
	if err := validateRequest(req, extra...); err != nil {
		return nil, err
	}

	var updated *domain.Transaction
	err := m.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		txn, err := repos.Transactions.LockTransactionForUpdate(ctx, transactionID)
		if err != nil {
			return notFoundAs(err, ErrTransactionNotFound, transactionID)
		}
		if err := authorizeModification(actor, txn); err != nil {
			return err
		}
		if txn.Status.IsTerminal() {
			return fmt.Errorf("%w: transaction %s is %s", ErrStatusTransitionInvalid, txn.TransactionNo, txn.Status)
		}
		if txn.HasJournalEntry() && changesPostingFields(txn, req) {
			return fmt.Errorf("%w: transaction %s", ErrPostingFieldsLocked, txn.TransactionNo)
		}

		applyDetails(txn, req)

		if req.Type != nil || req.CategoryID != nil || req.Amount != nil {
			if req.Type != nil {
				txn.Type = *req.Type
			}
			if req.CategoryID != nil {
				txn.CategoryID = *req.CategoryID
			}
			if req.Amount != nil {
				txn.Amount = *req.Amount
			}
			if _, err := resolveCategory(ctx, repos.Categories, txn.CategoryID, txn.Type); err != nil {
				return err
			}
		}

		if req.Status != nil && *req.Status != txn.Status {
			if err := m.transition(ctx, repos, actor, txn, *req.Status); err != nil {
				return err
			}
		}

		txn.LastUpdatedAt = m.Now()
		txn.LastUpdatedBy = actor.UserID
		if err := repos.Transactions.UpdateTransaction(ctx, *txn); err != nil {
			return fmt.Errorf("failed to update transaction %s: %w", txn.TransactionNo, err)
		}
		updated = txn
		return nil
	})
	if err != nil {
		m.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}

	invalidateBudgetActuals(ctx, &m.BaseService, m.cache)
	m.LogInfo(ctx, "Transaction updated", slog.String("transaction_no", updated.TransactionNo), slog.String("status", string(updated.Status)))
	return updated, nil
}

// transition moves txn to target, posting or reversing its journal entry as needed.
func (m *TransactionManager) transition(ctx context.Context, repos portsrepo.Repositories, actor domain.Actor, txn *domain.Transaction, target domain.TransactionStatus) error {
	switch {
	case txn.Status == domain.StatusDraft && target == domain.StatusPosted:
		if !actor.IsElevated() {
			return ErrElevatedRoleRequired
		}
		category, err := resolveCategory(ctx, repos.Categories, txn.CategoryID, txn.Type)
		if err != nil {
			return err
		}
		if !txn.HasJournalEntry() {
			entry, err := m.journal.Post(ctx, repos, *txn, *category, actor.UserID)
			if err != nil {
				return err
			}
			txn.JournalEntryID = &entry.JournalEntryID
		}
		now := m.Now()
		approver := actor.UserID
		txn.ApprovedBy = &approver
		txn.ApprovedAt = &now

	case txn.Status == domain.StatusDraft && target == domain.StatusCancelled:
		// Nothing was posted, so there is nothing to reverse.

	case txn.Status == domain.StatusPosted && (target == domain.StatusCancelled || target == domain.StatusReversed):
		if _, err := m.reversal.Reverse(ctx, repos, txn.TransactionID, actor.UserID); err != nil {
			return err
		}

	default:
		return fmt.Errorf("%w: %s to %s", ErrStatusTransitionInvalid, txn.Status, target)
	}

	txn.Status = target
	return nil
}

// CancelTransaction cancels a transaction. A transaction with a journal entry is reversed
// and kept as CANCELLED; one without is deleted outright.
func (m *TransactionManager) CancelTransaction(ctx context.Context, actor domain.Actor, transactionID string) (*domain.Transaction, error) {
	var cancelled *domain.Transaction
	err := m.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		txn, err := repos.Transactions.LockTransactionForUpdate(ctx, transactionID)
		if err != nil {
			return notFoundAs(err, ErrTransactionNotFound, transactionID)
		}
		if err := authorizeModification(actor, txn); err != nil {
			return err
		}
		if txn.Status.IsTerminal() {
			return fmt.Errorf("%w: transaction %s is %s", ErrStatusTransitionInvalid, txn.TransactionNo, txn.Status)
		}

		if !txn.HasJournalEntry() {
			if err := repos.Transactions.DeleteTransaction(ctx, txn.TransactionID); err != nil {
				return fmt.Errorf("failed to delete transaction %s: %w", txn.TransactionNo, err)
			}
			m.LogInfo(ctx, "Deleted unposted transaction", slog.String("transaction_no", txn.TransactionNo))
			return nil
		}

		if _, err := m.reversal.Reverse(ctx, repos, txn.TransactionID, actor.UserID); err != nil {
			return err
		}
		txn.Status = domain.StatusCancelled
		txn.LastUpdatedAt = m.Now()
		txn.LastUpdatedBy = actor.UserID
		if err := repos.Transactions.UpdateTransaction(ctx, *txn); err != nil {
			return fmt.Errorf("failed to cancel transaction %s: %w", txn.TransactionNo, err)
		}
		cancelled = txn
		return nil
	})
	if err != nil {
		m.LogError(ctx, err, "Failed to cancel transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}

	invalidateBudgetActuals(ctx, &m.BaseService, m.cache)
	return cancelled, nil
}

func (m *TransactionManager) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := m.repos.Transactions.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, notFoundAs(err, ErrTransactionNotFound, transactionID)
	}
	return txn, nil
}

func (m *TransactionManager) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	var extra []apperrors.FieldError
	if params.From != nil && params.To != nil && params.To.Before(*params.From) {
		extra = append(extra, apperrors.FieldError{Field: "to", Message: "must not be before from"})
	}
	extra = append(extra, checkNextToken(params.NextToken)...)
	if err := validateRequest(params, extra...); err != nil {
		return nil, err
	}

	txns, nextToken, err := m.repos.Transactions.ListTransactions(ctx, portsrepo.TransactionFilter{
		Type:       params.Type,
		Status:     params.Status,
		CategoryID: params.CategoryID,
		From:       params.From,
		To:         params.To,
		Limit:      pagination.NormalizeLimit(params.Limit),
		NextToken:  params.NextToken,
	})
	if err != nil {
		m.LogError(ctx, err, "Failed to list transactions")
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}

// authorizeModification allows the creator or an elevated actor, and only an elevated actor
// once the transaction is posted.
func authorizeModification(actor domain.Actor, txn *domain.Transaction) error {
	if actor.IsElevated() {
		return nil
	}
	if txn.CreatedBy != actor.UserID {
		return ErrNotOwner
	}
	if txn.Status == domain.StatusPosted {
		return ErrElevatedRoleRequired
	}
	return nil
}

func changesPostingFields(txn *domain.Transaction, req dto.UpdateTransactionRequest) bool {
	return (req.Amount != nil && !req.Amount.Equal(txn.Amount)) ||
		(req.CategoryID != nil && *req.CategoryID != txn.CategoryID) ||
		(req.Type != nil && *req.Type != txn.Type)
}

func applyDetails(txn *domain.Transaction, req dto.UpdateTransactionRequest) {
	if req.Description != nil {
		txn.Description = *req.Description
	}
	if req.Date != nil {
		txn.Date = *req.Date
	}
	if req.DueDate != nil {
		txn.DueDate = req.DueDate
	}
	if req.Tags != nil {
		txn.Tags = req.Tags
	}
	if req.Attachments != nil {
		txn.Attachments = req.Attachments
	}
	if req.Notes != nil {
		txn.Notes = *req.Notes
	}
}
