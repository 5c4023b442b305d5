package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/school_ledger/internal/apperrors"
	"github.com/SscSPs/school_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/school_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/school_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// PostingRequest is a journal entry to be posted, expressed as explicit line items.
type PostingRequest struct {
	TransactionID *string
	Description   string
	Date          time.Time
	Reference     string
	Lines         []domain.PostingLine
}

// JournalEntryEngine turns classified movements into balanced journal entries and applies
// them to the account ledger.
type JournalEntryEngine struct {
	BaseService
	ledger          *AccountLedger
	sequences       *SequenceGenerator
	cashAccountCode string
}

// NewJournalEntryEngine creates the engine. cashAccountCode names the account that sits on
// the opposite side of every category posting.
func NewJournalEntryEngine(ledger *AccountLedger, sequences *SequenceGenerator, cashAccountCode string, opts ...Option) *JournalEntryEngine {
	return &JournalEntryEngine{
		BaseService:     newBaseService(opts),
		ledger:          ledger,
		sequences:       sequences,
		cashAccountCode: cashAccountCode,
	}
}

// TransactionPostings returns the two legs for a transaction: INCOME and DONATION debit cash
// and credit the category account, EXPENSE debits the category account and credits cash.
func TransactionPostings(txnType domain.TransactionType, amount decimal.Decimal, categoryAccountID, cashAccountID, description string) []domain.PostingLine {
	debitID, creditID := categoryAccountID, cashAccountID
	if txnType.CashIsDebited() {
		debitID, creditID = cashAccountID, categoryAccountID
	}
	return []domain.PostingLine{
		{AccountID: debitID, Side: domain.Debit, Amount: amount, Description: description},
		{AccountID: creditID, Side: domain.Credit, Amount: amount, Description: description},
	}
}

// Post creates the journal entry for txn inside the caller's unit of work.
func (e *JournalEntryEngine) Post(ctx context.Context, repos portsrepo.Repositories, txn domain.Transaction, category domain.FinancialCategory, userID string) (*domain.JournalEntry, error) {
	cash, err := e.ledger.FindByCode(ctx, repos.Accounts, e.cashAccountCode)
	if err != nil {
		e.LogError(ctx, err, "Cash account lookup failed", slog.String("cash_account_code", e.cashAccountCode))
		return nil, fmt.Errorf("failed to resolve cash account: %w", err)
	}

	transactionID := txn.TransactionID
	return e.PostLines(ctx, repos, PostingRequest{
		TransactionID: &transactionID,
		Description:   txn.Description,
		Date:          txn.Date,
		Reference:     txn.TransactionNo,
		Lines:         TransactionPostings(txn.Type, txn.Amount, category.AccountID, cash.AccountID, txn.Description),
	}, userID)
}

// PostLines validates an arbitrary posting request, numbers it, stores it and applies its
// balance effects. Nothing is written when the lines do not balance.
func (e *JournalEntryEngine) PostLines(ctx context.Context, repos portsrepo.Repositories, req PostingRequest, userID string) (*domain.JournalEntry, error) {
	entryID := e.NewID()
	lines := accounting.BuildLines(entryID, req.Lines, e.NewID)

	totalDebit, totalCredit, err := accounting.ValidateBalanced(lines)
	if err != nil {
		e.LogError(ctx, err, "Rejected unbalanced posting", slog.String("reference", req.Reference))
		return nil, apperrors.NewAppError(apperrors.ErrValidation, "journal entry is not balanced", err)
	}

	entryNo, err := e.sequences.Next(ctx, repos.Sequences, domain.DocJournalEntry)
	if err != nil {
		return nil, err
	}

	entry := domain.JournalEntry{
		JournalEntryID: entryID,
		EntryNo:        entryNo,
		TransactionID:  req.TransactionID,
		Description:    req.Description,
		Date:           req.Date,
		Reference:      req.Reference,
		TotalDebit:     totalDebit,
		TotalCredit:    totalCredit,
		IsBalanced:     true,
		Status:         domain.JournalPosted,
		Lines:          lines,
		AuditFields:    domain.NewAuditFields(userID, e.Now()),
	}

	if err := repos.Journals.SaveJournalEntry(ctx, entry); err != nil {
		e.LogError(ctx, err, "Failed to save journal entry", slog.String("entry_no", entryNo))
		return nil, fmt.Errorf("failed to save journal entry %s: %w", entryNo, err)
	}

	if err := e.ledger.ApplyLines(ctx, repos.Accounts, lines, userID); err != nil {
		return nil, fmt.Errorf("failed to apply journal entry %s: %w", entryNo, err)
	}

	e.LogInfo(ctx, "Journal entry posted", slog.String("entry_no", entryNo), slog.String("total", totalDebit.String()))
	return &entry, nil
}
