package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/school_ledger/internal/apperrors"
	"github.com/SscSPs/school_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/school_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/school_ledger/internal/core/services"
	"github.com/SscSPs/school_ledger/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(LedgerSuite))
}

func createRequest(txnType domain.TransactionType, categoryID string, amount int64) dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		Type:        txnType,
		CategoryID:  categoryID,
		Amount:      decimal.NewFromInt(amount),
		Description: "test " + string(txnType),
	}
}

func (s *LedgerSuite) TestIncomeDebitsCashAndCreditsCategory() {
	txn, entry := s.create(staff, domain.TransactionIncome, "Donation", 1000000)

	s.Equal("1000000", s.balance("1001"))
	s.Equal("-1000000", s.balance("4001"))
	s.Equal(domain.StatusPosted, txn.Status)
	s.Equal("TRX-2026-0001", txn.TransactionNo)

	s.Require().NotNil(entry)
	s.Equal("JE-2026-0001", entry.EntryNo)
	s.True(entry.IsBalanced)
	s.True(entry.TotalDebit.Equal(entry.TotalCredit))
	s.Require().Len(entry.Lines, 2)
	s.Equal(s.accounts["1001"].AccountID, entry.Lines[0].AccountID)
	s.True(entry.Lines[0].Debit.Equal(decimal.NewFromInt(1000000)))
	s.Equal(1, entry.Lines[0].LineOrder)
	s.Equal(s.accounts["4001"].AccountID, entry.Lines[1].AccountID)
	s.True(entry.Lines[1].Credit.Equal(decimal.NewFromInt(1000000)))
	s.Equal(2, entry.Lines[1].LineOrder)

	s.Require().NotNil(txn.JournalEntryID)
	s.Equal(entry.JournalEntryID, *txn.JournalEntryID)
}

func (s *LedgerSuite) TestDonationTypeDebitsCash() {
	txn, _ := s.create(staff, domain.TransactionDonation, "Alumni Donation", 1000000)

	s.Equal("1000000", s.balance("1001"))
	s.Equal("-1000000", s.balance("4001"))
	s.Equal("TRX-2026-0001", txn.TransactionNo)
}

func (s *LedgerSuite) TestReversalRestoresBalances() {
	txn, entry := s.create(staff, domain.TransactionIncome, "Donation", 1000000)

	updated, err := s.svc.Transaction.UpdateTransaction(s.ctx, admin, txn.TransactionID, dto.UpdateTransactionRequest{
		Status: statusPtr(domain.StatusReversed),
	})
	s.Require().NoError(err)
	s.Equal(domain.StatusReversed, updated.Status)

	s.Equal("0", s.balance("1001"))
	s.Equal("0", s.balance("4001"))

	original, err := s.svc.Journal.GetJournalEntryByID(s.ctx, entry.JournalEntryID)
	s.Require().NoError(err)
	s.Equal(domain.JournalReversed, original.Status)
	s.Require().NotNil(original.ReversedByEntryID)
	s.Require().NotNil(original.ReversedBy)
	s.Equal(admin.UserID, *original.ReversedBy)

	reversal, err := s.svc.Journal.GetJournalEntryByID(s.ctx, *original.ReversedByEntryID)
	s.Require().NoError(err)
	s.Equal("JER-2026-0001", reversal.EntryNo)
	s.Require().NotNil(reversal.ReversalOfID)
	s.Equal(original.JournalEntryID, *reversal.ReversalOfID)
	s.Require().Len(reversal.Lines, len(original.Lines))
	for i := range original.Lines {
		s.Equal(original.Lines[i].AccountID, reversal.Lines[i].AccountID)
		s.True(reversal.Lines[i].Debit.Equal(original.Lines[i].Credit))
		s.True(reversal.Lines[i].Credit.Equal(original.Lines[i].Debit))
	}
}

func (s *LedgerSuite) TestExpenseDebitsCategoryAndCreditsCash() {
	s.create(staff, domain.TransactionExpense, "Utilities", 500000)

	s.Equal("500000", s.balance("5001"))
	s.Equal("-500000", s.balance("1001"))
}

func (s *LedgerSuite) TestBalancesConserveAcrossPostings() {
	s.create(staff, domain.TransactionIncome, "Tuition", 250000)
	s.create(staff, domain.TransactionDonation, "Alumni Donation", 1000)
	s.create(staff, domain.TransactionExpense, "Utilities", 120000)

	accounts, err := s.svc.Account.ListAccounts(s.ctx)
	s.Require().NoError(err)
	total := decimal.Zero
	for _, acc := range accounts {
		total = total.Add(acc.Balance)
	}
	s.True(total.IsZero(), "sum of all balances must net to zero, got %s", total)
	s.Equal("131000", s.balance("1001"))
}

func (s *LedgerSuite) TestNumbersAreSequentialWithoutGaps() {
	var numbers []string
	for i := 0; i < 5; i++ {
		txn, _ := s.create(staff, domain.TransactionIncome, "Tuition", int64(100+i))
		numbers = append(numbers, txn.TransactionNo)
	}
	s.Equal([]string{"TRX-2026-0001", "TRX-2026-0002", "TRX-2026-0003", "TRX-2026-0004", "TRX-2026-0005"}, numbers)

	entries, err := s.svc.Journal.ListJournalEntries(s.ctx, dto.ListJournalEntriesParams{IncludeReversals: true})
	s.Require().NoError(err)
	s.Len(entries.JournalEntries, 5)
}

func (s *LedgerSuite) TestCategoryTypeMismatchLeavesNoTrace() {
	_, _, err := s.svc.Transaction.CreateTransaction(s.ctx, staff,
		createRequest(domain.TransactionExpense, s.category["Donation"].CategoryID, 5000))

	s.ErrorIs(err, services.ErrCategoryTypeMismatch)
	s.ErrorIs(err, apperrors.ErrConflict)
	s.Equal("0", s.balance("1001"))
	s.Equal("0", s.balance("4001"))

	list, err := s.svc.Transaction.ListTransactions(s.ctx, dto.ListTransactionsParams{})
	s.Require().NoError(err)
	s.Empty(list.Transactions)

	// The number was never consumed.
	txn, _ := s.create(staff, domain.TransactionIncome, "Donation", 5000)
	s.Equal("TRX-2026-0001", txn.TransactionNo)
}

func (s *LedgerSuite) TestUnknownCategory() {
	_, _, err := s.svc.Transaction.CreateTransaction(s.ctx, staff, createRequest(domain.TransactionIncome, "missing", 10))
	s.ErrorIs(err, services.ErrCategoryNotFound)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *LedgerSuite) TestValidationReportsEveryField() {
	_, _, err := s.svc.Transaction.CreateTransaction(s.ctx, staff, dto.CreateTransactionRequest{
		Type:   "REFUND",
		Amount: decimal.NewFromInt(-5),
	})
	s.ErrorIs(err, apperrors.ErrValidation)

	fields := map[string]bool{}
	for _, f := range apperrors.FieldErrors(err) {
		fields[f.Field] = true
	}
	s.True(fields["type"])
	s.True(fields["categoryID"])
	s.True(fields["description"])
	s.True(fields["amount"])
}

func (s *LedgerSuite) TestAmountPrecisionIsLimited() {
	req := createRequest(domain.TransactionIncome, s.category["Tuition"].CategoryID, 1)
	req.Amount = decimal.RequireFromString("10.005")
	_, _, err := s.svc.Transaction.CreateTransaction(s.ctx, staff, req)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *LedgerSuite) TestMissingCashAccountAbortsCreation() {
	cfgless := services.NewJournalEntryEngine(
		services.NewAccountLedger(s.repos.Accounts),
		services.NewSequenceGenerator(),
		"9999",
	)
	manager := services.NewTransactionManager(s.repos, services.NewSequenceGenerator(), cfgless,
		services.NewReversalEngine(services.NewAccountLedger(s.repos.Accounts), services.NewSequenceGenerator(), s.repos.UnitOfWork, nil), nil)

	_, _, err := manager.CreateTransaction(s.ctx, staff, createRequest(domain.TransactionIncome, s.category["Tuition"].CategoryID, 100))
	s.ErrorIs(err, services.ErrAccountNotFound)

	list, err := s.svc.Transaction.ListTransactions(s.ctx, dto.ListTransactionsParams{})
	s.Require().NoError(err)
	s.Empty(list.Transactions, "the transaction insert must roll back with the failed posting")
}

func (s *LedgerSuite) TestBalanceFailureRollsBackWholeUnit() {
	s.store.FailOn("AddToBalance", errors.New("connection reset"))
	_, _, err := s.svc.Transaction.CreateTransaction(s.ctx, staff, createRequest(domain.TransactionIncome, s.category["Tuition"].CategoryID, 700))
	s.ErrorIs(err, apperrors.ErrPersistence)
	s.store.FailOn("AddToBalance", nil)

	s.Equal("0", s.balance("1001"))
	entries, err := s.svc.Journal.ListJournalEntries(s.ctx, dto.ListJournalEntriesParams{IncludeReversals: true})
	s.Require().NoError(err)
	s.Empty(entries.JournalEntries)

	txn, _ := s.create(staff, domain.TransactionIncome, "Tuition", 700)
	s.Equal("TRX-2026-0001", txn.TransactionNo)
}

func (s *LedgerSuite) TestDoubleReversalIsRejected() {
	txn, entry := s.create(staff, domain.TransactionExpense, "Utilities", 100000)

	reversal, err := s.svc.Journal.ReverseJournalEntry(s.ctx, treasurer, entry.JournalEntryID)
	s.Require().NoError(err)
	s.Equal("JER-2026-0001", reversal.EntryNo)
	s.Equal("0", s.balance("5001"))
	s.Equal("0", s.balance("1001"))

	reloaded, err := s.svc.Transaction.GetTransactionByID(s.ctx, txn.TransactionID)
	s.Require().NoError(err)
	s.Equal(domain.StatusReversed, reloaded.Status)

	_, err = s.svc.Journal.ReverseJournalEntry(s.ctx, treasurer, entry.JournalEntryID)
	s.ErrorIs(err, services.ErrAlreadyReversed)

	_, err = s.svc.Journal.ReverseJournalEntry(s.ctx, treasurer, reversal.JournalEntryID)
	s.ErrorIs(err, services.ErrAlreadyReversed, "a reversal entry cannot itself be reversed")

	s.Equal("0", s.balance("5001"))
}

func (s *LedgerSuite) TestManualReversalRequiresElevatedRole() {
	_, entry := s.create(staff, domain.TransactionExpense, "Utilities", 100)
	_, err := s.svc.Journal.ReverseJournalEntry(s.ctx, staff, entry.JournalEntryID)
	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *LedgerSuite) TestCancelPostedTransactionReversesIt() {
	txn, _ := s.create(staff, domain.TransactionIncome, "Tuition", 300)

	cancelled, err := s.svc.Transaction.CancelTransaction(s.ctx, admin, txn.TransactionID)
	s.Require().NoError(err)
	s.Require().NotNil(cancelled)
	s.Equal(domain.StatusCancelled, cancelled.Status)
	s.Equal("0", s.balance("1001"))
	s.Equal("0", s.balance("4002"))

	_, err = s.svc.Transaction.CancelTransaction(s.ctx, admin, txn.TransactionID)
	s.ErrorIs(err, services.ErrStatusTransitionInvalid)

	_, err = s.svc.Transaction.UpdateTransaction(s.ctx, admin, txn.TransactionID, dto.UpdateTransactionRequest{Description: strPtr("late edit")})
	s.ErrorIs(err, services.ErrStatusTransitionInvalid)
}

func (s *LedgerSuite) TestCreateAlwaysPosts() {
	for _, tc := range []struct {
		txnType  domain.TransactionType
		category string
	}{
		{domain.TransactionIncome, "Tuition"},
		{domain.TransactionDonation, "Alumni Donation"},
		{domain.TransactionExpense, "Utilities"},
	} {
		txn, entry := s.create(staff, tc.txnType, tc.category, 25)
		s.Equal(domain.StatusPosted, txn.Status)
		s.Require().NotNil(entry, "%s transaction has a journal entry", tc.txnType)
		s.Require().NotNil(txn.JournalEntryID)
		s.Equal(entry.JournalEntryID, *txn.JournalEntryID)

		stored, err := s.svc.Transaction.GetTransactionByID(s.ctx, txn.TransactionID)
		s.Require().NoError(err)
		s.True(stored.HasJournalEntry())
		s.Equal(domain.StatusPosted, stored.Status)
	}

	drafts, err := s.svc.Transaction.ListTransactions(s.ctx, dto.ListTransactionsParams{Status: statusPtr(domain.StatusDraft), Limit: 20})
	s.Require().NoError(err)
	s.Empty(drafts.Transactions)
}

func (s *LedgerSuite) TestDraftLifecycle() {
	draft := s.seedDraft(staff, domain.TransactionExpense, "Utilities", 4500)
	s.Equal("0", s.balance("5001"))

	// The creator may edit the amount while nothing is posted.
	amount := decimal.NewFromInt(5000)
	edited, err := s.svc.Transaction.UpdateTransaction(s.ctx, staff, draft.TransactionID, dto.UpdateTransactionRequest{Amount: &amount})
	s.Require().NoError(err)
	s.True(edited.Amount.Equal(amount))

	_, err = s.svc.Transaction.UpdateTransaction(s.ctx, staff, draft.TransactionID, dto.UpdateTransactionRequest{Status: statusPtr(domain.StatusPosted)})
	s.ErrorIs(err, services.ErrElevatedRoleRequired)

	approved, err := s.svc.Transaction.UpdateTransaction(s.ctx, treasurer, draft.TransactionID, dto.UpdateTransactionRequest{Status: statusPtr(domain.StatusPosted)})
	s.Require().NoError(err)
	s.Equal(domain.StatusPosted, approved.Status)
	s.Require().NotNil(approved.ApprovedBy)
	s.Equal(treasurer.UserID, *approved.ApprovedBy)
	s.NotNil(approved.JournalEntryID)
	s.Equal("5000", s.balance("5001"))
	s.Equal("-5000", s.balance("1001"))
}

func (s *LedgerSuite) TestCancelDraftDeletesIt() {
	draft := s.seedDraft(staff, domain.TransactionIncome, "Tuition", 10)

	cancelled, err := s.svc.Transaction.CancelTransaction(s.ctx, staff, draft.TransactionID)
	s.Require().NoError(err)
	s.Nil(cancelled)

	_, err = s.svc.Transaction.GetTransactionByID(s.ctx, draft.TransactionID)
	s.ErrorIs(err, services.ErrTransactionNotFound)
}

func (s *LedgerSuite) TestAuthorization() {
	draft := s.seedDraft(staff, domain.TransactionIncome, "Tuition", 10)

	_, err := s.svc.Transaction.UpdateTransaction(s.ctx, otherStaff, draft.TransactionID, dto.UpdateTransactionRequest{Notes: strPtr("x")})
	s.ErrorIs(err, services.ErrNotOwner)
	s.ErrorIs(err, apperrors.ErrForbidden)

	posted, _ := s.create(staff, domain.TransactionIncome, "Tuition", 10)
	_, err = s.svc.Transaction.UpdateTransaction(s.ctx, staff, posted.TransactionID, dto.UpdateTransactionRequest{Notes: strPtr("x")})
	s.ErrorIs(err, services.ErrElevatedRoleRequired)

	updated, err := s.svc.Transaction.UpdateTransaction(s.ctx, admin, posted.TransactionID, dto.UpdateTransactionRequest{Notes: strPtr("checked")})
	s.Require().NoError(err)
	s.Equal("checked", updated.Notes)
}

func (s *LedgerSuite) TestPostedAmountCannotChange() {
	txn, _ := s.create(staff, domain.TransactionIncome, "Tuition", 10)
	amount := decimal.NewFromInt(20)
	_, err := s.svc.Transaction.UpdateTransaction(s.ctx, admin, txn.TransactionID, dto.UpdateTransactionRequest{Amount: &amount})
	s.ErrorIs(err, services.ErrPostingFieldsLocked)

	same := decimal.NewFromInt(10)
	_, err = s.svc.Transaction.UpdateTransaction(s.ctx, admin, txn.TransactionID, dto.UpdateTransactionRequest{Amount: &same})
	s.NoError(err, "restating the current amount is not a change")
}

func (s *LedgerSuite) TestInvalidStatusTransition() {
	txn, _ := s.create(staff, domain.TransactionIncome, "Tuition", 10)
	_, err := s.svc.Transaction.UpdateTransaction(s.ctx, admin, txn.TransactionID, dto.UpdateTransactionRequest{Status: statusPtr(domain.StatusDraft)})
	s.ErrorIs(err, services.ErrStatusTransitionInvalid)
	s.Equal("10", s.balance("1001"))
}

func (s *LedgerSuite) TestChangesInvalidateBudgetCache() {
	s.create(staff, domain.TransactionIncome, "Tuition", 10)
	s.cache.AssertCalled(s.T(), "InvalidateAll", mock.Anything)
}

func (s *LedgerSuite) TestPostLinesRejectsUnbalancedRequest() {
	ledger := services.NewAccountLedger(s.repos.Accounts)
	engine := services.NewJournalEntryEngine(ledger, services.NewSequenceGenerator(), "1001")

	err := s.repos.UnitOfWork.WithinTx(s.ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		_, err := engine.PostLines(ctx, repos, services.PostingRequest{
			Description: "split",
			Date:        fixedNow,
			Lines: []domain.PostingLine{
				{AccountID: s.accounts["1001"].AccountID, Side: domain.Debit, Amount: decimal.NewFromInt(100)},
				{AccountID: s.accounts["4001"].AccountID, Side: domain.Credit, Amount: decimal.NewFromInt(60)},
				{AccountID: s.accounts["4002"].AccountID, Side: domain.Credit, Amount: decimal.NewFromInt(30)},
			},
		}, admin.UserID)
		return err
	})
	s.ErrorIs(err, apperrors.ErrValidation)
	s.Equal("0", s.balance("1001"))
}

func (s *LedgerSuite) TestPostLinesSplitsAcrossAccounts() {
	ledger := services.NewAccountLedger(s.repos.Accounts)
	engine := services.NewJournalEntryEngine(ledger, services.NewSequenceGenerator(services.WithClock(func() time.Time { return fixedNow })), "1001")

	err := s.repos.UnitOfWork.WithinTx(s.ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		entry, err := engine.PostLines(ctx, repos, services.PostingRequest{
			Description: "fees and donation in one deposit",
			Date:        fixedNow,
			Lines: []domain.PostingLine{
				{AccountID: s.accounts["1001"].AccountID, Side: domain.Debit, Amount: decimal.NewFromInt(100)},
				{AccountID: s.accounts["4001"].AccountID, Side: domain.Credit, Amount: decimal.NewFromInt(60)},
				{AccountID: s.accounts["4002"].AccountID, Side: domain.Credit, Amount: decimal.NewFromInt(40)},
			},
		}, admin.UserID)
		if err != nil {
			return err
		}
		s.Len(entry.Lines, 3)
		s.Equal("JE-2026-0001", entry.EntryNo)
		return nil
	})
	s.Require().NoError(err)
	s.Equal("100", s.balance("1001"))
	s.Equal("-60", s.balance("4001"))
	s.Equal("-40", s.balance("4002"))
}

func statusPtr(s domain.TransactionStatus) *domain.TransactionStatus {
	return &s
}

func strPtr(s string) *string {
	return &s
}

func (s *LedgerSuite) TestApplyLinesNetsLinesPerAccount() {
	ledger := services.NewAccountLedger(s.repos.Accounts, services.WithClock(func() time.Time { return fixedNow }))
	cash, donations := s.accounts["1001"].AccountID, s.accounts["4001"].AccountID
	lines := []domain.JournalLine{
		{AccountID: cash, Debit: decimal.NewFromInt(100), Credit: decimal.Zero, LineOrder: 1},
		{AccountID: donations, Debit: decimal.Zero, Credit: decimal.NewFromInt(70), LineOrder: 2},
		{AccountID: cash, Debit: decimal.Zero, Credit: decimal.NewFromInt(30), LineOrder: 3},
	}

	err := s.repos.UnitOfWork.WithinTx(s.ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		return ledger.ApplyLines(ctx, repos.Accounts, lines, "u-1")
	})
	s.Require().NoError(err)
	s.Equal("70", s.balance("1001"))
	s.Equal("-70", s.balance("4001"))

	err = s.repos.UnitOfWork.WithinTx(s.ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		return ledger.ApplyLines(ctx, repos.Accounts, append(lines, domain.JournalLine{AccountID: "missing", Debit: decimal.NewFromInt(1), Credit: decimal.Zero}), "u-1")
	})
	s.ErrorIs(err, services.ErrAccountNotFound)
	s.Equal("70", s.balance("1001"), "a failed application leaves every balance untouched")
}
