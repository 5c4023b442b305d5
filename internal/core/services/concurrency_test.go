package services_test

import (
	"fmt"
	"sort"
	"sync"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/SscSPs/school_ledger/internal/core/services"
	"github.com/shopspring/decimal"
)

func numbered(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s-2026-%04d", prefix, i+1)
	}
	return out
}

func (s *LedgerSuite) TestConcurrentCreatesAndDoubleCancels() {
	const n = 25

	txns := make([]*domain.Transaction, n)
	entries := make([]*domain.JournalEntry, n)
	createErrs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			txns[i], entries[i], createErrs[i] = s.svc.Transaction.CreateTransaction(s.ctx, staff,
				createRequest(domain.TransactionIncome, s.category["Tuition"].CategoryID, 100))
		}(i)
	}
	wg.Wait()

	txnNos := make([]string, 0, n)
	entryNos := make([]string, 0, n)
	for i := 0; i < n; i++ {
		s.Require().NoError(createErrs[i])
		txnNos = append(txnNos, txns[i].TransactionNo)
		entryNos = append(entryNos, entries[i].EntryNo)
	}
	sort.Strings(txnNos)
	sort.Strings(entryNos)
	s.Equal(numbered("TRX", n), txnNos, "transaction numbers are distinct and gap-free")
	s.Equal(numbered("JE", n), entryNos, "entry numbers are distinct and gap-free")
	s.Equal(fmt.Sprint(100*n), s.balance("1001"))

	// Two cancels race for every transaction; exactly one of each pair wins.
	cancelErrs := make([][2]error, n)
	for i := 0; i < n; i++ {
		for j := 0; j < 2; j++ {
			wg.Add(1)
			go func(i, j int) {
				defer wg.Done()
				_, cancelErrs[i][j] = s.svc.Transaction.CancelTransaction(s.ctx, admin, txns[i].TransactionID)
			}(i, j)
		}
	}
	wg.Wait()

	reversalNos := make([]string, 0, n)
	for i := 0; i < n; i++ {
		succeeded := 0
		for _, err := range cancelErrs[i] {
			if err == nil {
				succeeded++
				continue
			}
			s.ErrorIs(err, services.ErrStatusTransitionInvalid)
		}
		s.Equal(1, succeeded, "transaction %s is cancelled once", txns[i].TransactionNo)

		original, err := s.svc.Journal.GetJournalEntryByID(s.ctx, entries[i].JournalEntryID)
		s.Require().NoError(err)
		s.Equal(domain.JournalReversed, original.Status)
		s.Require().NotNil(original.ReversedByEntryID)

		reversal, err := s.svc.Journal.GetJournalEntryByID(s.ctx, *original.ReversedByEntryID)
		s.Require().NoError(err)
		s.Require().NotNil(reversal.ReversalOfID)
		s.Equal(original.JournalEntryID, *reversal.ReversalOfID)
		reversalNos = append(reversalNos, reversal.EntryNo)

		stored, err := s.svc.Transaction.GetTransactionByID(s.ctx, txns[i].TransactionID)
		s.Require().NoError(err)
		s.Equal(domain.StatusCancelled, stored.Status)
	}
	sort.Strings(reversalNos)
	s.Equal(numbered("JER", n), reversalNos, "one reversal per entry, numbered without gaps")

	s.Equal("0", s.balance("1001"))
	s.Equal("0", s.balance("4002"))
	accounts, err := s.svc.Account.ListAccounts(s.ctx)
	s.Require().NoError(err)
	sum := decimal.Zero
	for _, a := range accounts {
		sum = sum.Add(a.Balance)
	}
	s.True(sum.IsZero(), "balances sum to zero, got %s", sum)
}
