package services_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/school_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/school_ledger/internal/core/ports/services"
	"github.com/SscSPs/school_ledger/internal/core/services"
	"github.com/SscSPs/school_ledger/internal/dto"
	"github.com/SscSPs/school_ledger/internal/platform/config"
	"github.com/SscSPs/school_ledger/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var (
	fixedNow   = time.Date(2026, 3, 15, 9, 30, 0, 0, time.UTC)
	admin      = domain.Actor{UserID: "admin-1", Role: domain.RoleAdmin}
	treasurer  = domain.Actor{UserID: "treasurer-1", Role: domain.RoleTreasurer}
	staff      = domain.Actor{UserID: "staff-1", Role: domain.RoleStaff}
	otherStaff = domain.Actor{UserID: "staff-2", Role: domain.RoleStaff}
)

func sequentialIDs() func() string {
	var n int64
	return func() string {
		return fmt.Sprintf("id-%04d", atomic.AddInt64(&n, 1))
	}
}

// MockBudgetActualsCache is a mock type for the BudgetActualsCache interface
type MockBudgetActualsCache struct {
	mock.Mock
}

func (m *MockBudgetActualsCache) Generation(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBudgetActualsCache) Get(ctx context.Context, generation int64, budgetID string) (*domain.BudgetActuals, bool, error) {
	args := m.Called(ctx, generation, budgetID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.BudgetActuals), args.Bool(1), args.Error(2)
}

func (m *MockBudgetActualsCache) Set(ctx context.Context, generation int64, actuals domain.BudgetActuals) error {
	args := m.Called(ctx, generation, actuals)
	return args.Error(0)
}

func (m *MockBudgetActualsCache) InvalidateAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var _ portsrepo.BudgetActualsCache = (*MockBudgetActualsCache)(nil)

// LedgerSuite runs the services against the in-memory store with a seeded chart of accounts.
type LedgerSuite struct {
	suite.Suite
	ctx      context.Context
	store    *memory.Store
	repos    portsrepo.RepositoryProvider
	svc      *portssvc.ServiceContainer
	cache    *MockBudgetActualsCache
	accounts map[string]*domain.Account           // by code
	category map[string]*domain.FinancialCategory // by name
	drafts   int
}

func (s *LedgerSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.NewStore()
	s.repos = memory.NewRepositoryProvider(s.store)
	s.drafts = 0
	s.cache = new(MockBudgetActualsCache)
	s.cache.On("InvalidateAll", mock.Anything).Return(nil).Maybe()
	s.cache.On("Generation", mock.Anything).Return(int64(0), nil).Maybe()
	s.cache.On("Get", mock.Anything, mock.Anything, mock.Anything).Return(nil, false, nil).Maybe()
	s.cache.On("Set", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

	cfg := &config.Config{CashAccountCode: "1001", JWTSecret: "test-secret", JWTExpiryDuration: time.Hour, JWTIssuer: "test"}
	s.svc = services.NewServiceContainer(cfg, s.repos, s.cache,
		services.WithClock(func() time.Time { return fixedNow }),
		services.WithIDGenerator(sequentialIDs()),
	)

	s.accounts = make(map[string]*domain.Account)
	for _, a := range []dto.CreateAccountRequest{
		{Code: "1001", Name: "Cash at Bank", AccountType: domain.Asset},
		{Code: "4001", Name: "Donations", AccountType: domain.Income},
		{Code: "4002", Name: "Tuition Fees", AccountType: domain.Income},
		{Code: "5001", Name: "Utilities", AccountType: domain.Expense},
	} {
		acc, err := s.svc.Account.CreateAccount(s.ctx, a, "seed")
		require.NoError(s.T(), err)
		s.accounts[a.Code] = acc
	}

	s.category = make(map[string]*domain.FinancialCategory)
	for _, c := range []dto.CreateCategoryRequest{
		{Name: "Donation", Type: domain.TransactionIncome, AccountCode: "4001"},
		{Name: "Alumni Donation", Type: domain.TransactionDonation, AccountCode: "4001"},
		{Name: "Tuition", Type: domain.TransactionIncome, AccountCode: "4002"},
		{Name: "Utilities", Type: domain.TransactionExpense, AccountCode: "5001"},
	} {
		cat, err := s.svc.Category.CreateCategory(s.ctx, c, "seed")
		require.NoError(s.T(), err)
		s.category[c.Name] = cat
	}
}

func (s *LedgerSuite) balance(code string) string {
	acc, err := s.svc.Account.GetAccountByCode(s.ctx, code)
	s.Require().NoError(err)
	return acc.Balance.String()
}

func (s *LedgerSuite) create(actor domain.Actor, txnType domain.TransactionType, category string, amount int64) (*domain.Transaction, *domain.JournalEntry) {
	txn, entry, err := s.svc.Transaction.CreateTransaction(s.ctx, actor, createRequest(txnType, s.category[category].CategoryID, amount))
	s.Require().NoError(err)
	return txn, entry
}

// seedDraft stores a DRAFT transaction directly in the repository. Drafts are never created
// through the service, which always posts.
func (s *LedgerSuite) seedDraft(actor domain.Actor, txnType domain.TransactionType, category string, amount int64) *domain.Transaction {
	s.drafts++
	txn := domain.Transaction{
		TransactionID: fmt.Sprintf("draft-%d", s.drafts),
		TransactionNo: fmt.Sprintf("TRX-DRAFT-%04d", s.drafts),
		Type:          txnType,
		CategoryID:    s.category[category].CategoryID,
		Amount:        decimal.NewFromInt(amount),
		Description:   "draft " + string(txnType),
		Date:          fixedNow,
		Status:        domain.StatusDraft,
		AuditFields:   domain.NewAuditFields(actor.UserID, fixedNow),
	}
	s.Require().NoError(s.repos.Transactions.SaveTransaction(s.ctx, txn))
	return &txn
}
