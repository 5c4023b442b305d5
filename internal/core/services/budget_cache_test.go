package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/SscSPs/school_ledger/internal/core/services"
	"github.com/SscSPs/school_ledger/internal/dto"
	"github.com/SscSPs/school_ledger/internal/platform/config"
	"github.com/SscSPs/school_ledger/internal/repositories/cache"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// interleavingCache runs beforeSet once, after actuals are computed and before they reach redis.
type interleavingCache struct {
	*cache.RedisBudgetActualsCache
	beforeSet func()
}

func (c *interleavingCache) Set(ctx context.Context, generation int64, actuals domain.BudgetActuals) error {
	if hook := c.beforeSet; hook != nil {
		c.beforeSet = nil
		hook()
	}
	return c.RedisBudgetActualsCache.Set(ctx, generation, actuals)
}

func (s *LedgerSuite) TestBudgetActualsComputedBeforeInvalidationAreNotServed() {
	srv := miniredis.RunT(s.T())
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	s.T().Cleanup(func() { _ = client.Close() })
	actualsCache := &interleavingCache{RedisBudgetActualsCache: cache.NewRedisBudgetActualsCache(client, time.Minute)}

	cfg := &config.Config{CashAccountCode: "1001"}
	svc := services.NewServiceContainer(cfg, s.repos, actualsCache, services.WithClock(func() time.Time { return fixedNow }))

	budget := s.newBudget(treasurer)
	_, err := svc.Budget.AddBudgetItem(s.ctx, treasurer, budget.BudgetID, dto.AddBudgetItemRequest{
		CategoryID:   s.category["Utilities"].CategoryID,
		BudgetAmount: decimal.NewFromInt(1000000),
	})
	s.Require().NoError(err)

	// A posting commits and invalidates the cache while the first result is in flight.
	actualsCache.beforeSet = func() {
		_, _, err := svc.Transaction.CreateTransaction(s.ctx, staff, createRequest(domain.TransactionExpense, s.category["Utilities"].CategoryID, 500000))
		s.Require().NoError(err)
	}
	first, err := svc.Budget.ComputeActuals(s.ctx, budget.BudgetID)
	s.Require().NoError(err)
	s.Equal("0", first.TotalActual.String())

	second, err := svc.Budget.ComputeActuals(s.ctx, budget.BudgetID)
	s.Require().NoError(err)
	s.Equal("500000", second.TotalActual.String())

	// The fresh value is cached now and matches a recomputation.
	third, err := svc.Budget.ComputeActuals(s.ctx, budget.BudgetID)
	s.Require().NoError(err)
	s.Equal("500000", third.TotalActual.String())
	refreshed, err := svc.Budget.RefreshActuals(s.ctx, budget.BudgetID)
	s.Require().NoError(err)
	s.True(refreshed.TotalActual.Equal(third.TotalActual))
}
