package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/school_ledger/internal/apperrors"
	"github.com/SscSPs/school_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/school_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/school_ledger/internal/core/ports/services"
	"github.com/SscSPs/school_ledger/internal/dto"
	"github.com/SscSPs/school_ledger/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// BudgetActualsCalculator manages budgets and derives their actuals from posted transactions.
// Stored and cached actuals are copies; Compute always reads the transactions.
type BudgetActualsCalculator struct {
	BaseService
	repos portsrepo.Repositories
	uow   portsrepo.UnitOfWork
	cache portsrepo.BudgetActualsCache
}

var _ portssvc.BudgetSvcFacade = (*BudgetActualsCalculator)(nil)

// NewBudgetActualsCalculator creates the calculator. cache may be nil.
func NewBudgetActualsCalculator(provider portsrepo.RepositoryProvider, cache portsrepo.BudgetActualsCache, opts ...Option) *BudgetActualsCalculator {
	return &BudgetActualsCalculator{
		BaseService: newBaseService(opts),
		repos:       provider.Repositories,
		uow:         provider.UnitOfWork,
		cache:       cache,
	}
}

func (c *BudgetActualsCalculator) CreateBudget(ctx context.Context, actor domain.Actor, req dto.CreateBudgetRequest) (*domain.Budget, error) {
	var extra []apperrors.FieldError
	if !req.StartDate.IsZero() && !req.EndDate.IsZero() && req.EndDate.Before(req.StartDate) {
		extra = append(extra, apperrors.FieldError{Field: "endDate", Message: "must not be before startDate"})
	}
	if err := validateRequest(req, extra...); err != nil {
		return nil, err
	}
	if !actor.IsElevated() {
		return nil, ErrElevatedRoleRequired
	}

	status := domain.BudgetActive
	if req.Status != nil {
		status = *req.Status
	}
	budget := domain.Budget{
		BudgetID:    c.NewID(),
		Name:        req.Name,
		Type:        req.Type,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      status,
		AuditFields: domain.NewAuditFields(actor.UserID, c.Now()),
	}
	if err := c.repos.Budgets.SaveBudget(ctx, budget); err != nil {
		c.LogError(ctx, err, "Failed to save budget", slog.String("name", budget.Name))
		return nil, fmt.Errorf("failed to save budget %q: %w", budget.Name, err)
	}
	c.LogInfo(ctx, "Budget created", slog.String("budget_id", budget.BudgetID))
	return &budget, nil
}

func (c *BudgetActualsCalculator) AddBudgetItem(ctx context.Context, actor domain.Actor, budgetID string, req dto.AddBudgetItemRequest) (*domain.BudgetItem, error) {
	var extra []apperrors.FieldError
	if req.BudgetAmount.IsNegative() {
		extra = append(extra, apperrors.FieldError{Field: "budgetAmount", Message: "must not be negative"})
	}
	if err := validateRequest(req, extra...); err != nil {
		return nil, err
	}
	if !actor.IsElevated() {
		return nil, ErrElevatedRoleRequired
	}

	var item domain.BudgetItem
	err := c.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		if _, err := repos.Budgets.FindBudgetByID(ctx, budgetID); err != nil {
			return notFoundAs(err, ErrBudgetNotFound, budgetID)
		}
		if _, err := repos.Categories.FindCategoryByID(ctx, req.CategoryID); err != nil {
			return notFoundAs(err, ErrCategoryNotFound, req.CategoryID)
		}

		items, err := repos.Budgets.ListBudgetItems(ctx, budgetID)
		if err != nil {
			return fmt.Errorf("failed to load budget items: %w", err)
		}
		for _, existing := range items {
			if existing.CategoryID == req.CategoryID {
				return fmt.Errorf("%w: category %s is already budgeted", apperrors.ErrDuplicate, req.CategoryID)
			}
		}

		item = domain.BudgetItem{
			BudgetItemID: c.NewID(),
			BudgetID:     budgetID,
			CategoryID:   req.CategoryID,
			BudgetAmount: req.BudgetAmount,
			ActualAmount: decimal.Zero,
			Variance:     req.BudgetAmount.Neg(),
			Percentage:   decimal.Zero,
		}
		return repos.Budgets.SaveBudgetItem(ctx, item)
	})
	if err != nil {
		c.LogError(ctx, err, "Failed to add budget item", slog.String("budget_id", budgetID))
		return nil, err
	}

	c.invalidate(ctx)
	return &item, nil
}

func (c *BudgetActualsCalculator) GetBudget(ctx context.Context, budgetID string) (*domain.Budget, []domain.BudgetItem, error) {
	budget, err := c.repos.Budgets.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, nil, notFoundAs(err, ErrBudgetNotFound, budgetID)
	}
	items, err := c.repos.Budgets.ListBudgetItems(ctx, budgetID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load budget items: %w", err)
	}
	return budget, items, nil
}

// ComputeActuals returns the actuals for a budget, served from the cache when present.
func (c *BudgetActualsCalculator) ComputeActuals(ctx context.Context, budgetID string) (*domain.BudgetActuals, error) {
	gen, cacheable := c.cacheGeneration(ctx)
	if cacheable {
		cached, ok, err := c.cache.Get(ctx, gen, budgetID)
		if err != nil {
			c.LogError(ctx, err, "Budget actuals cache read failed", slog.String("budget_id", budgetID))
		} else if ok {
			c.LogDebug(ctx, "Budget actuals served from cache", slog.String("budget_id", budgetID))
			return cached, nil
		}
	}

	actuals, err := c.compute(ctx, c.repos, budgetID)
	if err != nil {
		return nil, err
	}
	if cacheable {
		c.store(ctx, gen, actuals)
	}
	return actuals, nil
}

// RefreshActuals recomputes the actuals and writes them back onto the budget items.
func (c *BudgetActualsCalculator) RefreshActuals(ctx context.Context, budgetID string) (*domain.BudgetActuals, error) {
	gen, cacheable := c.cacheGeneration(ctx)

	var actuals *domain.BudgetActuals
	err := c.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		actuals, err = c.compute(ctx, repos, budgetID)
		if err != nil {
			return err
		}
		for _, item := range actuals.Items {
			if err := repos.Budgets.UpdateBudgetItemActuals(ctx, item); err != nil {
				return fmt.Errorf("failed to store actuals of budget item %s: %w", item.BudgetItemID, err)
			}
		}
		return nil
	})
	if err != nil {
		c.LogError(ctx, err, "Failed to refresh budget actuals", slog.String("budget_id", budgetID))
		return nil, err
	}

	if cacheable {
		c.store(ctx, gen, actuals)
	}
	c.LogInfo(ctx, "Budget actuals refreshed", slog.String("budget_id", budgetID), slog.String("total_actual", actuals.TotalActual.String()))
	return actuals, nil
}

// cacheGeneration snapshots the cache generation before anything is computed. Without a
// snapshot the result is not cached at all.
func (c *BudgetActualsCalculator) cacheGeneration(ctx context.Context) (int64, bool) {
	if c.cache == nil {
		return 0, false
	}
	gen, err := c.cache.Generation(ctx)
	if err != nil {
		c.LogError(ctx, err, "Budget actuals cache generation read failed")
		return 0, false
	}
	return gen, true
}

func (c *BudgetActualsCalculator) compute(ctx context.Context, repos portsrepo.Repositories, budgetID string) (*domain.BudgetActuals, error) {
	budget, err := repos.Budgets.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, notFoundAs(err, ErrBudgetNotFound, budgetID)
	}
	items, err := repos.Budgets.ListBudgetItems(ctx, budgetID)
	if err != nil {
		return nil, fmt.Errorf("failed to load budget items: %w", err)
	}

	now := c.Now()
	actuals := &domain.BudgetActuals{
		Budget:        *budget,
		Items:         make([]domain.BudgetItem, len(items)),
		TotalBudgeted: decimal.Zero,
		TotalActual:   decimal.Zero,
		CalculatedAt:  now,
	}
	for i, item := range items {
		actual, err := repos.Transactions.SumPostedByCategory(ctx, item.CategoryID, budget.StartDate, budget.EndDate)
		if err != nil {
			return nil, fmt.Errorf("failed to sum transactions of category %s: %w", item.CategoryID, err)
		}
		item.ActualAmount = actual
		item.Variance, item.Percentage = accounting.Variance(actual, item.BudgetAmount)
		item.LastCalculatedAt = &now
		actuals.Items[i] = item
		actuals.TotalBudgeted = actuals.TotalBudgeted.Add(item.BudgetAmount)
		actuals.TotalActual = actuals.TotalActual.Add(actual)
	}
	return actuals, nil
}

func (c *BudgetActualsCalculator) store(ctx context.Context, gen int64, actuals *domain.BudgetActuals) {
	if err := c.cache.Set(ctx, gen, *actuals); err != nil {
		c.LogError(ctx, err, "Budget actuals cache write failed", slog.String("budget_id", actuals.Budget.BudgetID))
	}
}

func (c *BudgetActualsCalculator) invalidate(ctx context.Context) {
	invalidateBudgetActuals(ctx, &c.BaseService, c.cache)
}

// invalidateBudgetActuals drops cached actuals after posted transactions change.
// Failures are logged, not returned.
func invalidateBudgetActuals(ctx context.Context, base *BaseService, cache portsrepo.BudgetActualsCache) {
	if cache == nil {
		return
	}
	if err := cache.InvalidateAll(ctx); err != nil && !errors.Is(err, context.Canceled) {
		base.LogError(ctx, err, "Failed to invalidate budget actuals cache")
	}
}
