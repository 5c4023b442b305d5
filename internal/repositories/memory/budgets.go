package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/school_ledger/internal/apperrors"
	"github.com/SscSPs/school_ledger/internal/core/domain"
)

func (r *repo) SaveBudget(_ context.Context, budget domain.Budget) error {
	defer r.write()()
	if err := r.fail("SaveBudget"); err != nil {
		return err
	}
	if _, ok := r.st().budgets[budget.BudgetID]; ok {
		return fmt.Errorf("%w: budget %s", apperrors.ErrDuplicate, budget.BudgetID)
	}
	r.st().budgets[budget.BudgetID] = budget
	return nil
}

func (r *repo) FindBudgetByID(_ context.Context, budgetID string) (*domain.Budget, error) {
	defer r.read()()
	budget, ok := r.st().budgets[budgetID]
	if !ok {
		return nil, notFound("budget", budgetID)
	}
	return &budget, nil
}

func (r *repo) SaveBudgetItem(_ context.Context, item domain.BudgetItem) error {
	defer r.write()()
	if err := r.fail("SaveBudgetItem"); err != nil {
		return err
	}
	if _, ok := r.st().budgets[item.BudgetID]; !ok {
		return notFound("budget", item.BudgetID)
	}
	for _, existing := range r.st().budgetItems {
		if existing.BudgetID == item.BudgetID && existing.CategoryID == item.CategoryID {
			return fmt.Errorf("%w: category %s in budget %s", apperrors.ErrDuplicate, item.CategoryID, item.BudgetID)
		}
	}
	r.st().budgetItems[item.BudgetItemID] = item
	return nil
}

func (r *repo) ListBudgetItems(_ context.Context, budgetID string) ([]domain.BudgetItem, error) {
	defer r.read()()
	out := make([]domain.BudgetItem, 0)
	for _, item := range r.st().budgetItems {
		if item.BudgetID == budgetID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BudgetItemID < out[j].BudgetItemID })
	return out, nil
}

func (r *repo) UpdateBudgetItemActuals(_ context.Context, item domain.BudgetItem) error {
	defer r.write()()
	if err := r.fail("UpdateBudgetItemActuals"); err != nil {
		return err
	}
	stored, ok := r.st().budgetItems[item.BudgetItemID]
	if !ok {
		return notFound("budget item", item.BudgetItemID)
	}
	stored.ActualAmount = item.ActualAmount
	stored.Variance = item.Variance
	stored.Percentage = item.Percentage
	stored.LastCalculatedAt = item.LastCalculatedAt
	r.st().budgetItems[item.BudgetItemID] = stored
	return nil
}
