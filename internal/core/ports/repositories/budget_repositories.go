package repositories

import (
	"context"

	"github.com/SscSPs/school_ledger/internal/core/domain"
)

// BudgetRepository defines persistence operations for budgets and their items.
type BudgetRepository interface {
	SaveBudget(ctx context.Context, budget domain.Budget) error
	FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error)
	SaveBudgetItem(ctx context.Context, item domain.BudgetItem) error
	ListBudgetItems(ctx context.Context, budgetID string) ([]domain.BudgetItem, error)

	// UpdateBudgetItemActuals writes the cached actual, variance and percentage columns.
	UpdateBudgetItemActuals(ctx context.Context, item domain.BudgetItem) error
}

// BudgetActualsCache is a materialised copy of recomputed budget actuals.
// It is never the source of truth and may be dropped at any time.
type BudgetActualsCache interface {
	// Generation identifies the current cache state. It is read before computing so the
	// result is stored against the state it was computed from.
	Generation(ctx context.Context) (int64, error)
	Get(ctx context.Context, generation int64, budgetID string) (*domain.BudgetActuals, bool, error)
	Set(ctx context.Context, generation int64, actuals domain.BudgetActuals) error

	// InvalidateAll drops every cached budget, called whenever posted transactions change.
	InvalidateAll(ctx context.Context) error
}
