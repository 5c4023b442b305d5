package services

import (
	"context"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/SscSPs/school_ledger/internal/dto"
)

// BudgetWriterSvc defines write operations for budgets
type BudgetWriterSvc interface {
	CreateBudget(ctx context.Context, actor domain.Actor, req dto.CreateBudgetRequest) (*domain.Budget, error)
	AddBudgetItem(ctx context.Context, actor domain.Actor, budgetID string, req dto.AddBudgetItemRequest) (*domain.BudgetItem, error)
}

// BudgetReaderSvc defines read operations for budgets
type BudgetReaderSvc interface {
	// GetBudget returns the budget with its items as last refreshed.
	GetBudget(ctx context.Context, budgetID string) (*domain.Budget, []domain.BudgetItem, error)

	// ComputeActuals recomputes actual-vs-budget figures from posted transactions.
	ComputeActuals(ctx context.Context, budgetID string) (*domain.BudgetActuals, error)

	// RefreshActuals recomputes and writes the figures back onto the budget items.
	RefreshActuals(ctx context.Context, budgetID string) (*domain.BudgetActuals, error)
}

// BudgetSvcFacade combines all budget-related service interfaces
type BudgetSvcFacade interface {
	BudgetReaderSvc
	BudgetWriterSvc
}
