package dto

import (
	"time"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBudgetRequest defines the data needed to open a budget.
type CreateBudgetRequest struct {
	Name      string               `json:"name" binding:"required,max=255"`
	Type      string               `json:"type" binding:"required,oneof=ANNUAL MONTHLY PROJECT"`
	StartDate time.Time            `json:"startDate" binding:"required"`
	EndDate   time.Time            `json:"endDate" binding:"required"`
	Status    *domain.BudgetStatus `json:"status" binding:"omitempty,oneof=DRAFT ACTIVE CLOSED"`
}

// AddBudgetItemRequest targets an amount for one category within a budget.
type AddBudgetItemRequest struct {
	CategoryID   string          `json:"categoryID" binding:"required"`
	BudgetAmount decimal.Decimal `json:"budgetAmount"`
}

// BudgetItemResponse defines the data returned for a budget item.
type BudgetItemResponse struct {
	BudgetItemID     string          `json:"budgetItemID"`
	CategoryID       string          `json:"categoryID"`
	BudgetAmount     decimal.Decimal `json:"budgetAmount"`
	ActualAmount     decimal.Decimal `json:"actualAmount"`
	Variance         decimal.Decimal `json:"variance"`
	Percentage       decimal.Decimal `json:"percentage"`
	LastCalculatedAt *time.Time      `json:"lastCalculatedAt,omitempty"`
}

// BudgetResponse defines the data returned for a budget with its items.
type BudgetResponse struct {
	BudgetID  string               `json:"budgetID"`
	Name      string               `json:"name"`
	Type      string               `json:"type"`
	StartDate time.Time            `json:"startDate"`
	EndDate   time.Time            `json:"endDate"`
	Status    domain.BudgetStatus  `json:"status"`
	Items     []BudgetItemResponse `json:"items"`
	CreatedAt time.Time            `json:"createdAt"`
	CreatedBy string               `json:"createdBy"`
}

// BudgetActualsResponse defines the actual-vs-budget view of a budget.
type BudgetActualsResponse struct {
	Budget        BudgetResponse  `json:"budget"`
	TotalBudgeted decimal.Decimal `json:"totalBudgeted"`
	TotalActual   decimal.Decimal `json:"totalActual"`
	CalculatedAt  time.Time       `json:"calculatedAt"`
}

// ToBudgetItemResponse converts a domain.BudgetItem.
func ToBudgetItemResponse(item *domain.BudgetItem) BudgetItemResponse {
	return BudgetItemResponse{
		BudgetItemID:     item.BudgetItemID,
		CategoryID:       item.CategoryID,
		BudgetAmount:     item.BudgetAmount,
		ActualAmount:     item.ActualAmount,
		Variance:         item.Variance,
		Percentage:       item.Percentage,
		LastCalculatedAt: item.LastCalculatedAt,
	}
}

// ToBudgetResponse converts a budget and its items.
func ToBudgetResponse(b *domain.Budget, items []domain.BudgetItem) BudgetResponse {
	res := BudgetResponse{
		BudgetID:  b.BudgetID,
		Name:      b.Name,
		Type:      b.Type,
		StartDate: b.StartDate,
		EndDate:   b.EndDate,
		Status:    b.Status,
		Items:     make([]BudgetItemResponse, len(items)),
		CreatedAt: b.CreatedAt,
		CreatedBy: b.CreatedBy,
	}
	for i, item := range items {
		res.Items[i] = ToBudgetItemResponse(&item)
	}
	return res
}

// ToBudgetActualsResponse converts recomputed actuals.
func ToBudgetActualsResponse(a *domain.BudgetActuals) BudgetActualsResponse {
	return BudgetActualsResponse{
		Budget:        ToBudgetResponse(&a.Budget, a.Items),
		TotalBudgeted: a.TotalBudgeted,
		TotalActual:   a.TotalActual,
		CalculatedAt:  a.CalculatedAt,
	}
}
