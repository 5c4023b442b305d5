package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is the budgets row.
type Budget struct {
	BudgetID  string    `db:"budget_id"`
	Name      string    `db:"name"`
	Type      string    `db:"budget_type"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
	Status    string    `db:"status"`
	AuditFields
}

// BudgetItem is the budget_items row.
type BudgetItem struct {
	BudgetItemID     string          `db:"budget_item_id"`
	BudgetID         string          `db:"budget_id"`
	CategoryID       string          `db:"category_id"`
	BudgetAmount     decimal.Decimal `db:"budget_amount"`
	ActualAmount     decimal.Decimal `db:"actual_amount"`
	Variance         decimal.Decimal `db:"variance"`
	Percentage       decimal.Decimal `db:"percentage"`
	LastCalculatedAt *time.Time      `db:"last_calculated_at"`
}
