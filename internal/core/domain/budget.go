package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetStatus is the lifecycle state of a budget.
type BudgetStatus string

const (
	BudgetDraft  BudgetStatus = "DRAFT"
	BudgetActive BudgetStatus = "ACTIVE"
	BudgetClosed BudgetStatus = "CLOSED"
)

// Budget groups target amounts per category over an inclusive date range.
type Budget struct {
	BudgetID  string       `json:"budgetID"`
	Name      string       `json:"name"`
	Type      string       `json:"type"` // ANNUAL, MONTHLY, PROJECT
	StartDate time.Time    `json:"startDate"`
	EndDate   time.Time    `json:"endDate"`
	Status    BudgetStatus `json:"status"`
	AuditFields
}

// Covers reports whether date falls inside [StartDate, EndDate], compared by calendar day.
func (b Budget) Covers(date time.Time) bool {
	return WithinDays(date, &b.StartDate, &b.EndDate)
}

// WithinDays reports whether date falls on or after from and on or before to, compared by
// calendar day. A nil bound is open.
func WithinDays(date time.Time, from, to *time.Time) bool {
	d := truncateDay(date)
	if from != nil && d.Before(truncateDay(*from)) {
		return false
	}
	if to != nil && d.After(truncateDay(*to)) {
		return false
	}
	return true
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// BudgetItem targets one category within a budget. ActualAmount, Variance and
// Percentage are a cached copy of values derived from posted transactions.
type BudgetItem struct {
	BudgetItemID     string          `json:"budgetItemID"`
	BudgetID         string          `json:"budgetID"`
	CategoryID       string          `json:"categoryID"`
	BudgetAmount     decimal.Decimal `json:"budgetAmount"`
	ActualAmount     decimal.Decimal `json:"actualAmount"`
	Variance         decimal.Decimal `json:"variance"`
	Percentage       decimal.Decimal `json:"percentage"`
	LastCalculatedAt *time.Time      `json:"lastCalculatedAt,omitempty"`
}

// BudgetActuals is the recomputed actual-vs-budget view of a budget.
type BudgetActuals struct {
	Budget        Budget          `json:"budget"`
	Items         []BudgetItem    `json:"items"`
	TotalBudgeted decimal.Decimal `json:"totalBudgeted"`
	TotalActual   decimal.Decimal `json:"totalActual"`
	CalculatedAt  time.Time       `json:"calculatedAt"`
}
