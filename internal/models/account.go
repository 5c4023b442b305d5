package models

import (
	"github.com/shopspring/decimal"
)

// Account is the accounts row.
type Account struct {
	AccountID   string          `db:"account_id"`
	Code        string          `db:"code"`
	Name        string          `db:"name"`
	AccountType string          `db:"account_type"`
	Description *string         `db:"description"` // Nullable
	IsActive    bool            `db:"is_active"`
	Balance     decimal.Decimal `db:"balance"`
	AuditFields
}

// FinancialCategory is the financial_categories row.
type FinancialCategory struct {
	CategoryID  string  `db:"category_id"`
	Name        string  `db:"name"`
	Type        string  `db:"type"`
	AccountID   string  `db:"account_id"`
	Description *string `db:"description"` // Nullable
	IsActive    bool    `db:"is_active"`
	AuditFields
}
