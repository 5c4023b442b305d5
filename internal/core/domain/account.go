package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Income    AccountType = "INCOME"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether t is a known account type.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Income, Expense:
		return true
	}
	return false
}

// Account is a node in the chart of accounts.
// Balance is the sum of every debit-minus-credit posting applied to the account and is
// only ever changed through the account ledger.
type Account struct {
	AccountID   string          `json:"accountID"`   // Primary Key (UUID)
	Code        string          `json:"code"`        // Unique, e.g. "1001"
	Name        string          `json:"name"`        // Display name
	AccountType AccountType     `json:"accountType"` // ASSET, LIABILITY, etc.
	Description string          `json:"description"` // Nullable user description
	IsActive    bool            `json:"isActive"`
	Balance     decimal.Decimal `json:"balance"`
	AuditFields
}
