package dto

import (
	"time"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to add an account to the chart of accounts.
type CreateAccountRequest struct {
	Code        string             `json:"code" binding:"required,max=20"`
	Name        string             `json:"name" binding:"required,max=255"`
	AccountType domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY INCOME EXPENSE"`
	Description string             `json:"description" binding:"max=1000"`
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountID     string             `json:"accountID"`
	Code          string             `json:"code"`
	Name          string             `json:"name"`
	AccountType   domain.AccountType `json:"accountType"`
	Description   string             `json:"description"`
	IsActive      bool               `json:"isActive"`
	Balance       decimal.Decimal    `json:"balance"`
	CreatedAt     time.Time          `json:"createdAt"`
	CreatedBy     string             `json:"createdBy"`
	LastUpdatedAt time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy string             `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		Code:          acc.Code,
		Name:          acc.Name,
		AccountType:   acc.AccountType,
		Description:   acc.Description,
		IsActive:      acc.IsActive,
		Balance:       acc.Balance,
		CreatedAt:     acc.CreatedAt,
		CreatedBy:     acc.CreatedBy,
		LastUpdatedAt: acc.LastUpdatedAt,
		LastUpdatedBy: acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// CreateCategoryRequest defines the data needed to create a financial category.
// The linked account is given by code so seed files stay readable.
type CreateCategoryRequest struct {
	Name        string                 `json:"name" binding:"required,max=255"`
	Type        domain.TransactionType `json:"type" binding:"required,oneof=INCOME EXPENSE DONATION"`
	AccountCode string                 `json:"accountCode" binding:"required"`
	Description string                 `json:"description" binding:"max=1000"`
}

// CategoryResponse defines the data returned for a financial category.
type CategoryResponse struct {
	CategoryID  string                 `json:"categoryID"`
	Name        string                 `json:"name"`
	Type        domain.TransactionType `json:"type"`
	AccountID   string                 `json:"accountID"`
	Description string                 `json:"description"`
	IsActive    bool                   `json:"isActive"`
	CreatedAt   time.Time              `json:"createdAt"`
	CreatedBy   string                 `json:"createdBy"`
}

// ListCategoriesParams defines query parameters for listing categories.
type ListCategoriesParams struct {
	Type *domain.TransactionType `form:"type" binding:"omitempty,oneof=INCOME EXPENSE DONATION"`
}

// ToCategoryResponse converts a domain.FinancialCategory to CategoryResponse DTO
func ToCategoryResponse(cat *domain.FinancialCategory) CategoryResponse {
	return CategoryResponse{
		CategoryID:  cat.CategoryID,
		Name:        cat.Name,
		Type:        cat.Type,
		AccountID:   cat.AccountID,
		Description: cat.Description,
		IsActive:    cat.IsActive,
		CreatedAt:   cat.CreatedAt,
		CreatedBy:   cat.CreatedBy,
	}
}

// ToListCategoryResponse converts categories to response DTOs.
func ToListCategoryResponse(categories []domain.FinancialCategory) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i, cat := range categories {
		res[i] = ToCategoryResponse(&cat)
	}
	return res
}
