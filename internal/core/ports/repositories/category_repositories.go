package repositories

import (
	"context"

	"github.com/SscSPs/school_ledger/internal/core/domain"
)

// CategoryRepository defines persistence operations for financial categories.
type CategoryRepository interface {
	// FindCategoryByID retrieves a category by its ID.
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.FinancialCategory, error)

	// FindCategoryByName retrieves a category by its unique name.
	FindCategoryByName(ctx context.Context, name string) (*domain.FinancialCategory, error)

	// ListCategories retrieves all categories, optionally filtered by type.
	ListCategories(ctx context.Context, categoryType *domain.TransactionType) ([]domain.FinancialCategory, error)

	// SaveCategory persists a new category.
	SaveCategory(ctx context.Context, category domain.FinancialCategory) error
}
