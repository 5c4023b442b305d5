package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/school_ledger/internal/apperrors"
	"github.com/SscSPs/school_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/school_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/school_ledger/internal/core/ports/services"
	"github.com/SscSPs/school_ledger/internal/dto"
)

type categoryService struct {
	BaseService
	categories portsrepo.CategoryRepository
	ledger     *AccountLedger
	accounts   portsrepo.AccountReader
}

// NewCategoryService creates the financial category service.
func NewCategoryService(categories portsrepo.CategoryRepository, accounts portsrepo.AccountReader, ledger *AccountLedger, opts ...Option) portssvc.CategorySvcFacade {
	return &categoryService{
		BaseService: newBaseService(opts),
		categories:  categories,
		ledger:      ledger,
		accounts:    accounts,
	}
}

func (s *categoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, creatorUserID string) (*domain.FinancialCategory, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	if existing, err := s.categories.FindCategoryByName(ctx, req.Name); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: category %q", apperrors.ErrDuplicate, req.Name)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check category name: %w", err)
	}

	account, err := s.ledger.FindByCode(ctx, s.accounts, req.AccountCode)
	if err != nil {
		return nil, err
	}

	category := domain.FinancialCategory{
		CategoryID:  s.NewID(),
		Name:        req.Name,
		Type:        req.Type,
		AccountID:   account.AccountID,
		Description: req.Description,
		IsActive:    true,
		AuditFields: domain.NewAuditFields(creatorUserID, s.Now()),
	}
	if err := s.categories.SaveCategory(ctx, category); err != nil {
		s.LogError(ctx, err, "Failed to save category", slog.String("name", category.Name))
		return nil, fmt.Errorf("failed to save category %q: %w", category.Name, err)
	}

	s.LogInfo(ctx, "Category created", slog.String("category_id", category.CategoryID), slog.String("account_code", account.Code))
	return &category, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, categoryID string) (*domain.FinancialCategory, error) {
	category, err := s.categories.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, notFoundAs(err, ErrCategoryNotFound, categoryID)
	}
	return category, nil
}

func (s *categoryService) ListCategories(ctx context.Context, params dto.ListCategoriesParams) ([]domain.FinancialCategory, error) {
	categories, err := s.categories.ListCategories(ctx, params.Type)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories")
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// resolveCategory loads a category and checks it can carry a transaction of txnType.
func resolveCategory(ctx context.Context, categories portsrepo.CategoryRepository, categoryID string, txnType domain.TransactionType) (*domain.FinancialCategory, error) {
	category, err := categories.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, notFoundAs(err, ErrCategoryNotFound, categoryID)
	}
	if !category.IsActive {
		return nil, fmt.Errorf("%w: %s", ErrCategoryInactive, category.Name)
	}
	if category.Type != txnType {
		return nil, fmt.Errorf("%w: category %s is %s, transaction is %s", ErrCategoryTypeMismatch, category.Name, category.Type, txnType)
	}
	return category, nil
}
