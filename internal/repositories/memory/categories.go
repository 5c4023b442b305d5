package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/school_ledger/internal/apperrors"
	"github.com/SscSPs/school_ledger/internal/core/domain"
)

func (r *repo) FindCategoryByID(_ context.Context, categoryID string) (*domain.FinancialCategory, error) {
	defer r.read()()
	cat, ok := r.st().categories[categoryID]
	if !ok {
		return nil, notFound("category", categoryID)
	}
	return &cat, nil
}

func (r *repo) FindCategoryByName(_ context.Context, name string) (*domain.FinancialCategory, error) {
	defer r.read()()
	for _, cat := range r.st().categories {
		if cat.Name == name {
			return &cat, nil
		}
	}
	return nil, notFound("category", name)
}

func (r *repo) ListCategories(_ context.Context, categoryType *domain.TransactionType) ([]domain.FinancialCategory, error) {
	defer r.read()()
	out := make([]domain.FinancialCategory, 0, len(r.st().categories))
	for _, cat := range r.st().categories {
		if categoryType != nil && cat.Type != *categoryType {
			continue
		}
		out = append(out, cat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *repo) SaveCategory(_ context.Context, category domain.FinancialCategory) error {
	defer r.write()()
	if err := r.fail("SaveCategory"); err != nil {
		return err
	}
	if _, ok := r.st().accounts[category.AccountID]; !ok {
		return notFound("account", category.AccountID)
	}
	for _, cat := range r.st().categories {
		if cat.Name == category.Name || cat.CategoryID == category.CategoryID {
			return fmt.Errorf("%w: category %q", apperrors.ErrDuplicate, category.Name)
		}
	}
	r.st().categories[category.CategoryID] = category
	return nil
}
