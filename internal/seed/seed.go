// Package seed loads a chart of accounts and its financial categories from YAML and
// applies it through the account and category services.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/SscSPs/school_ledger/internal/apperrors"
	"github.com/SscSPs/school_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/school_ledger/internal/core/ports/services"
	"github.com/SscSPs/school_ledger/internal/dto"
	"gopkg.in/yaml.v3"
)

//go:embed chart_of_accounts.yaml
var embeddedChart []byte

// Account is one chart-of-accounts row in a seed file.
type Account struct {
	Code        string             `yaml:"code"`
	Name        string             `yaml:"name"`
	Type        domain.AccountType `yaml:"type"`
	Description string             `yaml:"description"`
}

// Category is one financial category in a seed file. It points at its account by code.
type Category struct {
	Name        string                 `yaml:"name"`
	Type        domain.TransactionType `yaml:"type"`
	AccountCode string                 `yaml:"account_code"`
	Description string                 `yaml:"description"`
}

// File is the parsed content of a seed file.
type File struct {
	Accounts   []Account  `yaml:"accounts"`
	Categories []Category `yaml:"categories"`
}

// Result counts what Apply created and what was already present.
type Result struct {
	AccountsCreated   int
	AccountsSkipped   int
	CategoriesCreated int
	CategoriesSkipped int
}

// LoadEmbedded parses the chart of accounts shipped with the binary.
func LoadEmbedded() (*File, error) {
	return Parse(embeddedChart)
}

// LoadFromFile reads and parses a seed file. An empty path loads the embedded chart.
func LoadFromFile(path string) (*File, error) {
	if path == "" {
		return LoadEmbedded()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates seed YAML. Account codes and category names must be unique,
// and every category must reference an account declared in the same file.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed YAML: %w", err)
	}

	codes := make(map[string]domain.AccountType, len(f.Accounts))
	for i, a := range f.Accounts {
		if strings.TrimSpace(a.Code) == "" || strings.TrimSpace(a.Name) == "" {
			return nil, fmt.Errorf("account %d: code and name are required", i+1)
		}
		if !a.Type.IsValid() {
			return nil, fmt.Errorf("account %s: invalid type %q", a.Code, a.Type)
		}
		if _, dup := codes[a.Code]; dup {
			return nil, fmt.Errorf("account %s: duplicate code", a.Code)
		}
		codes[a.Code] = a.Type
	}

	names := make(map[string]struct{}, len(f.Categories))
	for i, c := range f.Categories {
		if strings.TrimSpace(c.Name) == "" {
			return nil, fmt.Errorf("category %d: name is required", i+1)
		}
		if !c.Type.IsValid() {
			return nil, fmt.Errorf("category %q: invalid type %q", c.Name, c.Type)
		}
		if _, ok := codes[c.AccountCode]; !ok {
			return nil, fmt.Errorf("category %q: account code %q is not declared", c.Name, c.AccountCode)
		}
		if _, dup := names[c.Name]; dup {
			return nil, fmt.Errorf("category %q: duplicate name", c.Name)
		}
		names[c.Name] = struct{}{}
	}

	return &f, nil
}

// Apply creates every account and category that does not exist yet. Accounts are matched by
// code and categories by name, so running it twice changes nothing.
func Apply(ctx context.Context, accounts portssvc.AccountSvcFacade, categories portssvc.CategorySvcFacade, f *File, seederID string) (Result, error) {
	var res Result

	for _, a := range f.Accounts {
		_, err := accounts.GetAccountByCode(ctx, a.Code)
		if err == nil {
			res.AccountsSkipped++
			continue
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return res, fmt.Errorf("failed to look up account %s: %w", a.Code, err)
		}
		req := dto.CreateAccountRequest{Code: a.Code, Name: a.Name, AccountType: a.Type, Description: a.Description}
		if _, err := accounts.CreateAccount(ctx, req, seederID); err != nil {
			return res, fmt.Errorf("failed to create account %s: %w", a.Code, err)
		}
		res.AccountsCreated++
	}

	existing, err := categories.ListCategories(ctx, dto.ListCategoriesParams{})
	if err != nil {
		return res, fmt.Errorf("failed to list categories: %w", err)
	}
	known := make(map[string]struct{}, len(existing))
	for _, c := range existing {
		known[c.Name] = struct{}{}
	}

	for _, c := range f.Categories {
		if _, ok := known[c.Name]; ok {
			res.CategoriesSkipped++
			continue
		}
		req := dto.CreateCategoryRequest{Name: c.Name, Type: c.Type, AccountCode: c.AccountCode, Description: c.Description}
		if _, err := categories.CreateCategory(ctx, req, seederID); err != nil {
			return res, fmt.Errorf("failed to create category %q: %w", c.Name, err)
		}
		res.CategoriesCreated++
	}

	return res, nil
}
