package seed_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/SscSPs/school_ledger/internal/core/services"
	"github.com/SscSPs/school_ledger/internal/dto"
	"github.com/SscSPs/school_ledger/internal/platform/config"
	"github.com/SscSPs/school_ledger/internal/repositories/memory"
	"github.com/SscSPs/school_ledger/internal/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded(t *testing.T) {
	f, err := seed.LoadEmbedded()
	require.NoError(t, err)

	codes := make(map[string]domain.AccountType)
	for _, a := range f.Accounts {
		codes[a.Code] = a.Type
	}
	assert.Equal(t, domain.Asset, codes["1001"])
	assert.Equal(t, domain.Income, codes["4001"])
	assert.Equal(t, domain.Expense, codes["5001"])

	var donation *seed.Category
	for i := range f.Categories {
		if f.Categories[i].Name == "Donation" {
			donation = &f.Categories[i]
		}
	}
	require.NotNil(t, donation)
	assert.Equal(t, domain.TransactionIncome, donation.Type)
	assert.Equal(t, "4001", donation.AccountCode)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "bad account type",
			yaml: "accounts:\n  - {code: \"1\", name: A, type: CASHY}\n",
			want: "invalid type",
		},
		{
			name: "duplicate code",
			yaml: "accounts:\n  - {code: \"1\", name: A, type: ASSET}\n  - {code: \"1\", name: B, type: ASSET}\n",
			want: "duplicate code",
		},
		{
			name: "undeclared account",
			yaml: "accounts:\n  - {code: \"1\", name: A, type: INCOME}\ncategories:\n  - {name: Fees, type: INCOME, account_code: \"9\"}\n",
			want: "not declared",
		},
		{
			name: "bad category type",
			yaml: "accounts:\n  - {code: \"1\", name: A, type: INCOME}\ncategories:\n  - {name: Fees, type: GIFT, account_code: \"1\"}\n",
			want: "invalid type",
		},
		{
			name: "malformed",
			yaml: "accounts: [",
			want: "failed to parse",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := seed.Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.yaml")
	content := "accounts:\n  - {code: \"1001\", name: Cash, type: ASSET}\n  - {code: \"4100\", name: Grants, type: INCOME}\ncategories:\n  - {name: Grant, type: DONATION, account_code: \"4100\"}\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	f, err := seed.LoadFromFile(path)
	require.NoError(t, err)
	assert.Len(t, f.Accounts, 2)
	assert.Len(t, f.Categories, 1)

	_, err = seed.LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestApply_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{CashAccountCode: "1001"}
	svc := services.NewServiceContainer(cfg, memory.NewRepositoryProvider(memory.NewStore()), nil)

	f, err := seed.LoadEmbedded()
	require.NoError(t, err)

	first, err := seed.Apply(ctx, svc.Account, svc.Category, f, "seeder")
	require.NoError(t, err)
	assert.Equal(t, len(f.Accounts), first.AccountsCreated)
	assert.Equal(t, len(f.Categories), first.CategoriesCreated)
	assert.Zero(t, first.AccountsSkipped)

	second, err := seed.Apply(ctx, svc.Account, svc.Category, f, "seeder")
	require.NoError(t, err)
	assert.Zero(t, second.AccountsCreated)
	assert.Zero(t, second.CategoriesCreated)
	assert.Equal(t, len(f.Accounts), second.AccountsSkipped)
	assert.Equal(t, len(f.Categories), second.CategoriesSkipped)

	accounts, err := svc.Account.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, len(f.Accounts))
	for _, a := range accounts {
		assert.True(t, a.Balance.IsZero(), "seeded account %s should start at zero", a.Code)
	}

	donations, err := svc.Category.ListCategories(ctx, dto.ListCategoriesParams{})
	require.NoError(t, err)
	assert.Len(t, donations, len(f.Categories))
}
