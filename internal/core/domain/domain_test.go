package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestTransactionType_CashIsDebited(t *testing.T) {
	tests := []struct {
		name string
		typ  domain.TransactionType
		want bool
	}{
		{"income debits cash", domain.TransactionIncome, true},
		{"donation debits cash", domain.TransactionDonation, true},
		{"expense credits cash", domain.TransactionExpense, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.CashIsDebited())
		})
	}
}

func TestTransactionStatus_IsTerminal(t *testing.T) {
	assert.False(t, domain.StatusDraft.IsTerminal())
	assert.False(t, domain.StatusPosted.IsTerminal())
	assert.True(t, domain.StatusCancelled.IsTerminal())
	assert.True(t, domain.StatusReversed.IsTerminal())
}

func TestBudget_Covers(t *testing.T) {
	budget := domain.Budget{
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"start day inclusive", time.Date(2026, 1, 1, 8, 30, 0, 0, time.UTC), true},
		{"end day inclusive, late in the day", time.Date(2026, 12, 31, 23, 59, 0, 0, time.UTC), true},
		{"day before start", time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC), false},
		{"day after end", time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, budget.Covers(tt.date))
		})
	}
}

func TestActor_IsElevated(t *testing.T) {
	assert.True(t, domain.Actor{UserID: "u1", Role: domain.RoleAdmin}.IsElevated())
	assert.True(t, domain.Actor{UserID: "u1", Role: domain.RoleTreasurer}.IsElevated())
	assert.False(t, domain.Actor{UserID: "u1", Role: domain.RoleStaff}.IsElevated())
}
