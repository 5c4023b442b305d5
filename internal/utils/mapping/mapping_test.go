package mapping_test

import (
	"testing"
	"time"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/SscSPs/school_ledger/internal/utils/mapping"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToModelTransaction_StoresEmptyArraysAndNullNotes(t *testing.T) {
	m := mapping.ToModelTransaction(domain.Transaction{
		TransactionID: "t-1",
		Amount:        decimal.NewFromInt(10),
		Date:          time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	})

	assert.NotNil(t, m.Tags)
	assert.Empty(t, m.Tags)
	assert.NotNil(t, m.Attachments)
	assert.Nil(t, m.Notes)
}

func TestToDomainAccount_EmptyDescriptionForNull(t *testing.T) {
	desc := "Main bank account"
	acc := mapping.ToDomainAccount(mapping.ToModelAccount(domain.Account{AccountID: "a-1", Code: "1001", Description: desc}))
	assert.Equal(t, desc, acc.Description)

	acc = mapping.ToDomainAccount(mapping.ToModelAccount(domain.Account{AccountID: "a-2", Code: "1002"}))
	assert.Equal(t, "", acc.Description)
}
