package dto

import (
	"time"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineResponse defines the data returned for one leg of a journal entry.
type JournalLineResponse struct {
	JournalLineID string          `json:"journalLineID"`
	AccountID     string          `json:"accountID"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	Description   string          `json:"description"`
	LineOrder     int             `json:"lineOrder"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	JournalEntryID    string                `json:"journalEntryID"`
	EntryNo           string                `json:"entryNo"`
	TransactionID     *string               `json:"transactionID,omitempty"`
	Description       string                `json:"description"`
	Date              time.Time             `json:"date"`
	Reference         string                `json:"reference"`
	TotalDebit        decimal.Decimal       `json:"totalDebit"`
	TotalCredit       decimal.Decimal       `json:"totalCredit"`
	IsBalanced        bool                  `json:"isBalanced"`
	Status            domain.JournalStatus  `json:"status"`
	ReversalOfID      *string               `json:"reversalOfID,omitempty"`
	ReversedByEntryID *string               `json:"reversedByEntryID,omitempty"`
	ReversedBy        *string               `json:"reversedBy,omitempty"`
	ReversedAt        *time.Time            `json:"reversedAt,omitempty"`
	Lines             []JournalLineResponse `json:"lines"`
	CreatedAt         time.Time             `json:"createdAt"`
	CreatedBy         string                `json:"createdBy"`
}

// ListJournalEntriesParams defines query parameters for listing journal entries.
type ListJournalEntriesParams struct {
	Status           *domain.JournalStatus `form:"status" binding:"omitempty,oneof=POSTED REVERSED"`
	IncludeReversals bool                  `form:"includeReversals,default=true"`
	Limit            int                   `form:"limit,default=20" binding:"min=0,max=100"`
	NextToken        *string               `form:"nextToken"`
}

// ListJournalEntriesResponse wraps a page of journal entries.
type ListJournalEntriesResponse struct {
	JournalEntries []JournalEntryResponse `json:"journalEntries"`
	NextToken      *string                `json:"nextToken,omitempty"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to JournalEntryResponse DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	lines := make([]JournalLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = JournalLineResponse{
			JournalLineID: l.JournalLineID,
			AccountID:     l.AccountID,
			Debit:         l.Debit,
			Credit:        l.Credit,
			Description:   l.Description,
			LineOrder:     l.LineOrder,
		}
	}
	return JournalEntryResponse{
		JournalEntryID:    e.JournalEntryID,
		EntryNo:           e.EntryNo,
		TransactionID:     e.TransactionID,
		Description:       e.Description,
		Date:              e.Date,
		Reference:         e.Reference,
		TotalDebit:        e.TotalDebit,
		TotalCredit:       e.TotalCredit,
		IsBalanced:        e.IsBalanced,
		Status:            e.Status,
		ReversalOfID:      e.ReversalOfID,
		ReversedByEntryID: e.ReversedByEntryID,
		ReversedBy:        e.ReversedBy,
		ReversedAt:        e.ReversedAt,
		Lines:             lines,
		CreatedAt:         e.CreatedAt,
		CreatedBy:         e.CreatedBy,
	}
}

// ToJournalEntryResponses converts a slice of entries.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	responses := make([]JournalEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = ToJournalEntryResponse(&e)
	}
	return responses
}
