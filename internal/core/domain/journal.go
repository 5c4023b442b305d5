package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	JournalPosted   JournalStatus = "POSTED"
	JournalReversed JournalStatus = "REVERSED"
)

// Side is the side of a journal line.
type Side string

const (
	Debit  Side = "DEBIT"
	Credit Side = "CREDIT"
)

// JournalEntry is the authoritative accounting record of a financial event.
// TotalDebit always equals TotalCredit for a valid entry.
type JournalEntry struct {
	JournalEntryID    string          `json:"journalEntryID"`
	EntryNo           string          `json:"entryNo"` // JE-<YYYY>-<seq> or JER-<YYYY>-<seq>
	TransactionID     *string         `json:"transactionID,omitempty"`
	Description       string          `json:"description"`
	Date              time.Time       `json:"date"`
	Reference         string          `json:"reference"`
	TotalDebit        decimal.Decimal `json:"totalDebit"`
	TotalCredit       decimal.Decimal `json:"totalCredit"`
	IsBalanced        bool            `json:"isBalanced"`
	Status            JournalStatus   `json:"status"`
	ReversalOfID      *string         `json:"reversalOfID,omitempty"`      // Set on a mirror entry
	ReversedByEntryID *string         `json:"reversedByEntryID,omitempty"` // Set on the original once reversed
	ReversedBy        *string         `json:"reversedBy,omitempty"`
	ReversedAt        *time.Time      `json:"reversedAt,omitempty"`
	Lines             []JournalLine   `json:"lines"`
	AuditFields
}

// IsReversal reports whether the entry mirrors another entry.
func (e JournalEntry) IsReversal() bool {
	return e.ReversalOfID != nil && *e.ReversalOfID != ""
}

// JournalLine is one leg of a journal entry. Exactly one of Debit and Credit is nonzero.
type JournalLine struct {
	JournalLineID  string          `json:"journalLineID"`
	JournalEntryID string          `json:"journalEntryID"`
	AccountID      string          `json:"accountID"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	Description    string          `json:"description"`
	LineOrder      int             `json:"lineOrder"`
}

// PostingLine is one requested leg of a posting before it becomes a JournalLine.
type PostingLine struct {
	AccountID   string
	Side        Side
	Amount      decimal.Decimal
	Description string
}
