package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the journal_entries row.
type JournalEntry struct {
	JournalEntryID    string          `db:"journal_entry_id"`
	EntryNo           string          `db:"entry_no"`
	TransactionID     *string         `db:"transaction_id"`
	Description       string          `db:"description"`
	Date              time.Time       `db:"entry_date"`
	Reference         *string         `db:"reference"`
	TotalDebit        decimal.Decimal `db:"total_debit"`
	TotalCredit       decimal.Decimal `db:"total_credit"`
	IsBalanced        bool            `db:"is_balanced"`
	Status            string          `db:"status"`
	ReversalOfID      *string         `db:"reversal_of_id"`
	ReversedByEntryID *string         `db:"reversed_by_entry_id"`
	ReversedBy        *string         `db:"reversed_by"`
	ReversedAt        *time.Time      `db:"reversed_at"`
	AuditFields
}

// JournalLine is the journal_lines row.
type JournalLine struct {
	JournalLineID  string          `db:"journal_line_id"`
	JournalEntryID string          `db:"journal_entry_id"`
	AccountID      string          `db:"account_id"`
	Debit          decimal.Decimal `db:"debit"`
	Credit         decimal.Decimal `db:"credit"`
	Description    *string         `db:"description"`
	LineOrder      int             `db:"line_order"`
}
