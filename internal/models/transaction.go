package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the transactions row. Tags and attachments are stored as text[].
type Transaction struct {
	TransactionID  string          `db:"transaction_id"`
	TransactionNo  string          `db:"transaction_no"`
	Type           string          `db:"type"`
	CategoryID     string          `db:"category_id"`
	Amount         decimal.Decimal `db:"amount"`
	Description    string          `db:"description"`
	Date           time.Time       `db:"transaction_date"`
	DueDate        *time.Time      `db:"due_date"`
	Status         string          `db:"status"`
	ApprovedBy     *string         `db:"approved_by"`
	ApprovedAt     *time.Time      `db:"approved_at"`
	Tags           []string        `db:"tags"`
	Attachments    []string        `db:"attachments"`
	Notes          *string         `db:"notes"`
	JournalEntryID *string         `db:"journal_entry_id"`
	AuditFields
}
