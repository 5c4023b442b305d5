package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a monetary movement.
type TransactionType string

const (
	TransactionIncome   TransactionType = "INCOME"
	TransactionExpense  TransactionType = "EXPENSE"
	TransactionDonation TransactionType = "DONATION"
)

// IsValid reports whether t is a known transaction type.
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionIncome, TransactionExpense, TransactionDonation:
		return true
	}
	return false
}

// CashIsDebited reports whether the cash account sits on the debit side when a
// transaction of this type is posted. Money comes in for income and donations.
func (t TransactionType) CashIsDebited() bool {
	return t == TransactionIncome || t == TransactionDonation
}

// TransactionStatus is the lifecycle state of a transaction.
type TransactionStatus string

const (
	StatusDraft     TransactionStatus = "DRAFT"
	StatusPosted    TransactionStatus = "POSTED"
	StatusCancelled TransactionStatus = "CANCELLED"
	StatusReversed  TransactionStatus = "REVERSED"
)

// IsTerminal reports whether no further transition is allowed out of s.
func (s TransactionStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusReversed
}

// Transaction is the user-facing monetary event.
type Transaction struct {
	TransactionID  string            `json:"transactionID"`
	TransactionNo  string            `json:"transactionNo"` // TRX-<YYYY>-<seq>
	Type           TransactionType   `json:"type"`
	CategoryID     string            `json:"categoryID"`
	Amount         decimal.Decimal   `json:"amount"` // Strictly positive
	Description    string            `json:"description"`
	Date           time.Time         `json:"date"`
	DueDate        *time.Time        `json:"dueDate,omitempty"`
	Status         TransactionStatus `json:"status"`
	ApprovedBy     *string           `json:"approvedBy,omitempty"`
	ApprovedAt     *time.Time        `json:"approvedAt,omitempty"`
	Tags           []string          `json:"tags"`
	Attachments    []string          `json:"attachments"`
	Notes          string            `json:"notes"`
	JournalEntryID *string           `json:"journalEntryID,omitempty"` // Set once posted
	AuditFields
}

// HasJournalEntry reports whether the transaction has been posted to the journal.
func (t Transaction) HasJournalEntry() bool {
	return t.JournalEntryID != nil && *t.JournalEntryID != ""
}
