package dto

import (
	"time"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a monetary transaction.
// Transactions created through it are posted immediately.
type CreateTransactionRequest struct {
	Type        domain.TransactionType `json:"type" binding:"required,oneof=INCOME EXPENSE DONATION"`
	CategoryID  string                 `json:"categoryID" binding:"required"`
	Amount      decimal.Decimal        `json:"amount"`
	Description string                 `json:"description" binding:"required,max=500"`
	Date        *time.Time             `json:"date"`
	DueDate     *time.Time             `json:"dueDate"`
	Tags        []string               `json:"tags" binding:"omitempty,max=20,dive,max=50"`
	Attachments []string               `json:"attachments" binding:"omitempty,max=20,dive,max=500"`
	Notes       string                 `json:"notes" binding:"max=2000"`
}

// UpdateTransactionRequest defines the fields allowed for updating a transaction.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateTransactionRequest struct {
	Type        *domain.TransactionType   `json:"type" binding:"omitempty,oneof=INCOME EXPENSE DONATION"`
	CategoryID  *string                   `json:"categoryID" binding:"omitempty,min=1"`
	Amount      *decimal.Decimal          `json:"amount"`
	Description *string                   `json:"description" binding:"omitempty,min=1,max=500"`
	Date        *time.Time                `json:"date"`
	DueDate     *time.Time                `json:"dueDate"`
	Status      *domain.TransactionStatus `json:"status" binding:"omitempty,oneof=DRAFT POSTED CANCELLED REVERSED"`
	Tags        []string                  `json:"tags" binding:"omitempty,max=20,dive,max=50"`
	Attachments []string                  `json:"attachments" binding:"omitempty,max=20,dive,max=500"`
	Notes       *string                   `json:"notes" binding:"omitempty,max=2000"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID  string                   `json:"transactionID"`
	TransactionNo  string                   `json:"transactionNo"`
	Type           domain.TransactionType   `json:"type"`
	CategoryID     string                   `json:"categoryID"`
	Amount         decimal.Decimal          `json:"amount"`
	Description    string                   `json:"description"`
	Date           time.Time                `json:"date"`
	DueDate        *time.Time               `json:"dueDate,omitempty"`
	Status         domain.TransactionStatus `json:"status"`
	ApprovedBy     *string                  `json:"approvedBy,omitempty"`
	ApprovedAt     *time.Time               `json:"approvedAt,omitempty"`
	Tags           []string                 `json:"tags"`
	Attachments    []string                 `json:"attachments"`
	Notes          string                   `json:"notes"`
	JournalEntryID *string                  `json:"journalEntryID,omitempty"`
	CreatedAt      time.Time                `json:"createdAt"`
	CreatedBy      string                   `json:"createdBy"`
	LastUpdatedAt  time.Time                `json:"lastUpdatedAt"`
	LastUpdatedBy  string                   `json:"lastUpdatedBy"`
}

// CreateTransactionResponse returns the new transaction together with the entry it posted.
type CreateTransactionResponse struct {
	Transaction  TransactionResponse   `json:"transaction"`
	JournalEntry *JournalEntryResponse `json:"journalEntry,omitempty"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Type       *domain.TransactionType   `form:"type" binding:"omitempty,oneof=INCOME EXPENSE DONATION"`
	Status     *domain.TransactionStatus `form:"status" binding:"omitempty,oneof=DRAFT POSTED CANCELLED REVERSED"`
	CategoryID *string                   `form:"categoryID"`
	From       *time.Time                `form:"from" time_format:"2006-01-02" time_utc:"1"`
	To         *time.Time                `form:"to" time_format:"2006-01-02" time_utc:"1"`
	Limit      int                       `form:"limit,default=20" binding:"min=0,max=100"`
	NextToken  *string                   `form:"nextToken"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	tags := txn.Tags
	if tags == nil {
		tags = []string{}
	}
	attachments := txn.Attachments
	if attachments == nil {
		attachments = []string{}
	}
	return TransactionResponse{
		TransactionID:  txn.TransactionID,
		TransactionNo:  txn.TransactionNo,
		Type:           txn.Type,
		CategoryID:     txn.CategoryID,
		Amount:         txn.Amount,
		Description:    txn.Description,
		Date:           txn.Date,
		DueDate:        txn.DueDate,
		Status:         txn.Status,
		ApprovedBy:     txn.ApprovedBy,
		ApprovedAt:     txn.ApprovedAt,
		Tags:           tags,
		Attachments:    attachments,
		Notes:          txn.Notes,
		JournalEntryID: txn.JournalEntryID,
		CreatedAt:      txn.CreatedAt,
		CreatedBy:      txn.CreatedBy,
		LastUpdatedAt:  txn.LastUpdatedAt,
		LastUpdatedBy:  txn.LastUpdatedBy,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(&txn)
	}
	return responses
}
