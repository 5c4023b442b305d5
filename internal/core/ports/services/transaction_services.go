package services

import (
	"context"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/SscSPs/school_ledger/internal/dto"
)

// TransactionReaderSvc defines read operations for transactions
type TransactionReaderSvc interface {
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// TransactionWriterSvc defines write operations for transactions
type TransactionWriterSvc interface {
	// CreateTransaction records a transaction and posts its journal entry in the same unit of work.
	CreateTransaction(ctx context.Context, actor domain.Actor, req dto.CreateTransactionRequest) (*domain.Transaction, *domain.JournalEntry, error)

	// UpdateTransaction applies a partial update, including status transitions.
	UpdateTransaction(ctx context.Context, actor domain.Actor, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)

	// CancelTransaction cancels and reverses a posted transaction, or hard-deletes one that
	// never reached the journal. It returns nil when the transaction was deleted.
	CancelTransaction(ctx context.Context, actor domain.Actor, transactionID string) (*domain.Transaction, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
