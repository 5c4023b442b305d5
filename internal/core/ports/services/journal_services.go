package services

import (
	"context"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	"github.com/SscSPs/school_ledger/internal/dto"
)

// JournalReaderSvc defines read operations for journal data
type JournalReaderSvc interface {
	// GetJournalEntryByID retrieves a specific entry with its lines.
	GetJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error)

	// GetJournalEntryByTransactionID retrieves the entry posted for a transaction.
	GetJournalEntryByTransactionID(ctx context.Context, transactionID string) (*domain.JournalEntry, error)

	// ListJournalEntries retrieves a paginated list of entries.
	ListJournalEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)
}

// JournalWriterSvc defines write operations for journal data
type JournalWriterSvc interface {
	// ReverseJournalEntry posts the mirror of an entry and marks the owning transaction REVERSED.
	ReverseJournalEntry(ctx context.Context, actor domain.Actor, journalEntryID string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
