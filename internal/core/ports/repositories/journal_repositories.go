package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/school_ledger/internal/core/domain"
)

// JournalEntryFilter narrows a journal entry listing.
type JournalEntryFilter struct {
	Status           *domain.JournalStatus
	IncludeReversals bool
	Limit            int
	NextToken        *string
}

// JournalReader defines read operations for journal data
type JournalReader interface {
	// FindJournalEntryByID retrieves an entry and its lines.
	FindJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error)

	// FindJournalEntryByTransactionID retrieves the original (non-reversal) entry posted for a transaction.
	FindJournalEntryByTransactionID(ctx context.Context, transactionID string) (*domain.JournalEntry, error)

	// ListJournalEntries retrieves a page of entries (with lines) ordered by date then creation time, newest first.
	ListJournalEntries(ctx context.Context, filter JournalEntryFilter) ([]domain.JournalEntry, *string, error)
}

// JournalWriter defines write operations for journal data
type JournalWriter interface {
	// SaveJournalEntry persists an entry together with its lines.
	SaveJournalEntry(ctx context.Context, entry domain.JournalEntry) error

	// LockJournalEntryForUpdate selects an entry (with lines) and locks it until the surrounding unit of work ends.
	LockJournalEntryForUpdate(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error)

	// MarkJournalEntryReversed flips an entry to REVERSED and links it to its mirror entry.
	MarkJournalEntryReversed(ctx context.Context, journalEntryID string, reversingEntryID string, reversedBy string, reversedAt time.Time) error
}

// JournalRepository combines all journal-related repository interfaces
type JournalRepository interface {
	JournalReader
	JournalWriter
}
