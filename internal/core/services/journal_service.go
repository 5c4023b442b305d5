package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/school_ledger/internal/apperrors"
	"github.com/SscSPs/school_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/school_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/school_ledger/internal/core/ports/services"
	"github.com/SscSPs/school_ledger/internal/dto"
	"github.com/SscSPs/school_ledger/internal/utils/pagination"
)

type journalService struct {
	BaseService
	journals portsrepo.JournalReader
	reversal *ReversalEngine
}

// NewJournalService exposes journal reads and manual reversal.
func NewJournalService(journals portsrepo.JournalReader, reversal *ReversalEngine, opts ...Option) portssvc.JournalSvcFacade {
	return &journalService{
		BaseService: newBaseService(opts),
		journals:    journals,
		reversal:    reversal,
	}
}

func (s *journalService) GetJournalEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	entry, err := s.journals.FindJournalEntryByID(ctx, journalEntryID)
	if err != nil {
		return nil, notFoundAs(err, ErrJournalEntryNotFound, journalEntryID)
	}
	return entry, nil
}

func (s *journalService) GetJournalEntryByTransactionID(ctx context.Context, transactionID string) (*domain.JournalEntry, error) {
	entry, err := s.journals.FindJournalEntryByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, notFoundAs(err, ErrJournalEntryNotFound, "transaction "+transactionID)
	}
	return entry, nil
}

func (s *journalService) ListJournalEntries(ctx context.Context, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	if err := validateRequest(params, checkNextToken(params.NextToken)...); err != nil {
		return nil, err
	}

	entries, nextToken, err := s.journals.ListJournalEntries(ctx, portsrepo.JournalEntryFilter{
		Status:           params.Status,
		IncludeReversals: params.IncludeReversals,
		Limit:            pagination.NormalizeLimit(params.Limit),
		NextToken:        params.NextToken,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list journal entries")
		return nil, fmt.Errorf("failed to list journal entries: %w", err)
	}

	s.LogDebug(ctx, "Listed journal entries", slog.Int("count", len(entries)))
	return &dto.ListJournalEntriesResponse{
		JournalEntries: dto.ToJournalEntryResponses(entries),
		NextToken:      nextToken,
	}, nil
}

func (s *journalService) ReverseJournalEntry(ctx context.Context, actor domain.Actor, journalEntryID string) (*domain.JournalEntry, error) {
	return s.reversal.ReverseEntry(ctx, actor, journalEntryID)
}

// checkNextToken reports a malformed pagination token as a field problem.
func checkNextToken(token *string) []apperrors.FieldError {
	if token == nil || *token == "" {
		return nil
	}
	if _, err := pagination.DecodeToken(*token); err != nil {
		return []apperrors.FieldError{{Field: "nextToken", Message: "is not a valid pagination token"}}
	}
	return nil
}
