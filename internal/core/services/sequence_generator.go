package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/school_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/school_ledger/internal/core/ports/repositories"
)

// SequenceGenerator allocates year-scoped document numbers such as TRX-2026-0001.
type SequenceGenerator struct {
	BaseService
}

// NewSequenceGenerator creates a generator using the configured clock for the year.
func NewSequenceGenerator(opts ...Option) *SequenceGenerator {
	return &SequenceGenerator{BaseService: newBaseService(opts)}
}

// Next allocates the next number of kind for the current year. It must run inside the
// unit of work that inserts the numbered document, so a rollback releases the number.
func (g *SequenceGenerator) Next(ctx context.Context, sequences portsrepo.SequenceRepository, kind domain.DocumentKind) (string, error) {
	year := g.Now().Year()
	seq, err := sequences.NextSequence(ctx, kind, kind.Prefix(year))
	if err != nil {
		g.LogError(ctx, err, "Failed to allocate document number", slog.String("kind", string(kind)))
		return "", fmt.Errorf("failed to allocate %s number: %w", kind, err)
	}
	return kind.FormatNumber(year, seq), nil
}
