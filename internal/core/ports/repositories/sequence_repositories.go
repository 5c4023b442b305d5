package repositories

import (
	"context"

	"github.com/SscSPs/school_ledger/internal/core/domain"
)

// SequenceRepository allocates document sequence values.
type SequenceRepository interface {
	// NextSequence returns one more than the highest sequence already used by a document number
	// of the given kind that starts with prefix (e.g. "TRX-2026-"). Allocation is serialised
	// per prefix until the surrounding unit of work ends.
	NextSequence(ctx context.Context, kind domain.DocumentKind, prefix string) (int, error)
}
