package memory

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/school_ledger/internal/apperrors"
	"github.com/SscSPs/school_ledger/internal/core/domain"
)

// NextSequence scans the numbers already issued under prefix. The caller's unit of work
// holds the store lock, which serialises allocation.
func (r *repo) NextSequence(_ context.Context, kind domain.DocumentKind, prefix string) (int, error) {
	defer r.read()()
	if err := r.fail("NextSequence"); err != nil {
		return 0, err
	}

	var numbers []string
	switch kind {
	case domain.DocTransaction:
		for _, txn := range r.st().transactions {
			numbers = append(numbers, txn.TransactionNo)
		}
	case domain.DocJournalEntry, domain.DocJournalReverse:
		for _, entry := range r.st().journals {
			numbers = append(numbers, entry.EntryNo)
		}
	default:
		return 0, fmt.Errorf("%w: unknown document kind %q", apperrors.ErrValidation, kind)
	}

	highest := 0
	for _, no := range numbers {
		suffix, ok := strings.CutPrefix(no, prefix)
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(suffix); err == nil && n > highest {
			highest = n
		}
	}
	return highest + 1, nil
}
