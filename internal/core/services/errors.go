package services

import (
	"errors"
	"fmt"

	"github.com/SscSPs/school_ledger/internal/apperrors"
)

var (
	ErrCategoryNotFound     = fmt.Errorf("%w: financial category not found", apperrors.ErrNotFound)
	ErrCategoryInactive     = fmt.Errorf("%w: financial category is inactive", apperrors.ErrConflict)
	ErrCategoryTypeMismatch = fmt.Errorf("%w: category type does not match transaction type", apperrors.ErrConflict)
	ErrAccountNotFound      = fmt.Errorf("%w: account not found", apperrors.ErrNotFound)
	ErrTransactionNotFound  = fmt.Errorf("%w: transaction not found", apperrors.ErrNotFound)
	ErrJournalEntryNotFound = fmt.Errorf("%w: journal entry not found", apperrors.ErrNotFound)
	ErrBudgetNotFound       = fmt.Errorf("%w: budget not found", apperrors.ErrNotFound)

	ErrAlreadyReversed         = fmt.Errorf("%w: journal entry is already reversed or is itself a reversal", apperrors.ErrConflict)
	ErrStatusTransitionInvalid = fmt.Errorf("%w: status transition not allowed", apperrors.ErrConflict)
	ErrPostingFieldsLocked     = fmt.Errorf("%w: amount, category and type cannot change once a journal entry exists", apperrors.ErrConflict)

	ErrNotOwner             = fmt.Errorf("%w: only the creator or an administrator may modify this transaction", apperrors.ErrForbidden)
	ErrElevatedRoleRequired = fmt.Errorf("%w: an administrator or treasurer role is required", apperrors.ErrForbidden)
)

// notFoundAs replaces a repository not-found error with a named one, keeping other errors intact.
func notFoundAs(err error, named error, id string) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("%w: %s", named, id)
	}
	return err
}
