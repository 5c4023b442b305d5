package dto

import "github.com/SscSPs/school_ledger/internal/apperrors"

// ErrorResponse is the body returned for every failed request.
type ErrorResponse struct {
	Error  string                 `json:"error"`
	Kind   string                 `json:"kind"`
	Fields []apperrors.FieldError `json:"fields,omitempty"`
}
