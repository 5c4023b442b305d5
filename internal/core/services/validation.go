package services

import (
	"errors"
	"reflect"
	"strings"

	"github.com/SscSPs/school_ledger/internal/apperrors"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// validate shares the "binding" tags gin uses, so the same rules hold when services are
// called without going through HTTP binding.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	return v
}

// validateRequest runs struct validation and merges any extra field problems into a
// single validation error.
func validateRequest(req any, extra ...apperrors.FieldError) error {
	fields := make([]apperrors.FieldError, 0, len(extra))

	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return apperrors.NewAppError(apperrors.ErrValidation, "invalid request", err)
		}
		for _, fe := range verrs {
			fields = append(fields, apperrors.FieldError{Field: fe.Field(), Message: describeFieldError(fe)})
		}
	}

	fields = append(fields, extra...)
	if len(fields) > 0 {
		return apperrors.NewValidationError(fields...)
	}
	return nil
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "min":
		return "must be at least " + fe.Param()
	default:
		return "failed " + fe.Tag() + " validation"
	}
}

// checkAmount returns the problems with a monetary amount that must be positive.
func checkAmount(field string, amount decimal.Decimal) []apperrors.FieldError {
	if !amount.IsPositive() {
		return []apperrors.FieldError{{Field: field, Message: "must be greater than zero"}}
	}
	if !amount.Equal(amount.Round(2)) {
		return []apperrors.FieldError{{Field: field, Message: "must have at most two decimal places"}}
	}
	return nil
}
