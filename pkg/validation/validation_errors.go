package validation

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// FieldError is one enumerated validation failure, keyed by the JSON field
// name the client submitted.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Describe turns a binding/validation error into a list of field errors.
// Non-validator errors (malformed JSON, wrong types) yield nil and the
// caller falls back to the raw error message.
func Describe(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Message: message(fe),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}
