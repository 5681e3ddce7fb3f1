package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Violation is one failed rule on one struct field.
type Violation struct {
	Field string
	Rule  string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s (%s)", v.Field, v.Rule)
}

// Check evaluates the `validate` tags on v and returns the violations in
// field order, or nil when the value is valid. Used for payloads that do
// not pass through gin binding, such as CSV import rows.
func Check(v any) []Violation {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []Violation{{Field: "value", Rule: err.Error()}}
	}

	violations := make([]Violation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, Violation{Field: fe.Field(), Rule: fe.Tag()})
	}
	return violations
}
