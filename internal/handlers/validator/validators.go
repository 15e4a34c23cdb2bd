package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type ValidationRule struct {
	Rule func(v *validator.Validate)
}

// Validator wraps go-playground's validator and turns its errors into
// *ErrValidation named after JSON fields.
type Validator struct {
	validator *validator.Validate
	rules     []ValidationRule
}

func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validator: v}
}

func (v *Validator) Register(rules ...ValidationRule) {
	for _, validationRule := range rules {
		validationRule.Rule(v.validator)
	}
	v.rules = append(v.rules, rules...)
}

func (v *Validator) Struct(s any) error {
	err := v.validator.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	return fieldError(verrs[0])
}

func fieldError(fe validator.FieldError) *ErrValidation {
	// drop the root struct name: "CalculationRequest.server_a.unit" -> "server_a.unit"
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}

	switch fe.Tag() {
	case "required":
		return NewErrValidation(field, "is required")
	case "gte":
		return NewErrValidation(field, "must be >= %s, got %v", fe.Param(), fe.Value())
	case "lte":
		return NewErrValidation(field, "must be <= %s, got %v", fe.Param(), fe.Value())
	case "min":
		return NewErrValidation(field, "needs at least %s entries", fe.Param())
	case "max":
		return NewErrValidation(field, "accepts at most %s entries", fe.Param())
	case "rack_code":
		return NewErrValidation(field, "invalid rack code %q", fe.Value())
	case "slack":
		return NewErrValidation(field, "must be a non-negative number, got %v", fe.Value())
	case "server_hostname":
		return NewErrValidation(field, "invalid hostname")
	default:
		return NewErrValidation(field, "failed on the '%s' rule", fe.Tag())
	}
}
