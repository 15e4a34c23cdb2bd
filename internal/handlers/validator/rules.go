package validator

import "github.com/go-playground/validator/v10"

func registerFn(tag string, fn func(fl validator.FieldLevel) bool) func(v *validator.Validate) {
	return func(v *validator.Validate) {
		_ = v.RegisterValidation(tag, fn)
	}
}

func NewCalculationValidationRules() []ValidationRule {
	return []ValidationRule{
		{
			Rule: registerFn("rack_code", rackCodeValidator),
		},
		{
			Rule: registerFn("slack", slackValidator),
		},
		{
			Rule: registerFn("server_hostname", hostnameValidator),
		},
	}
}
