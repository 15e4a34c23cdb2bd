package validator

import (
	"math"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// rack codes end with a two-digit rack number, e.g. 02b05
var rackCodeRegex = regexp.MustCompile(`^[0-9A-Za-z][0-9A-Za-z-]*[0-9]{2}$`)

func rackCodeValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	val = strings.TrimSpace(val)
	return len(val) >= 4 && rackCodeRegex.MatchString(val)
}

// slackValidator accepts a finite non-negative length. Nil pointers are
// handled by omitempty.
func slackValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(float64)
	if !ok {
		return false
	}
	return val >= 0 && !math.IsNaN(val) && !math.IsInf(val, 0)
}

func hostnameValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return strings.TrimSpace(val) != "" && len(val) <= 253
}
