package cable

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is safe for concurrent use and caches struct metadata.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateLocation checks a location and names it in the returned error.
func validateLocation(name string, loc ServerLocation) error {
	err := validate.Struct(loc)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Field() {
		case "rack":
			return NewErrInvalidLocation(name, "rack", loc.Rack)
		case "unit":
			return NewErrInvalidLocation(name, "unit", loc.Unit)
		}
	}
	return err
}
