package cable

import "fmt"

// ErrInvalidLocation reports which location and which field failed validation.
type ErrInvalidLocation struct {
	error
	Location string
	Field    string
	Value    int
}

func NewErrInvalidLocation(location, field string, value int) *ErrInvalidLocation {
	var rule string
	switch field {
	case "rack":
		rule = "must be a positive integer"
	default:
		rule = fmt.Sprintf("must be in range %d..%d", MinUnit, MaxUnit)
	}
	return &ErrInvalidLocation{
		error:    fmt.Errorf("server %s: %s %d %s", location, field, value, rule),
		Location: location,
		Field:    field,
		Value:    value,
	}
}

type ErrInvalidConfig struct {
	error
	Field string
}

func NewErrInvalidConfig(field string, value float64, reason string) *ErrInvalidConfig {
	return &ErrInvalidConfig{
		error: fmt.Errorf("config %s=%v %s", field, value, reason),
		Field: field,
	}
}
