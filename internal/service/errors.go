package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var ErrNotFound = errors.New("not found")

// ValidationError reports a rejected input before any store call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + " " + e.Message
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

var validate = validator.New()

// check runs struct tag validation and converts the first failure.
func check(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validate input: %w", err)
	}
	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return invalid(field, "is required")
	case "gt":
		return invalid(field, "must be > %s", fe.Param())
	case "gte":
		return invalid(field, "must be >= %s", fe.Param())
	case "lte", "max":
		return invalid(field, "must be <= %s", fe.Param())
	case "min":
		return invalid(field, "must be >= %s", fe.Param())
	case "oneof":
		return invalid(field, "must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "email":
		return invalid(field, "must be a valid email address")
	default:
		return invalid(field, "is invalid")
	}
}
