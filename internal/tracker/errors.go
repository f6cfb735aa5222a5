package tracker

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrNotFound is returned when a job id is not in the catalog, or when
// today's digest has not been generated yet.
var ErrNotFound = errors.New("not found")

// ErrNoPreferences is returned by digest generation before any profile has
// been saved.
var ErrNoPreferences = errors.New("set your preferences before generating a digest")

// ValidationError wraps a user-facing validation message.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

func invalid(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// fromValidator turns the first validator failure into a ValidationError.
func fromValidator(err error) error {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return invalid("validation error: %s - %s", ve[0].Namespace(), ve[0].Tag())
	}
	return invalid("validation error: %v", err)
}
