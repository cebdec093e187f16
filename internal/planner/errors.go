package planner

import (
	"errors"
	"fmt"
)

// Validation failures. They are returned wrapped in a *ValidationError.
var (
	ErrNoDays              = errors.New("add a day to the plan first")
	ErrDayNotFound         = errors.New("day not found")
	ErrPlaceNotFound       = errors.New("place not found")
	ErrTimeRequired        = errors.New("time is required")
	ErrInvalidTime         = errors.New("time must be HH:MM")
	ErrNameRequired        = errors.New("place name is required")
	ErrLocationRequired    = errors.New("coordinates are required")
	ErrNoPending           = errors.New("select a place on the map first")
	ErrOriginRequired      = errors.New("origin is required")
	ErrDestinationRequired = errors.New("destination is required")
	ErrCandidateNotFound   = errors.New("route candidate not found")
)

// ValidationError reports a rejected operation. Nothing is mutated when one is returned.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Err.Error())
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}

// IsValidation reports whether err is a rejected planner operation.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err refers to a missing day, place or candidate.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrDayNotFound) ||
		errors.Is(err, ErrPlaceNotFound) ||
		errors.Is(err, ErrCandidateNotFound)
}
