package domain

import (
	"errors"
	"fmt"
)

type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

// LookupError reports that the trip data source was unreachable or returned
// malformed data. Reads may be retried; see SearchService.
type LookupError struct {
	Op  string
	Err error
}

func (e LookupError) Error() string {
	if e.Op == "" {
		return "lookup failed"
	}
	return fmt.Sprintf("%s lookup failed", e.Op)
}

func (e LookupError) Unwrap() error { return e.Err }

// PersistenceError reports a write that could not be committed. Writes are
// never retried automatically; the caller surfaces the error instead.
type PersistenceError struct {
	Op  string
	Err error
}

func (e PersistenceError) Error() string {
	if e.Op == "" {
		return "persistence failed"
	}
	return fmt.Sprintf("%s could not be persisted", e.Op)
}

func (e PersistenceError) Unwrap() error { return e.Err }

// InvalidTransitionError reports a booking state-machine violation. It
// indicates a programming or race error and should be logged as such.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e InvalidTransitionError) Error() string {
	if e.From == "" && e.To == "" {
		return "invalid status transition"
	}
	return fmt.Sprintf("invalid status transition %s -> %s", e.From, e.To)
}

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsLookup(err error) bool {
	var target LookupError
	return errors.As(err, &target)
}

func IsPersistence(err error) bool {
	var target PersistenceError
	return errors.As(err, &target)
}

func IsInvalidTransition(err error) bool {
	var target InvalidTransitionError
	return errors.As(err, &target)
}
