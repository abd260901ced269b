package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrReferenceNotFound marks a product whose category or supplier id does
	// not resolve. It always arrives wrapped in a *ValidationError.
	ErrReferenceNotFound = errors.New("referenced entity not found")
	// ErrHasDependents is returned when deleting a category or supplier that
	// products still reference.
	ErrHasDependents = errors.New("referenced by dependent rows")
)

// ValidationError lists the offending input fields, keyed by their JSON name.
type ValidationError struct {
	Fields map[string]string
	Err    error
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	msg := "validation failed: " + strings.Join(parts, "; ")
	if e.Err != nil {
		msg = e.Err.Error() + ": " + msg
	}
	return msg
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
