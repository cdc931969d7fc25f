package cricket

import (
	"errors"
	"fmt"
)

// The error taxonomy separates three things the source system conflated:
// an empty result (not an error at all), a bad filter (rejected before the
// store is touched) and a store failure (surfaced, never masked as empty).

// ValidationError reports a filter that was rejected before querying.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid filter: %s: %s", e.Field, e.Reason)
}

// StoreError wraps a failure of the backing store. It is distinct from an
// empty result: callers must never treat a StoreError as "no data".
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsStore reports whether err is (or wraps) a StoreError.
func IsStore(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
