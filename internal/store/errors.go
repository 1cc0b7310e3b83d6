package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a referenced record id does not exist.
var ErrNotFound = errors.New("store: record not found")

// DecodeError reports a persisted document that failed to decode into its
// typed record. It surfaces at the store boundary instead of deep inside
// request handling.
type DecodeError struct {
	Table string
	ID    string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("store: decoding %s %q: %v", e.Table, e.ID, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
