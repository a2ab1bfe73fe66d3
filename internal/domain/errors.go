package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing location, malformed photo URL).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrMalformedRecord is matched by every *MalformedRecordError.
var ErrMalformedRecord = errors.New("malformed record")

// ErrUnsortedInput is matched by every *UnsortedInputError.
var ErrUnsortedInput = errors.New("unsorted input")

// MalformedRecordError describes a record that cannot take part in a
// timeline because a required field is empty. Index is the record's
// position in the input.
type MalformedRecordError struct {
	Index int
	Field string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("%s: record %d: %s is empty", ErrMalformedRecord, e.Index, e.Field)
}

func (e *MalformedRecordError) Unwrap() error { return ErrMalformedRecord }

// UnsortedInputError reports the first record whose date is earlier than
// the record before it.
type UnsortedInputError struct {
	Index    int
	Previous time.Time
	Current  time.Time
}

func (e *UnsortedInputError) Error() string {
	return fmt.Sprintf("%s: record %d dated %s precedes %s",
		ErrUnsortedInput, e.Index,
		e.Current.Format(time.DateOnly), e.Previous.Format(time.DateOnly))
}

func (e *UnsortedInputError) Unwrap() error { return ErrUnsortedInput }
