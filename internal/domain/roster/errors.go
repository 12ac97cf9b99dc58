package roster

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMalformedInput      = errors.New("roster needs a header line and at least one data line")
	ErrSchemaMismatch      = errors.New("roster header is missing required columns")
	ErrMissingField        = errors.New("missing required field")
	ErrInvalidType         = errors.New("invalid field type")
	ErrPersistence         = errors.New("failed to save row")
	ErrMissingAccountEmail = errors.New("no email provided")
	ErrStudentNotFound     = errors.New("student not found")
)

type SchemaMismatchError struct {
	Missing []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("%s: %s", ErrSchemaMismatch.Error(), strings.Join(e.Missing, ", "))
}

func (e *SchemaMismatchError) Unwrap() error {
	return ErrSchemaMismatch
}
