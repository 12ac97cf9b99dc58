package roster

import (
	"errors"

	domain "github.com/hostelhub/roster-import/internal/domain/roster"
)

var (
	ErrMalformedRoster      = domain.ErrMalformedInput
	ErrRosterSchemaMismatch = domain.ErrSchemaMismatch
	ErrInvalidRollNo        = errors.New("invalid roll number")
	ErrStudentNotFound      = errors.New("student not found")
	ErrGetStudent           = errors.New("failed to get student")
)

type SchemaMismatchError = domain.SchemaMismatchError
