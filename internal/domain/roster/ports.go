package roster

import "context"

// RosterWriter persists one roster row. account is nil when the row carries
// no email.
type RosterWriter interface {
	SaveRow(ctx context.Context, student StudentRecord, account *UserAccount) error
}

type StudentReader interface {
	GetByRollNo(ctx context.Context, rollNo string) (*StudentView, error)
}
