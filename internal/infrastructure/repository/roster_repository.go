package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/hostelhub/roster-import/internal/domain/roster"
	"github.com/hostelhub/roster-import/internal/infrastructure/db"
)

var studentColumns = []string{
	"roll_no",
	"full_name",
	"department",
	"batch",
	"room_number",
	"hostel_block",
	"fees_paid",
	"emergency_contact",
	"email",
	"in_status",
	"unit_no",
	"floor_no",
	"degree",
	"gender",
}

// execer is satisfied by both *pgxpool.Pool and pgx.Tx.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type RosterRepositoryOptions struct {
	// RowTransaction runs the student and account upserts of one row in a
	// single transaction.
	RowTransaction bool
}

type RosterRepository struct {
	pool *pgxpool.Pool
	sb   squirrel.StatementBuilderType
	opts RosterRepositoryOptions
}

func NewRosterRepository(pool *pgxpool.Pool, opts RosterRepositoryOptions) *RosterRepository {
	return &RosterRepository{
		pool: pool,
		sb:   squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		opts: opts,
	}
}

// SaveRow upserts the student by roll number and, when account is non-nil,
// the account by email. An existing account's role is reset to the incoming
// role.
func (r *RosterRepository) SaveRow(ctx context.Context, student domain.StudentRecord, account *domain.UserAccount) error {
	if !r.opts.RowTransaction {
		return r.saveRow(ctx, r.pool, student, account)
	}
	return db.WithTransaction(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		return r.saveRow(ctx, tx, student, account)
	})
}

func (r *RosterRepository) saveRow(ctx context.Context, ex execer, student domain.StudentRecord, account *domain.UserAccount) error {
	if err := r.upsertStudent(ctx, ex, student); err != nil {
		return err
	}
	if account == nil {
		return nil
	}
	return r.upsertAccount(ctx, ex, *account)
}

func (r *RosterRepository) upsertStudent(ctx context.Context, ex execer, s domain.StudentRecord) error {
	updates := make([]string, 0, len(studentColumns))
	for _, col := range studentColumns[1:] {
		updates = append(updates, fmt.Sprintf("%s = EXCLUDED.%s", col, col))
	}
	updates = append(updates, "updated_at = NOW()")

	query, args, err := r.sb.Insert("students").
		Columns(append(studentColumns, "created_at", "updated_at")...).
		Values(
			s.RollNo,
			s.FullName,
			s.Department,
			s.Batch,
			s.RoomNumber,
			s.HostelBlock,
			s.FeesPaid,
			s.EmergencyContact,
			s.Email,
			s.InStatus,
			s.UnitNo,
			s.FloorNo,
			s.Degree,
			s.Gender,
			squirrel.Expr("NOW()"),
			squirrel.Expr("NOW()"),
		).
		Suffix("ON CONFLICT (roll_no) DO UPDATE SET " + strings.Join(updates, ", ")).
		ToSql()
	if err != nil {
		return fmt.Errorf("build student upsert: %w", err)
	}

	if _, err := ex.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert student %s: %w", s.RollNo, err)
	}
	return nil
}

func (r *RosterRepository) upsertAccount(ctx context.Context, ex execer, a domain.UserAccount) error {
	query, args, err := r.sb.Insert("user_accounts").
		Columns("email", "role", "created_at", "updated_at").
		Values(a.Email, a.Role, squirrel.Expr("NOW()"), squirrel.Expr("NOW()")).
		Suffix("ON CONFLICT (email) DO UPDATE SET role = EXCLUDED.role, updated_at = NOW()").
		ToSql()
	if err != nil {
		return fmt.Errorf("build account upsert: %w", err)
	}

	if _, err := ex.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert account %s: %w", a.Email, err)
	}
	return nil
}
