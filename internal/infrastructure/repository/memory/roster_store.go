package memory

import (
	"context"
	"sync"

	domain "github.com/hostelhub/roster-import/internal/domain/roster"
)

// RosterStore keeps students and accounts in maps keyed by their natural
// keys, with the same upsert semantics as the Postgres repository.
type RosterStore struct {
	mu       sync.RWMutex
	students map[string]domain.StudentRecord
	accounts map[string]domain.UserAccount
}

func NewRosterStore() *RosterStore {
	return &RosterStore{
		students: make(map[string]domain.StudentRecord),
		accounts: make(map[string]domain.UserAccount),
	}
}

func (s *RosterStore) SaveRow(ctx context.Context, student domain.StudentRecord, account *domain.UserAccount) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.students[student.RollNo] = student
	if account != nil {
		s.accounts[account.Email] = *account
	}
	return nil
}

func (s *RosterStore) GetByRollNo(ctx context.Context, rollNo string) (*domain.StudentView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	student, ok := s.students[rollNo]
	if !ok {
		return nil, domain.ErrStudentNotFound
	}

	view := &domain.StudentView{Student: student}
	if student.Email != nil {
		if account, ok := s.accounts[*student.Email]; ok {
			role := account.Role
			view.AccountRole = &role
		}
	}
	return view, nil
}

// SetRole changes an account's role, as an operator would from the admin UI.
func (s *RosterStore) SetRole(email, role string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[email] = domain.UserAccount{Email: email, Role: role}
}

func (s *RosterStore) Students() map[string]domain.StudentRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]domain.StudentRecord, len(s.students))
	for k, v := range s.students {
		out[k] = v
	}
	return out
}

func (s *RosterStore) Accounts() map[string]domain.UserAccount {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]domain.UserAccount, len(s.accounts))
	for k, v := range s.accounts {
		out[k] = v
	}
	return out
}
