package roster_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app "github.com/hostelhub/roster-import/internal/application/roster"
	domain "github.com/hostelhub/roster-import/internal/domain/roster"
)

type fakeStudentReader struct {
	view      *domain.StudentView
	returnErr error
	gotRollNo string
}

func (f *fakeStudentReader) GetByRollNo(ctx context.Context, rollNo string) (*domain.StudentView, error) {
	f.gotRollNo = rollNo
	if f.returnErr != nil {
		return nil, f.returnErr
	}
	return f.view, nil
}

func TestGetStudentSuccess(t *testing.T) {
	t.Parallel()

	role := domain.RoleStudent
	email := "jane@example.com"
	repo := &fakeStudentReader{view: &domain.StudentView{
		Student:     domain.StudentRecord{RollNo: "R001", FullName: "Jane Doe", Department: "CSE", Batch: 2023, Email: &email},
		AccountRole: &role,
	}}

	out, err := app.NewGetStudent(repo).Execute(context.Background(), app.GetStudentInput{RollNo: " R001 "})
	require.NoError(t, err)

	assert.Equal(t, "R001", repo.gotRollNo)
	assert.Equal(t, "Jane Doe", out.FullName)
	assert.Equal(t, 2023, out.Batch)
	require.NotNil(t, out.AccountRole)
	assert.Equal(t, "student", *out.AccountRole)
}

func TestGetStudentInvalidRollNo(t *testing.T) {
	t.Parallel()

	for _, rollNo := range []string{"", "   ", "R001,R002"} {
		_, err := app.NewGetStudent(&fakeStudentReader{}).Execute(context.Background(), app.GetStudentInput{RollNo: rollNo})
		assert.ErrorIs(t, err, app.ErrInvalidRollNo)
	}
}

func TestGetStudentNotFound(t *testing.T) {
	t.Parallel()

	_, err := app.NewGetStudent(&fakeStudentReader{returnErr: domain.ErrStudentNotFound}).
		Execute(context.Background(), app.GetStudentInput{RollNo: "R404"})
	assert.ErrorIs(t, err, app.ErrStudentNotFound)
}

func TestGetStudentRepositoryError(t *testing.T) {
	t.Parallel()

	_, err := app.NewGetStudent(&fakeStudentReader{returnErr: errors.New("db down")}).
		Execute(context.Background(), app.GetStudentInput{RollNo: "R001"})
	assert.ErrorIs(t, err, app.ErrGetStudent)
}
