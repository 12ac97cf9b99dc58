package roster

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domain "github.com/hostelhub/roster-import/internal/domain/roster"
)

type GetStudentInput struct {
	RollNo string
}

type GetStudentOutput struct {
	RollNo           string  `json:"roll_no"`
	FullName         string  `json:"full_name"`
	Department       string  `json:"department"`
	Batch            int     `json:"batch"`
	RoomNumber       *string `json:"room_number"`
	HostelBlock      *string `json:"hostel_block"`
	FeesPaid         bool    `json:"fees_paid"`
	EmergencyContact *string `json:"emergency_contact"`
	Email            *string `json:"email"`
	InStatus         bool    `json:"in_status"`
	UnitNo           *int    `json:"unit_no"`
	FloorNo          *int    `json:"floor_no"`
	Degree           *string `json:"degree"`
	Gender           *string `json:"gender"`
	AccountRole      *string `json:"account_role"`
}

type GetStudent interface {
	Execute(ctx context.Context, in GetStudentInput) (GetStudentOutput, error)
}

type getStudent struct {
	repo domain.StudentReader
}

func NewGetStudent(repo domain.StudentReader) GetStudent {
	return &getStudent{repo: repo}
}

func (uc *getStudent) Execute(ctx context.Context, in GetStudentInput) (GetStudentOutput, error) {
	rollNo := strings.TrimSpace(in.RollNo)
	if rollNo == "" || strings.Contains(rollNo, delimiter) {
		return GetStudentOutput{}, ErrInvalidRollNo
	}

	view, err := uc.repo.GetByRollNo(ctx, rollNo)
	if err != nil {
		if errors.Is(err, domain.ErrStudentNotFound) {
			return GetStudentOutput{}, ErrStudentNotFound
		}
		return GetStudentOutput{}, fmt.Errorf("%w: %v", ErrGetStudent, err)
	}

	s := view.Student
	return GetStudentOutput{
		RollNo:           s.RollNo,
		FullName:         s.FullName,
		Department:       s.Department,
		Batch:            s.Batch,
		RoomNumber:       s.RoomNumber,
		HostelBlock:      s.HostelBlock,
		FeesPaid:         s.FeesPaid,
		EmergencyContact: s.EmergencyContact,
		Email:            s.Email,
		InStatus:         s.InStatus,
		UnitNo:           s.UnitNo,
		FloorNo:          s.FloorNo,
		Degree:           s.Degree,
		Gender:           s.Gender,
		AccountRole:      view.AccountRole,
	}, nil
}
