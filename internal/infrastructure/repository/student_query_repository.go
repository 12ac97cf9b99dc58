package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/hostelhub/roster-import/internal/domain/roster"
	"github.com/hostelhub/roster-import/internal/infrastructure/db/models"
)

type StudentQueryRepository struct {
	db *gorm.DB
}

func NewStudentQueryRepository(db *gorm.DB) *StudentQueryRepository {
	return &StudentQueryRepository{db: db}
}

func (r *StudentQueryRepository) GetByRollNo(ctx context.Context, rollNo string) (*domain.StudentView, error) {
	var row models.Student

	err := r.db.WithContext(ctx).First(&row, "roll_no = ?", rollNo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrStudentNotFound
		}
		return nil, fmt.Errorf("get student by roll_no: %w", err)
	}

	view := &domain.StudentView{Student: toStudentRecord(row)}
	if row.Email == nil {
		return view, nil
	}

	var account models.UserAccount
	err = r.db.WithContext(ctx).First(&account, "email = ?", *row.Email).Error
	switch {
	case err == nil:
		view.AccountRole = &account.Role
	case errors.Is(err, gorm.ErrRecordNotFound):
	default:
		return nil, fmt.Errorf("get account for student %s: %w", rollNo, err)
	}

	return view, nil
}

func toStudentRecord(row models.Student) domain.StudentRecord {
	return domain.StudentRecord{
		RollNo:           row.RollNo,
		FullName:         row.FullName,
		Department:       row.Department,
		Batch:            row.Batch,
		RoomNumber:       row.RoomNumber,
		HostelBlock:      row.HostelBlock,
		FeesPaid:         row.FeesPaid,
		EmergencyContact: row.EmergencyContact,
		Email:            row.Email,
		InStatus:         row.InStatus,
		UnitNo:           row.UnitNo,
		FloorNo:          row.FloorNo,
		Degree:           row.Degree,
		Gender:           row.Gender,
	}
}
