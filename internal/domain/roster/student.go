package roster

import "strings"

const RoleStudent = "student"

type RosterRow struct {
	RollNo           string
	FullName         string
	Department       string
	Batch            int
	RoomNumber       *string
	HostelBlock      *string
	FeesPaid         bool
	EmergencyContact *string
	Email            *string
	InStatus         bool
	UnitNo           *int
	FloorNo          *int
	Degree           *string
	Gender           *string
}

// StudentRecord is the stored form of a roster row, unique by RollNo.
type StudentRecord struct {
	RollNo           string
	FullName         string
	Department       string
	Batch            int
	RoomNumber       *string
	HostelBlock      *string
	FeesPaid         bool
	EmergencyContact *string
	Email            *string
	InStatus         bool
	UnitNo           *int
	FloorNo          *int
	Degree           *string
	Gender           *string
}

// UserAccount is a login identity, unique by Email.
type UserAccount struct {
	Email string
	Role  string
}

func (r RosterRow) Student() StudentRecord {
	return StudentRecord{
		RollNo:           r.RollNo,
		FullName:         r.FullName,
		Department:       r.Department,
		Batch:            r.Batch,
		RoomNumber:       r.RoomNumber,
		HostelBlock:      r.HostelBlock,
		FeesPaid:         r.FeesPaid,
		EmergencyContact: r.EmergencyContact,
		Email:            r.Email,
		InStatus:         r.InStatus,
		UnitNo:           r.UnitNo,
		FloorNo:          r.FloorNo,
		Degree:           r.Degree,
		Gender:           r.Gender,
	}
}

// Account returns the student account for the row, or nil when the row has
// no email. Re-ingesting an existing email resets its role to student.
func (r RosterRow) Account() *UserAccount {
	if r.Email == nil || strings.TrimSpace(*r.Email) == "" {
		return nil
	}
	return &UserAccount{Email: *r.Email, Role: RoleStudent}
}

// StudentView is a stored student together with its account role, if any.
type StudentView struct {
	Student     StudentRecord
	AccountRole *string
}
