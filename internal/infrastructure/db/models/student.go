package models

import "time"

type Student struct {
	ID               int64   `gorm:"primaryKey"`
	RollNo           string  `gorm:"size:64;not null;uniqueIndex"`
	FullName         string  `gorm:"size:255;not null"`
	Department       string  `gorm:"size:120;not null"`
	Batch            int     `gorm:"not null"`
	RoomNumber       *string `gorm:"size:32"`
	HostelBlock      *string `gorm:"size:64"`
	FeesPaid         bool    `gorm:"not null;default:false"`
	EmergencyContact *string `gorm:"size:32"`
	Email            *string `gorm:"size:320;index"`
	InStatus         bool    `gorm:"not null;default:false"`
	UnitNo           *int
	FloorNo          *int
	Degree           *string `gorm:"size:64"`
	Gender           *string `gorm:"size:16"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (Student) TableName() string {
	return "students"
}
