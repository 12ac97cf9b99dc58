package models

import "time"

type UserAccount struct {
	ID        int64  `gorm:"primaryKey"`
	Email     string `gorm:"size:320;not null;uniqueIndex"`
	Role      string `gorm:"size:32;not null;default:'student'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (UserAccount) TableName() string {
	return "user_accounts"
}
