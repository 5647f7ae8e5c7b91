package model

import "time"

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// ログインキーはemail
type User struct {
	ID           int64   `gorm:"primaryKey;autoIncrement"`
	Email        string  `gorm:"type:varchar(254);uniqueIndex;not null"`
	Username     string  `gorm:"type:varchar(30);uniqueIndex;not null"`
	FirstName    string  `gorm:"type:varchar(30);not null"`
	MiddleName   *string `gorm:"type:varchar(30)"`
	LastName     string  `gorm:"type:varchar(30);not null"`
	Contact      string  `gorm:"type:varchar(15);not null"`
	Address      string  `gorm:"type:text;not null"`
	Gender       Gender  `gorm:"type:varchar(10);not null"`
	Image        *string `gorm:"type:varchar(255)"`
	PasswordHash string  `gorm:"column:password_hash;not null" json:"-"`
	IsActive     bool    `gorm:"not null"`
	IsStaff      bool    `gorm:"not null;default:false"`
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
