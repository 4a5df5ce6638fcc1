package models

import (
	"time"

	"github.com/volatiletech/null/v8"
)

type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Username     string `gorm:"type:varchar(150);not null;uniqueIndex"`
	Email        string `gorm:"type:varchar(254);not null;default:''"`
	PasswordHash string `gorm:"type:varchar(128);not null"`
	IsStaff      bool   `gorm:"not null;default:false"`
	IsActive     bool   `gorm:"not null;default:true"`
	LastLogin    null.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (User) TableName() string { return "users" }

// All lists every model managed by migrations.
func All() []interface{} {
	return []interface{}{&User{}, &TeamMember{}, &Service{}, &CaseStudy{}, &ContactMessage{}}
}
