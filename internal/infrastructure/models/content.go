package models

import (
	"time"

	"github.com/volatiletech/null/v8"
)

type TeamMember struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Name         string `gorm:"type:varchar(100);not null"`
	Position     string `gorm:"type:varchar(100);not null"`
	Bio          string `gorm:"type:text;not null"`
	Image        string `gorm:"type:varchar(255);not null;default:''"`
	LinkedInURL  string `gorm:"column:linkedin_url;type:varchar(200);not null;default:''"`
	GithubURL    string `gorm:"type:varchar(200);not null;default:''"`
	TwitterURL   string `gorm:"type:varchar(200);not null;default:''"`
	DisplayOrder int    `gorm:"not null;default:0;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (TeamMember) TableName() string { return "team_members" }

type Service struct {
	ID           int64       `gorm:"primaryKey;autoIncrement"`
	Name         string      `gorm:"type:varchar(100);not null"`
	Slug         string      `gorm:"type:varchar(120);not null;uniqueIndex"`
	Description  string      `gorm:"type:text;not null"`
	Icon         string      `gorm:"type:varchar(50);not null"`
	Features     StringArray `gorm:"not null"`
	DisplayOrder int         `gorm:"not null;default:0;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Service) TableName() string { return "services" }

type CaseStudy struct {
	ID             int64       `gorm:"primaryKey;autoIncrement"`
	Title          string      `gorm:"type:varchar(200);not null"`
	Slug           string      `gorm:"type:varchar(220);not null;uniqueIndex"`
	Description    string      `gorm:"type:text;not null"`
	ClientName     string      `gorm:"type:varchar(100);not null"`
	ClientIndustry string      `gorm:"type:varchar(100);not null"`
	Challenge      string      `gorm:"type:text;not null;default:''"`
	Solution       string      `gorm:"type:text;not null;default:''"`
	Results        StringArray `gorm:"not null"`
	Technologies   StringArray `gorm:"not null"`
	Image          string      `gorm:"type:varchar(255);not null;default:''"`
	DisplayOrder   int         `gorm:"not null;default:0;index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (CaseStudy) TableName() string { return "case_studies" }

type ContactMessage struct {
	ID        int64       `gorm:"primaryKey;autoIncrement"`
	Name      string      `gorm:"type:varchar(100);not null"`
	Email     string      `gorm:"type:varchar(254);not null"`
	Company   null.String `gorm:"type:varchar(100)"`
	Message   string      `gorm:"type:text;not null"`
	IsRead    bool        `gorm:"not null;default:false;index"`
	ReadAt    null.Time
	CreatedAt time.Time `gorm:"index"`
}

func (ContactMessage) TableName() string { return "contact_messages" }
