package domain

import (
	"time"

	"gorm.io/gorm"
)

type UserStatus string

const (
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusArchived UserStatus = "ARCHIVED"
)

type JobCategoryKind string

const (
	JobCategoryMaintenance JobCategoryKind = "MAINTENANCE"
	JobCategoryOperations  JobCategoryKind = "OPERATIONS"
	JobCategoryOther       JobCategoryKind = "OTHER"
)

// User 服务提供者档案（后台管理的主体）
type User struct {
	ID              string          `gorm:"primaryKey;size:36" json:"id"`
	Name            string          `gorm:"size:191;not null" json:"name"`
	Address         string          `gorm:"size:255" json:"address"`
	Age             int             `json:"age"`
	Status          UserStatus      `gorm:"size:16;not null;default:ACTIVE;index" json:"status"`
	JobTitle        string          `gorm:"size:191" json:"jobTitle"`
	JobCategory     JobCategoryKind `gorm:"size:32" json:"jobCategory"`
	YearsExperience int             `json:"yearsExperience"`
	Bio             string          `gorm:"type:text" json:"bio"`
	Description     string          `gorm:"type:text" json:"description"`

	// 标签多对多共享；工作经历归属于单个用户
	Tags           []Tag            `gorm:"many2many:user_tags" json:"tags"`
	WorkExperience []WorkExperience `gorm:"foreignKey:UserID" json:"workExperience"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt"`
}

func (User) TableName() string { return "users" }

// WorkExperience 子表会随父列表整体替换，不做软删
type WorkExperience struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	UserID      string     `gorm:"size:36;not null;index" json:"userId"`
	Company     string     `gorm:"size:191;not null" json:"company"`
	Position    string     `gorm:"size:191;not null" json:"position"`
	StartDate   time.Time  `gorm:"not null" json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	IsCurrent   bool       `gorm:"not null;default:false" json:"isCurrent"`
	Description string     `gorm:"type:text" json:"description"`

	Responsibilities []Responsibility `gorm:"foreignKey:WorkExperienceID" json:"responsibilities"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (WorkExperience) TableName() string { return "work_experiences" }

type Responsibility struct {
	ID               string `gorm:"primaryKey;size:36" json:"id"`
	WorkExperienceID string `gorm:"size:36;not null;index" json:"workExperienceId"`
	Title            string `gorm:"size:255;not null" json:"title"`
}

func (Responsibility) TableName() string { return "responsibilities" }
