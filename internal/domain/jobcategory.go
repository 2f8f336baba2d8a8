package domain

import (
	"time"

	"gorm.io/gorm"
)

type JobCategoryStatus string

const (
	JobCategoryStatusActive   JobCategoryStatus = "ACTIVE"
	JobCategoryStatusArchived JobCategoryStatus = "ARCHIVED"
)

type JobCategory struct {
	ID          string            `gorm:"primaryKey;size:36" json:"id"`
	Name        string            `gorm:"size:191;not null" json:"name"`
	Description string            `gorm:"type:text" json:"description"`
	Status      JobCategoryStatus `gorm:"size:16;not null;default:ACTIVE;index" json:"status"`
	JobsCount   int               `json:"jobsCount"`
	AvgPrice    float64           `json:"avgPrice"`
	Icon        string            `gorm:"size:64" json:"icon"`
	Color       string            `gorm:"size:32" json:"color"`

	// 独占子表，更新时整体替换（区别于共享的 Tag）
	Tags []JobCategoryTag `gorm:"foreignKey:JobCategoryID" json:"tags"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt"`
}

func (JobCategory) TableName() string { return "job_categories" }

// JobCategoryTag name 不要求唯一
type JobCategoryTag struct {
	ID            string `gorm:"primaryKey;size:36" json:"id"`
	JobCategoryID string `gorm:"size:36;not null;index" json:"jobCategoryId"`
	Name          string `gorm:"size:191;not null" json:"name"`
}

func (JobCategoryTag) TableName() string { return "job_category_tags" }
