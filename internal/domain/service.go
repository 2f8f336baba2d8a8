package domain

import (
	"time"

	"gorm.io/gorm"
)

type ServiceStatus string

const (
	ServiceStatusActive   ServiceStatus = "ACTIVE"
	ServiceStatusInactive ServiceStatus = "INACTIVE"
)

// Service category 是自由文本，不是外键
type Service struct {
	ID             string        `gorm:"primaryKey;size:36" json:"id"`
	Name           string        `gorm:"size:191;not null" json:"name"`
	Category       string        `gorm:"size:191;not null;index" json:"category"`
	Price          float64       `gorm:"not null" json:"price"`
	Duration       string        `gorm:"size:64;not null" json:"duration"`
	Status         ServiceStatus `gorm:"size:16;not null;default:ACTIVE;index" json:"status"`
	Description    string        `gorm:"type:text" json:"description"`
	ProvidersCount int           `gorm:"not null;default:0" json:"providersCount"`

	Bookings []Booking `gorm:"foreignKey:ServiceID" json:"bookings,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt"`
}

func (Service) TableName() string { return "services" }
