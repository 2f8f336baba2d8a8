package domain

import (
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "PENDING"
	BookingStatusConfirmed  BookingStatus = "CONFIRMED"
	BookingStatusInProgress BookingStatus = "IN_PROGRESS"
	BookingStatusCompleted  BookingStatus = "COMPLETED"
	BookingStatusCancelled  BookingStatus = "CANCELLED"
)

// Booking ServiceName 是冗余副本，方便列表直接展示
// Date 存 YYYY-MM-DD 字符串，区间过滤按字典序即可
type Booking struct {
	ID            string        `gorm:"primaryKey;size:36" json:"id"`
	ServiceID     string        `gorm:"size:36;not null;index" json:"serviceId"`
	ServiceName   string        `gorm:"size:191;not null" json:"serviceName"`
	CustomerName  string        `gorm:"size:191;not null" json:"customerName"`
	CustomerPhone string        `gorm:"size:64;not null" json:"customerPhone"`
	Date          string        `gorm:"size:10;not null;index" json:"date"`
	Time          string        `gorm:"size:16;not null" json:"time"`
	Status        BookingStatus `gorm:"size:16;not null;default:PENDING;index" json:"status"`
	Provider      string        `gorm:"size:191;not null" json:"provider"`
	Price         float64       `gorm:"not null" json:"price"`
	Address       string        `gorm:"size:255;not null" json:"address"`

	Service *Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt"`
}

func (Booking) TableName() string { return "bookings" }
