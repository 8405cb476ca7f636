package models

import (
	"time"

	"gorm.io/gorm"
)

type HourLog struct {
	ID          uint64         `gorm:"primarykey" json:"id"`
	Date        time.Time      `gorm:"not null" json:"date"`
	Hours       float64        `gorm:"not null" json:"hours"`
	Description string         `gorm:"type:text;not null" json:"description"`
	OwnerID     UserID         `gorm:"not null" json:"owner_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Owner User `gorm:"foreignKey:OwnerID" json:"-"`
}
