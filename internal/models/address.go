package models

import (
	"time"

	"gorm.io/gorm"
)

// Address is a shipping address owned by a user. Orders reference addresses
// rather than copying them, so addresses are soft-deleted.
type Address struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	UserID       uint           `json:"user_id" gorm:"index;not null"`
	Street       string         `json:"street" gorm:"type:varchar(255);not null"`
	BuildingName string         `json:"building_name" gorm:"type:varchar(255);not null"`
	City         string         `json:"city" gorm:"type:varchar(100);not null"`
	State        string         `json:"state" gorm:"type:varchar(100);not null"`
	Country      string         `json:"country" gorm:"type:varchar(100);not null"`
	ZipCode      string         `json:"zip_code" gorm:"type:varchar(20);not null"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}
