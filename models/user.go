package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:120;not null" json:"username"`
	FullName     string    `gorm:"size:180" json:"full_name"`
	IsManager    bool      `gorm:"not null;default:false" json:"is_manager"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	PasswordHash string    `gorm:"size:255" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
