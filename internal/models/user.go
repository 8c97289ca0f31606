package models

import (
	"time"
)

// User is an account that owns tasks and time logs.
type User struct {
	ID        string    `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	Username     string `gorm:"not null" json:"username"`
	PasswordHash string `gorm:"not null" json:"-"`

	// Relationships
	Tasks    []Task    `gorm:"foreignKey:UserID" json:"-"`
	TimeLogs []TimeLog `gorm:"foreignKey:UserID" json:"-"`
}
