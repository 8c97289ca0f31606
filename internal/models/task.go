package models

import (
	"time"
)

// Task statuses.
const (
	StatusTodo       = "TODO"
	StatusInProgress = "IN_PROGRESS"
	StatusDone       = "DONE"
)

// Task priorities.
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
)

// Task represents a todo item owned by a single user.
type Task struct {
	ID        string    `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	Status      string     `gorm:"default:TODO" json:"status"`     // TODO, IN_PROGRESS, DONE
	Category    string     `json:"category"`
	Priority    string     `gorm:"default:MEDIUM" json:"priority"` // LOW, MEDIUM, HIGH
	DoneAt      *time.Time `json:"doneAt"`

	UserID string `gorm:"index;not null" json:"userId"`

	// Relationships
	TimeLogs []TimeLog `gorm:"foreignKey:TaskID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// ValidStatus reports whether s is one of the task statuses.
func ValidStatus(s string) bool {
	return s == StatusTodo || s == StatusInProgress || s == StatusDone
}

// ValidPriority reports whether p is one of the task priorities.
func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}
