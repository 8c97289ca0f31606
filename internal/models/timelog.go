package models

import (
	"time"
)

// TimeLog represents a single tracked interval of work on a task.
// A log with a nil EndTime is the user's active timer; Duration is set
// exactly when EndTime is set.
type TimeLog struct {
	ID        string    `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	TaskID    string     `gorm:"index;not null" json:"taskId"`
	UserID    string     `gorm:"index;not null" json:"userId"`
	StartTime time.Time  `gorm:"not null" json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
	Duration  *int64     `json:"duration"` // whole seconds, floor((end-start)/1s)

	// Relationships
	Task *Task `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"task,omitempty"`
}
