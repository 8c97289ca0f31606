package db

import (
	"fmt"
	"time"

	"github.com/jinzhu/now"

	"github.com/askhat-bs/trackd/internal/models"
)

// Stats is the dashboard aggregate for one user.
type Stats struct {
	TotalTasks          int64 `json:"totalTasks"`
	CompletedTasks      int64 `json:"completedTasks"`
	CompletedTasksToday int64 `json:"completedTasksToday"`
	CompletedTasksWeek  int64 `json:"completedTasksWeek"`
	TotalSecondsToday   int64 `json:"totalSecondsToday"`
	TotalSecondsWeek    int64 `json:"totalSecondsWeek"`
	TotalSecondsAll     int64 `json:"totalSecondsAll"`
}

// ISO weeks run Monday to Monday.
var calendar = &now.Config{WeekStartDay: time.Monday}

// GetStats computes task counts and logged-time sums for userID. Day and
// week windows are half-open calendar intervals in local time; a running
// log has no duration yet and contributes nothing.
func GetStats(userID string) (*Stats, error) {
	t := timeNow()
	dayStart := calendar.With(t).BeginningOfDay()
	dayEnd := dayStart.AddDate(0, 0, 1)
	weekStart := calendar.With(t).BeginningOfWeek()
	weekEnd := weekStart.AddDate(0, 0, 7)

	stats := &Stats{}

	err := DB.Model(&models.Task{}).
		Where("user_id = ?", userID).
		Count(&stats.TotalTasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks: %w", err)
	}

	err = DB.Model(&models.Task{}).
		Where("user_id = ? AND status = ?", userID, models.StatusDone).
		Count(&stats.CompletedTasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count completed tasks: %w", err)
	}

	err = DB.Model(&models.Task{}).
		Where("user_id = ? AND status = ? AND done_at >= ? AND done_at < ?",
			userID, models.StatusDone, dayStart, dayEnd).
		Count(&stats.CompletedTasksToday).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks completed today: %w", err)
	}

	err = DB.Model(&models.Task{}).
		Where("user_id = ? AND status = ? AND done_at >= ? AND done_at < ?",
			userID, models.StatusDone, weekStart, weekEnd).
		Count(&stats.CompletedTasksWeek).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count tasks completed this week: %w", err)
	}

	if stats.TotalSecondsToday, err = sumDurations(userID, &dayStart, &dayEnd); err != nil {
		return nil, err
	}
	if stats.TotalSecondsWeek, err = sumDurations(userID, &weekStart, &weekEnd); err != nil {
		return nil, err
	}
	if stats.TotalSecondsAll, err = sumDurations(userID, nil, nil); err != nil {
		return nil, err
	}

	return stats, nil
}

// sumDurations totals the closed logs of userID whose start falls in
// [from, to); nil bounds mean all time.
func sumDurations(userID string, from, to *time.Time) (int64, error) {
	q := DB.Model(&models.TimeLog{}).Where("user_id = ?", userID)
	if from != nil && to != nil {
		q = q.Where("start_time >= ? AND start_time < ?", *from, *to)
	}

	var total int64
	err := q.Select("COALESCE(SUM(duration), 0)").Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum durations: %w", err)
	}
	return total, nil
}
