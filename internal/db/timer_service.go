package db

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/askhat-bs/trackd/internal/models"
)

// GetActiveTimer returns the user's running time log, or nil when idle.
func GetActiveTimer(userID string) (*models.TimeLog, error) {
	var log models.TimeLog
	err := DB.Where("user_id = ? AND end_time IS NULL", userID).
		Preload("Task").
		First(&log).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil // no active timer is not an error
	}
	if err != nil {
		return nil, err
	}
	return &log, nil
}

// StartTimer opens a new time log on a task owned by userID. A running
// timer is stopped first, so the user never has two open logs. The whole
// sequence runs in one transaction, backed by the partial unique index
// on (user_id) WHERE end_time IS NULL.
func StartTimer(userID, taskID string) (*models.TimeLog, error) {
	var log models.TimeLog

	err := DB.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		err := tx.Where("id = ? AND user_id = ?", taskID, userID).First(&task).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		var active models.TimeLog
		err = tx.Where("user_id = ? AND end_time IS NULL", userID).First(&active).Error
		switch {
		case err == nil:
			if err := closeLog(tx, &active); err != nil {
				return fmt.Errorf("failed to stop previous timer: %w", err)
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		log = models.TimeLog{
			ID:        uuid.NewString(),
			TaskID:    taskID,
			UserID:    userID,
			StartTime: timeNow(),
		}
		return tx.Create(&log).Error
	})
	if err != nil {
		return nil, err
	}

	DB.Preload("Task").First(&log, "id = ?", log.ID)
	return &log, nil
}

// StopTimer closes the user's active time log and computes its duration.
// Returns ErrNoActiveTimer when the user is idle.
func StopTimer(userID string) (*models.TimeLog, error) {
	var log models.TimeLog

	err := DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND end_time IS NULL", userID).First(&log).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoActiveTimer
		}
		if err != nil {
			return err
		}
		return closeLog(tx, &log)
	})
	if err != nil {
		return nil, err
	}

	DB.Preload("Task").First(&log, "id = ?", log.ID)
	return &log, nil
}

// closeLog stamps the end time and the elapsed whole seconds, truncated
// toward zero. Never negative: the end is taken after the start.
func closeLog(tx *gorm.DB, log *models.TimeLog) error {
	now := timeNow()
	duration := int64(now.Sub(log.StartTime).Seconds())
	log.EndTime = &now
	log.Duration = &duration
	return tx.Save(log).Error
}

// GetLogsForTask returns the logs of one owned task, newest first.
func GetLogsForTask(userID, taskID string) ([]models.TimeLog, error) {
	var logs []models.TimeLog
	err := DB.Where("task_id = ? AND user_id = ?", taskID, userID).
		Order("start_time DESC").
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query time logs: %w", err)
	}
	return logs, nil
}

// GetTotalTimeForAllTasks maps task id to the summed duration of its
// closed logs, for every task of userID with at least one log. A running
// log contributes nothing until stopped.
func GetTotalTimeForAllTasks(userID string) (map[string]int64, error) {
	var rows []struct {
		TaskID string
		Total  int64
	}
	err := DB.Model(&models.TimeLog{}).
		Select("task_id, COALESCE(SUM(duration), 0) AS total").
		Where("user_id = ?", userID).
		Group("task_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum time logs: %w", err)
	}

	totals := make(map[string]int64, len(rows))
	for _, row := range rows {
		totals[row.TaskID] = row.Total
	}
	return totals, nil
}
