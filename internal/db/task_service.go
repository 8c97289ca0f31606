package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/askhat-bs/trackd/internal/models"
)

// CreateTaskRequest holds the data needed to create a new task.
type CreateTaskRequest struct {
	Title       string
	Description string
	Status      string // empty means TODO
	Category    string
	Priority    string // empty means MEDIUM
}

// CreateTask creates a new task owned by userID.
func CreateTask(userID string, req CreateTaskRequest) (*models.Task, error) {
	status := req.Status
	if status == "" {
		status = models.StatusTodo
	}
	priority := req.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !models.ValidStatus(status) || !models.ValidPriority(priority) {
		return nil, ErrInvalidField
	}

	task := models.Task{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Category:    req.Category,
		Priority:    priority,
		UserID:      userID,
	}
	if task.Status == models.StatusDone {
		now := timeNow()
		task.DoneAt = &now
	}

	if err := DB.Create(&task).Error; err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return &task, nil
}

// TaskQueryOptions are the optional list filters. All present filters are
// combined with AND; ownership filtering is always applied on top.
type TaskQueryOptions struct {
	Search    string // substring match on title or description
	Status    string
	Priority  string
	Category  string
	SortBy    string // createdAt (default), updatedAt, title, status, priority, category
	SortOrder string // ASC or DESC (default)
}

// sortColumns whitelists the sortable fields and maps them to columns.
// Anything else falls back to createdAt. Ties are returned in storage
// order, which is unspecified.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"title":     "title",
	"status":    "status",
	"priority":  "priority",
	"category":  "category",
}

// QueryTasks returns userID's tasks matching all present filters, sorted
// per opts. An empty result is not an error.
func QueryTasks(userID string, opts TaskQueryOptions) ([]models.Task, error) {
	q := DB.Where("user_id = ?", userID)

	if opts.Status != "" {
		q = q.Where("status = ?", opts.Status)
	}
	if opts.Priority != "" {
		q = q.Where("priority = ?", opts.Priority)
	}
	if opts.Category != "" {
		q = q.Where("category = ?", opts.Category)
	}
	if opts.Search != "" {
		pattern := "%" + opts.Search + "%"
		q = q.Where("(title LIKE ? OR description LIKE ?)", pattern, pattern)
	}

	column, ok := sortColumns[opts.SortBy]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(opts.SortOrder, "ASC") {
		direction = "ASC"
	}

	var tasks []models.Task
	if err := q.Order(column + " " + direction).Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}

	return tasks, nil
}

// GetTaskByID retrieves a task owned by userID.
func GetTaskByID(userID, taskID string) (*models.Task, error) {
	var task models.Task
	err := DB.Where("id = ? AND user_id = ?", taskID, userID).First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTaskRequest is a partial update: nil fields are left untouched.
type UpdateTaskRequest struct {
	Title       *string
	Description *string
	Status      *string
	Category    *string
	Priority    *string
}

// UpdateTask applies the non-nil fields of req to the task owned by userID.
// A transition into DONE stamps DoneAt; leaving DONE clears it.
func UpdateTask(userID, taskID string, req UpdateTaskRequest) (*models.Task, error) {
	task, err := GetTaskByID(userID, taskID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Priority != nil {
		if !models.ValidPriority(*req.Priority) {
			return nil, ErrInvalidField
		}
		updates["priority"] = *req.Priority
	}
	if req.Status != nil {
		if !models.ValidStatus(*req.Status) {
			return nil, ErrInvalidField
		}
		updates["status"] = *req.Status
		switch {
		case *req.Status == models.StatusDone && task.Status != models.StatusDone:
			updates["done_at"] = timeNow()
		case *req.Status != models.StatusDone && task.Status == models.StatusDone:
			updates["done_at"] = nil
		}
	}

	if len(updates) == 0 {
		return task, nil
	}

	if err := DB.Model(task).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return GetTaskByID(userID, taskID)
}

// DeleteTask removes a task owned by userID together with its time logs.
func DeleteTask(userID, taskID string) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		err := tx.Where("id = ? AND user_id = ?", taskID, userID).First(&task).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		if err := tx.Where("task_id = ?", taskID).Delete(&models.TimeLog{}).Error; err != nil {
			return fmt.Errorf("failed to delete time logs: %w", err)
		}
		if err := tx.Delete(&task).Error; err != nil {
			return fmt.Errorf("failed to delete task: %w", err)
		}
		return nil
	})
}
