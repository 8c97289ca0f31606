package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/askhat-bs/trackd/internal/db"
	"github.com/askhat-bs/trackd/internal/models"
)

// CreateTaskRequest is the body of POST /tasks.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
}

// UpdateTaskRequest is the body of PATCH /tasks/:id. Absent fields stay
// untouched, which is why everything is a pointer.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Category    *string `json:"category"`
	Priority    *string `json:"priority"`
}

// ListTasks returns the caller's tasks, filtered and sorted per query
// parameters.
func (s *Server) ListTasks(c echo.Context) error {
	opts := db.TaskQueryOptions{
		Search:    c.QueryParam("search"),
		Status:    c.QueryParam("status"),
		Priority:  c.QueryParam("priority"),
		Category:  c.QueryParam("category"),
		SortBy:    c.QueryParam("sortBy"),
		SortOrder: c.QueryParam("sortOrder"),
	}

	tasks, err := db.QueryTasks(currentUserID(c), opts)
	if err != nil {
		return renderError(c, err)
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	return c.JSON(http.StatusOK, tasks)
}

// CreateTask creates a task owned by the caller.
func (s *Server) CreateTask(c echo.Context) error {
	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "malformed request body"})
	}

	fields := map[string]string{}
	if req.Title == "" {
		fields["title"] = "must not be empty"
	}
	if req.Status != "" && !models.ValidStatus(req.Status) {
		fields["status"] = "must be one of TODO, IN_PROGRESS, DONE"
	}
	if req.Priority != "" && !models.ValidPriority(req.Priority) {
		fields["priority"] = "must be one of LOW, MEDIUM, HIGH"
	}
	if len(fields) > 0 {
		return renderFieldErrors(c, fields)
	}

	task, err := db.CreateTask(currentUserID(c), db.CreateTaskRequest{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Category:    req.Category,
		Priority:    req.Priority,
	})
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusCreated, task)
}

// GetTask returns a single owned task.
func (s *Server) GetTask(c echo.Context) error {
	task, err := db.GetTaskByID(currentUserID(c), c.Param("id"))
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

// UpdateTask applies a partial update to an owned task.
func (s *Server) UpdateTask(c echo.Context) error {
	var req UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "malformed request body"})
	}

	fields := map[string]string{}
	if req.Title != nil && *req.Title == "" {
		fields["title"] = "must not be empty"
	}
	if req.Status != nil && !models.ValidStatus(*req.Status) {
		fields["status"] = "must be one of TODO, IN_PROGRESS, DONE"
	}
	if req.Priority != nil && !models.ValidPriority(*req.Priority) {
		fields["priority"] = "must be one of LOW, MEDIUM, HIGH"
	}
	if len(fields) > 0 {
		return renderFieldErrors(c, fields)
	}

	task, err := db.UpdateTask(currentUserID(c), c.Param("id"), db.UpdateTaskRequest{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Category:    req.Category,
		Priority:    req.Priority,
	})
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

// DeleteTask removes an owned task and its time logs.
func (s *Server) DeleteTask(c echo.Context) error {
	if err := db.DeleteTask(currentUserID(c), c.Param("id")); err != nil {
		return renderError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
