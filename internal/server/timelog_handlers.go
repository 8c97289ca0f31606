package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/askhat-bs/trackd/internal/db"
	"github.com/askhat-bs/trackd/internal/models"
)

// StartTimerRequest is the body of POST /time-logs/start.
type StartTimerRequest struct {
	TaskID string `json:"taskId"`
}

// StartTimer opens a timer on one of the caller's tasks, stopping any
// timer already running.
func (s *Server) StartTimer(c echo.Context) error {
	var req StartTimerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "malformed request body"})
	}
	if req.TaskID == "" {
		return renderFieldErrors(c, map[string]string{"taskId": "must not be empty"})
	}

	log, err := db.StartTimer(currentUserID(c), req.TaskID)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusCreated, log)
}

// StopTimer closes the caller's active timer.
func (s *Server) StopTimer(c echo.Context) error {
	log, err := db.StopTimer(currentUserID(c))
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, log)
}

// ActiveTimer returns the running timer, or a JSON null when idle.
func (s *Server) ActiveTimer(c echo.Context) error {
	log, err := db.GetActiveTimer(currentUserID(c))
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, log)
}

// LogsForTask lists one task's logs, newest first.
func (s *Server) LogsForTask(c echo.Context) error {
	logs, err := db.GetLogsForTask(currentUserID(c), c.Param("taskId"))
	if err != nil {
		return renderError(c, err)
	}
	if logs == nil {
		logs = []models.TimeLog{}
	}
	return c.JSON(http.StatusOK, logs)
}

// TimeTotals maps task id to total logged seconds.
func (s *Server) TimeTotals(c echo.Context) error {
	totals, err := db.GetTotalTimeForAllTasks(currentUserID(c))
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, totals)
}
