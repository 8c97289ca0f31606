package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/askhat-bs/trackd/internal/db"
)

// DashboardStats returns the caller's aggregate numbers.
func (s *Server) DashboardStats(c echo.Context) error {
	stats, err := db.GetStats(currentUserID(c))
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(http.StatusOK, stats)
}
