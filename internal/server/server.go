package server

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Server is the HTTP surface of the tracker.
type Server struct {
	echo      *echo.Echo
	jwtSecret []byte
	tokenTTL  time.Duration
}

// New builds the echo app with all routes registered.
func New(jwtSecret []byte, tokenTTL time.Duration) *Server {
	s := &Server{
		echo:      echo.New(),
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}

	e := s.echo
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Public routes
	e.POST("/auth/register", s.Register)
	e.POST("/auth/login", s.Login)

	// Everything else sits behind the bearer token
	authed := e.Group("", s.RequireAuth)
	authed.GET("/auth/profile", s.Profile)

	authed.GET("/tasks", s.ListTasks)
	authed.POST("/tasks", s.CreateTask)
	authed.GET("/tasks/:id", s.GetTask)
	authed.PATCH("/tasks/:id", s.UpdateTask)
	authed.DELETE("/tasks/:id", s.DeleteTask)

	authed.POST("/time-logs/start", s.StartTimer)
	authed.POST("/time-logs/stop", s.StopTimer)
	authed.GET("/time-logs/active", s.ActiveTimer)
	authed.GET("/time-logs/task/:taskId", s.LogsForTask)
	authed.GET("/time-logs/totals", s.TimeTotals)

	authed.GET("/dashboard/stats", s.DashboardStats)

	return s
}

// Start listens on addr until the server fails or is shut down.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Handler exposes the underlying handler for tests.
func (s *Server) Handler() *echo.Echo {
	return s.echo
}
