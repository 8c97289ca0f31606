package server

import (
	"net/http"
	"net/mail"

	"github.com/labstack/echo/v4"

	"github.com/askhat-bs/trackd/internal/auth"
	"github.com/askhat-bs/trackd/internal/db"
	"github.com/askhat-bs/trackd/internal/models"
)

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse pairs a fresh token with the public view of its user.
type authResponse struct {
	AccessToken string   `json:"access_token"`
	User        userView `json:"user"`
}

type userView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Register creates a user and logs them straight in.
func (s *Server) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "malformed request body"})
	}

	fields := map[string]string{}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		fields["email"] = "must be a valid email address"
	}
	if req.Username == "" {
		fields["username"] = "must not be empty"
	}
	if len(req.Password) < 6 {
		fields["password"] = "must be at least 6 characters"
	}
	if len(fields) > 0 {
		return renderFieldErrors(c, fields)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return renderError(c, err)
	}

	user, err := db.CreateUser(req.Email, req.Username, hash)
	if err != nil {
		return renderError(c, err)
	}

	return s.issueToken(c, http.StatusCreated, user)
}

// Login validates credentials and returns a token.
func (s *Server) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "malformed request body"})
	}

	user, err := db.GetUserByEmail(req.Email)
	if err != nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid credentials"})
	}

	return s.issueToken(c, http.StatusOK, user)
}

// Profile returns the caller's identity as carried in the token.
func (s *Server) Profile(c echo.Context) error {
	claims := currentClaims(c)
	return c.JSON(http.StatusOK, userView{
		ID:       claims.Subject,
		Username: claims.Username,
		Email:    claims.Email,
	})
}

func (s *Server) issueToken(c echo.Context, status int, user *models.User) error {
	token, err := auth.SignToken(s.jwtSecret, user.ID, user.Username, user.Email, s.tokenTTL)
	if err != nil {
		return renderError(c, err)
	}
	return c.JSON(status, authResponse{
		AccessToken: token,
		User:        userView{ID: user.ID, Username: user.Username, Email: user.Email},
	})
}
