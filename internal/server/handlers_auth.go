package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/auth"
)

type loginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type loginResponse struct {
	Success bool      `json:"success"`
	Token   string    `json:"token"`
	User    string    `json:"user"`
	Role    auth.Role `json:"role"`
}

func (s *Server) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	p, err := s.deps.Auth.Authenticate(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		s.log.Info("login rejected", zap.String("user", req.Username))
		return err
	}
	sess := s.deps.Sessions.Create(p.Username, string(p.Role))
	token, err := s.deps.Tokens.Issue(p, sess.ID)
	if err != nil {
		s.deps.Sessions.Delete(sess.ID)
		return err
	}
	s.log.Info("login", zap.String("user", p.Username), zap.String("role", string(p.Role)), zap.String("session", sess.ID))
	return c.JSON(http.StatusOK, loginResponse{Success: true, Token: token, User: p.Username, Role: p.Role})
}

func (s *Server) logout(c echo.Context) error {
	if sess := sessionOf(c); sess != nil {
		s.deps.Sessions.Delete(sess.ID)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
