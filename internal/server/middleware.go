package server

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/auth"
	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/session"
)

const (
	ctxPrincipal = "principal"
	ctxSession   = "session"
)

// requireAuth resolves the bearer token to a live session.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		h := c.Request().Header.Get(echo.HeaderAuthorization)
		token, ok := strings.CutPrefix(h, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			return fmt.Errorf("%w: missing bearer token", auth.ErrInvalidToken)
		}
		claims, err := s.deps.Tokens.Parse(strings.TrimSpace(token))
		if err != nil {
			return err
		}
		sess, err := s.deps.Sessions.Get(claims.Session)
		if err != nil {
			return err
		}
		c.Set(ctxPrincipal, claims.Principal())
		c.Set(ctxSession, sess)
		return next(c)
	}
}

// requireRole rejects principals whose role fails allowed.
func requireRole(allowed func(auth.Role) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := c.Get(ctxPrincipal).(auth.Principal)
			if !ok || !allowed(p.Role) {
				return auth.ErrForbidden
			}
			return next(c)
		}
	}
}

func sessionOf(c echo.Context) *session.Session {
	sess, _ := c.Get(ctxSession).(*session.Session)
	return sess
}
