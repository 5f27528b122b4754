// Package server exposes the analysis operations over HTTP+JSON.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/auth"
	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/export"
	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/session"
)

// Options are the tunables of the HTTP layer.
type Options struct {
	MaxUploadMB  int
	SampleRows   int
	DefaultAlpha float64
	CORSOrigins  []string
}

// Deps are the collaborators injected into the server.
type Deps struct {
	Auth     auth.Authenticator
	Tokens   *auth.Tokens
	Sessions *session.Store
	Exporter *export.Exporter
	Log      *zap.Logger
}

// Server wires routes, middleware and handlers onto an echo instance.
type Server struct {
	e    *echo.Echo
	opt  Options
	deps Deps
	log  *zap.Logger
}

// New builds a Server.
func New(opt Options, deps Deps) *Server {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if opt.SampleRows < 0 {
		opt.SampleRows = 0
	}
	if len(opt.CORSOrigins) == 0 {
		opt.CORSOrigins = []string{"*"}
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = &requestValidator{v: validator.New(validator.WithRequiredStructEnabled())}

	s := &Server{e: e, opt: opt, deps: deps, log: deps.Log}
	e.HTTPErrorHandler = s.handleError
	s.middleware()
	s.routes()
	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler { return s.e }

// Shutdown stops the echo instance when it was started with Start.
func (s *Server) Shutdown(ctx context.Context) error { return s.e.Shutdown(ctx) }

func (s *Server) middleware() {
	s.e.Use(middleware.Recover())
	s.e.Use(middleware.RequestID())
	s.e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogError:     true,
		LogRemoteIP:  true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("remote_ip", v.RemoteIP),
				zap.String("request_id", v.RequestID),
			}
			if p, ok := c.Get(ctxPrincipal).(auth.Principal); ok {
				fields = append(fields, zap.String("user", p.Username))
			}
			if v.Error != nil {
				s.log.Warn("request failed", append(fields, zap.Error(v.Error))...)
				return nil
			}
			s.log.Info("request", fields...)
			return nil
		},
	}))
	s.e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: s.opt.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	s.e.Use(middleware.BodyLimit(fmt.Sprintf("%dM", max(s.opt.MaxUploadMB, 1))))
}

func (s *Server) routes() {
	s.e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := s.e.Group("/api")
	api.POST("/login", s.login)

	priv := api.Group("", s.requireAuth)
	priv.POST("/logout", s.logout)
	priv.POST("/upload", s.upload, requireRole(auth.Role.CanUpload))
	priv.DELETE("/dataset", s.clearDataset, requireRole(auth.Role.CanUpload))
	priv.GET("/columns", s.columns)
	priv.GET("/columns/numeric", s.numericColumns)
	priv.GET("/data/:col", s.columnData)
	priv.GET("/central/:col", s.central)
	priv.GET("/dispersion/:col", s.dispersion)
	priv.GET("/binomial", s.binomial)
	priv.GET("/poisson", s.poisson)
	priv.GET("/normal", s.normal)
	priv.POST("/confidence-interval", s.confidenceInterval)
	priv.POST("/t-test", s.tTest)
	priv.POST("/anova", s.anova)
	priv.GET("/correlation", s.correlation)
	priv.GET("/regression", s.regression)
	priv.GET("/summary", s.summary)
	priv.POST("/export", s.export)
}

type requestValidator struct {
	v *validator.Validate
}

func (rv *requestValidator) Validate(i any) error {
	return rv.v.Struct(i)
}
