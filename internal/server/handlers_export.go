package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/analysis"
	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/export"
)

type exportRequest struct {
	Kind   string `json:"kind" validate:"required,oneof=summary histogram scatter"`
	Column string `json:"column" validate:"required_if=Kind histogram"`
	X      string `json:"x" validate:"required_if=Kind scatter"`
	Y      string `json:"y" validate:"required_if=Kind scatter"`
}

type exportResponse struct {
	Kind export.Kind `json:"kind"`
	Path string      `json:"path"`
}

func (s *Server) export(c echo.Context) error {
	if s.deps.Exporter == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "export directory not configured")
	}
	var req exportRequest
	if err := s.bindValid(c, &req); err != nil {
		return err
	}
	kind, err := export.ParseKind(req.Kind)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	t, err := sessionOf(c).Dataset()
	if err != nil {
		return err
	}

	var path string
	switch kind {
	case export.KindSummary:
		path, err = s.deps.Exporter.Summary(analysis.Summarize(t, 0))
	case export.KindHistogram:
		var xs []float64
		if xs, err = analysis.Sample(t, req.Column); err == nil {
			path, err = s.deps.Exporter.Histogram(req.Column, xs)
		}
	case export.KindScatter:
		var x, y []float64
		if x, y, err = analysis.Paired(t, req.X, req.Y); err == nil {
			path, err = s.deps.Exporter.Scatter(req.X, req.Y, x, y)
		}
	}
	if err != nil {
		return err
	}
	s.log.Info("export written", zap.String("kind", string(kind)), zap.String("path", path))
	return c.JSON(http.StatusOK, exportResponse{Kind: kind, Path: path})
}
