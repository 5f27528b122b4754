package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/analysis"
	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/dataset"
)

type uploadResponse struct {
	Message     string                  `json:"message"`
	File        string                  `json:"file"`
	Columns     []string                `json:"columns"`
	Rows        int                     `json:"rows"`
	Sample      []map[string]any        `json:"sample"`
	ColumnTypes map[string]dataset.Kind `json:"column_types"`
}

func (s *Server) upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "multipart field 'file' is required")
	}
	name := filepath.Base(fh.Filename)
	if !dataset.Supported(name) {
		return fmt.Errorf("%w: %s (use .csv, .tsv, .txt, .xlsx or .xlsm)", dataset.ErrUnsupportedFormat, name)
	}
	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	t, err := dataset.Load(name, f, dataset.Options{SheetName: c.FormValue("sheet")})
	if err != nil {
		return uploadError(name, err)
	}
	sess := sessionOf(c)
	sess.Replace(t)
	s.log.Info("dataset loaded",
		zap.String("user", sess.User),
		zap.String("file", name),
		zap.Int("rows", t.Rows),
		zap.Int("columns", len(t.Columns)),
	)
	return c.JSON(http.StatusOK, uploadResponse{
		Message:     "file loaded",
		File:        name,
		Columns:     t.Names(),
		Rows:        t.Rows,
		Sample:      t.Sample(s.opt.SampleRows),
		ColumnTypes: t.Types(),
	})
}

// clearDataset drops the shared dataset for every session.
func (s *Server) clearDataset(c echo.Context) error {
	sess := sessionOf(c)
	sess.Clear()
	s.log.Info("dataset cleared", zap.String("user", sess.User))
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// uploadError keeps sentinel errors for status mapping and turns reader
// failures into client errors.
func uploadError(name string, err error) error {
	if errors.Is(err, dataset.ErrNoColumns) || errors.Is(err, dataset.ErrUnsupportedFormat) {
		return err
	}
	return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("could not read %s: %v", name, err)).SetInternal(err)
}

func (s *Server) columns(c echo.Context) error {
	t, err := sessionOf(c).Dataset()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, analysis.Describe(t))
}

func (s *Server) numericColumns(c echo.Context) error {
	t, err := sessionOf(c).Dataset()
	if err != nil {
		return err
	}
	names := t.NumericNames()
	if names == nil {
		names = []string{}
	}
	return c.JSON(http.StatusOK, map[string][]string{"numeric": names})
}

func (s *Server) columnData(c echo.Context) error {
	t, err := sessionOf(c).Dataset()
	if err != nil {
		return err
	}
	vals, err := analysis.Values(t, colParam(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, vals)
}

func (s *Server) summary(c echo.Context) error {
	t, err := sessionOf(c).Dataset()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, analysis.Summarize(t, 0))
}

func colParam(c echo.Context) string {
	raw := c.Param("col")
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}
