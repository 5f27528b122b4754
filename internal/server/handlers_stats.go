package server

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/analysis"
	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/stats"
)

func (s *Server) central(c echo.Context) error {
	t, err := sessionOf(c).Dataset()
	if err != nil {
		return err
	}
	res, err := analysis.CentralTendency(t, colParam(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (s *Server) dispersion(c echo.Context) error {
	t, err := sessionOf(c).Dataset()
	if err != nil {
		return err
	}
	res, err := analysis.Dispersion(t, colParam(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (s *Server) binomial(c echo.Context) error {
	var (
		n int
		p float64
	)
	if err := echo.QueryParamsBinder(c).MustInt("n", &n).MustFloat64("p", &p).BindError(); err != nil {
		return err
	}
	res, err := stats.Binomial(n, p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (s *Server) poisson(c echo.Context) error {
	var lambda float64
	if err := echo.QueryParamsBinder(c).MustFloat64("lambda", &lambda).BindError(); err != nil {
		return err
	}
	res, err := stats.Poisson(lambda)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (s *Server) normal(c echo.Context) error {
	var mu, sigma, a, b float64
	err := echo.QueryParamsBinder(c).
		MustFloat64("mu", &mu).
		MustFloat64("sigma", &sigma).
		MustFloat64("a", &a).
		MustFloat64("b", &b).
		BindError()
	if err != nil {
		return err
	}
	res, err := stats.NormalInterval(mu, sigma, a, b)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

type ciRequest struct {
	Column    string   `json:"column" validate:"required"`
	Alpha     *float64 `json:"alpha"`
	Parameter string   `json:"parameter" validate:"omitempty,oneof=mean sd"`
}

func (s *Server) confidenceInterval(c echo.Context) error {
	var req ciRequest
	if err := s.bindValid(c, &req); err != nil {
		return err
	}
	t, err := sessionOf(c).Dataset()
	if err != nil {
		return err
	}
	res, err := analysis.ConfidenceInterval(t, req.Column, s.alpha(req.Alpha), analysis.Parameter(req.Parameter))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

type tTestRequest struct {
	Column string   `json:"column" validate:"required"`
	Mu0    *float64 `json:"mu0" validate:"required"`
	Alpha  *float64 `json:"alpha"`
}

func (s *Server) tTest(c echo.Context) error {
	var req tTestRequest
	if err := s.bindValid(c, &req); err != nil {
		return err
	}
	t, err := sessionOf(c).Dataset()
	if err != nil {
		return err
	}
	res, err := analysis.TTest(t, req.Column, *req.Mu0, s.alpha(req.Alpha))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// anovaRequest runs on the session dataset unless Data carries rows inline.
type anovaRequest struct {
	Var      string          `json:"var" validate:"required"`
	GroupVar string          `json:"group_var" validate:"required"`
	Data     json.RawMessage `json:"data"`
}

func (s *Server) anova(c echo.Context) error {
	var req anovaRequest
	if err := s.bindValid(c, &req); err != nil {
		return err
	}
	var (
		res *stats.AnovaTable
		err error
	)
	if len(req.Data) > 0 && string(req.Data) != "null" {
		res, err = analysis.InlineANOVA(req.Data, req.Var, req.GroupVar)
	} else {
		t, derr := sessionOf(c).Dataset()
		if derr != nil {
			return derr
		}
		res, err = analysis.ANOVA(t, req.Var, req.GroupVar)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (s *Server) correlation(c echo.Context) error {
	return s.pairwise(c, func(x, y string) (any, error) {
		t, err := sessionOf(c).Dataset()
		if err != nil {
			return nil, err
		}
		return analysis.Correlation(t, x, y)
	})
}

func (s *Server) regression(c echo.Context) error {
	return s.pairwise(c, func(x, y string) (any, error) {
		t, err := sessionOf(c).Dataset()
		if err != nil {
			return nil, err
		}
		return analysis.Regression(t, x, y)
	})
}

func (s *Server) pairwise(c echo.Context, run func(x, y string) (any, error)) error {
	var x, y string
	if err := echo.QueryParamsBinder(c).MustString("x", &x).MustString("y", &y).BindError(); err != nil {
		return err
	}
	res, err := run(x, y)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (s *Server) bindValid(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}

func (s *Server) alpha(v *float64) float64 {
	if v == nil {
		return s.opt.DefaultAlpha
	}
	return *v
}
