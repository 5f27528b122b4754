package menu

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/analysis"
	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/dataset"
	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/export"
	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/stats"
)

// LoadFile reads path into the session, replacing any previous dataset.
func (m *Menu) LoadFile(path, sheet string) error {
	t, err := dataset.LoadFile(path, dataset.Options{SheetName: sheet})
	if err != nil {
		return err
	}
	m.sess.Replace(t)
	fmt.Fprintf(m.out, "✓ Loaded %s: %d rows, %d columns\n", t.Name, t.Rows, len(t.Columns))
	return nil
}

func (m *Menu) load() error {
	path, err := m.askRequired("File path")
	if err != nil {
		return err
	}
	var sheet string
	if ext := strings.ToLower(filepath.Ext(path)); ext == ".xlsx" || ext == ".xlsm" {
		if sheet, err = m.ask("Sheet name (blank for the first)"); err != nil {
			return err
		}
	}
	return m.LoadFile(path, sheet)
}

func (m *Menu) columns() error {
	t, err := m.sess.Dataset()
	if err != nil {
		return err
	}
	tw := newTable(m.out, fmt.Sprintf("%s (%d rows)", t.Name, t.Rows))
	tw.AppendHeader(table.Row{"#", "column", "kind", "missing"})
	for i, c := range t.Columns {
		tw.AppendRow(table.Row{i + 1, c.Name, c.Kind, c.Missing()})
	}
	tw.Render()
	return nil
}

func (m *Menu) askColumn(label string) (*dataset.Table, string, error) {
	t, err := m.sess.Dataset()
	if err != nil {
		return nil, "", err
	}
	col, err := m.askRequired(label)
	if err != nil {
		return nil, "", err
	}
	return t, col, nil
}

func (m *Menu) central() error {
	t, col, err := m.askColumn("Column")
	if err != nil {
		return err
	}
	res, err := analysis.CentralTendency(t, col)
	if err != nil {
		return err
	}
	keyValues(m.out, "Central tendency: "+col,
		table.Row{"n", res.N},
		table.Row{"mean", num(res.Mean)},
		table.Row{"median", num(res.Median)},
		table.Row{"mode", num(res.Mode)},
	)
	return nil
}

func (m *Menu) dispersion() error {
	t, col, err := m.askColumn("Column")
	if err != nil {
		return err
	}
	res, err := analysis.Dispersion(t, col)
	if err != nil {
		return err
	}
	keyValues(m.out, "Dispersion: "+col,
		table.Row{"n", res.N},
		table.Row{"range", num(res.Range)},
		table.Row{"variance", num(res.Variance)},
		table.Row{"std dev", num(res.StdDev)},
		table.Row{"IQR", num(res.IQR)},
		table.Row{"CV", num(res.CV)},
	)
	return nil
}

func (m *Menu) binomial() error {
	n, err := m.askInt("Trials n")
	if err != nil {
		return err
	}
	p, err := m.askFloat("Success probability p")
	if err != nil {
		return err
	}
	res, err := stats.Binomial(n, p)
	if err != nil {
		return err
	}
	distribution(m.out, fmt.Sprintf("Binomial(n=%d, p=%g)", n, p), res.DistributionTable)
	return nil
}

func (m *Menu) poisson() error {
	lambda, err := m.askFloat("Rate lambda")
	if err != nil {
		return err
	}
	res, err := stats.Poisson(lambda)
	if err != nil {
		return err
	}
	distribution(m.out, fmt.Sprintf("Poisson(lambda=%g)", lambda), res.DistributionTable)
	return nil
}

func (m *Menu) normal() error {
	var v [4]float64
	for i, label := range []string{"Mean mu", "Std dev sigma", "Lower bound a", "Upper bound b"} {
		f, err := m.askFloat(label)
		if err != nil {
			return err
		}
		v[i] = f
	}
	res, err := stats.NormalInterval(v[0], v[1], v[2], v[3])
	if err != nil {
		return err
	}
	keyValues(m.out, fmt.Sprintf("Normal(mu=%g, sigma=%g)", v[0], v[1]),
		table.Row{fmt.Sprintf("P(%g <= X <= %g)", v[2], v[3]), num(res.Prob)},
	)
	return nil
}

func (m *Menu) confidenceInterval() error {
	t, col, err := m.askColumn("Column")
	if err != nil {
		return err
	}
	alpha, err := m.askFloatDefault("Alpha", m.opt.DefaultAlpha)
	if err != nil {
		return err
	}
	param, err := m.ask("Parameter (mean or sd) [mean]")
	if err != nil {
		return err
	}
	res, err := analysis.ConfidenceInterval(t, col, alpha, analysis.Parameter(strings.ToLower(param)))
	if err != nil {
		return err
	}
	title := fmt.Sprintf("%.4g%% confidence interval: %s", (1-alpha)*100, col)
	switch ci := res.(type) {
	case *stats.MeanInterval:
		keyValues(m.out, title,
			table.Row{"mean", num(ci.Mean)},
			table.Row{"n", ci.N},
			table.Row{"std error", num(ci.SE)},
			table.Row{"low", num(ci.Low)},
			table.Row{"high", num(ci.High)},
		)
	case *stats.StdDevInterval:
		keyValues(m.out, title,
			table.Row{"sd", num(ci.SD)},
			table.Row{"n", ci.N},
			table.Row{"low", num(ci.Low)},
			table.Row{"high", num(ci.High)},
		)
	}
	return nil
}

func (m *Menu) tTest() error {
	t, col, err := m.askColumn("Column")
	if err != nil {
		return err
	}
	mu0, err := m.askFloat("Hypothesized mean mu0")
	if err != nil {
		return err
	}
	alpha, err := m.askFloatDefault("Alpha", m.opt.DefaultAlpha)
	if err != nil {
		return err
	}
	res, err := analysis.TTest(t, col, mu0, alpha)
	if err != nil {
		return err
	}
	keyValues(m.out, "One-sample t-test: "+col,
		table.Row{"mean", num(res.Mean)},
		table.Row{"sd", num(res.SD)},
		table.Row{"n", res.N},
		table.Row{"t", num(res.T)},
		table.Row{"df", num(res.DF)},
		table.Row{"p-value", num(res.PValue)},
	)
	fmt.Fprintln(m.out, res.Conclusion)
	return nil
}

func (m *Menu) anova() error {
	t, col, err := m.askColumn("Value column")
	if err != nil {
		return err
	}
	group, err := m.askRequired("Group column")
	if err != nil {
		return err
	}
	res, err := analysis.ANOVA(t, col, group)
	if err != nil {
		return err
	}
	anovaTable(m.out, res)
	return nil
}

func (m *Menu) askPair() (*dataset.Table, string, string, error) {
	t, x, err := m.askColumn("X column")
	if err != nil {
		return nil, "", "", err
	}
	y, err := m.askRequired("Y column")
	if err != nil {
		return nil, "", "", err
	}
	return t, x, y, nil
}

func (m *Menu) correlation() error {
	t, x, y, err := m.askPair()
	if err != nil {
		return err
	}
	res, err := analysis.Correlation(t, x, y)
	if err != nil {
		return err
	}
	keyValues(m.out, fmt.Sprintf("Pearson correlation: %s vs %s", x, y),
		table.Row{"r", num(res.R)},
		table.Row{"p-value", num(res.PValue)},
		table.Row{"n", res.N},
	)
	return nil
}

func (m *Menu) regression() error {
	t, x, y, err := m.askPair()
	if err != nil {
		return err
	}
	res, err := analysis.Regression(t, x, y)
	if err != nil {
		return err
	}
	regressionTable(m.out, res)
	return nil
}

func (m *Menu) summary() error {
	t, err := m.sess.Dataset()
	if err != nil {
		return err
	}
	RenderReport(m.out, analysis.Summarize(t, m.opt.SampleRows))
	return nil
}

func (m *Menu) export() error {
	if m.opt.Exporter == nil {
		return errors.New("export directory not configured")
	}
	t, err := m.sess.Dataset()
	if err != nil {
		return err
	}
	raw, err := m.askRequired("Kind (summary, histogram, scatter)")
	if err != nil {
		return err
	}
	kind, err := export.ParseKind(strings.ToLower(raw))
	if err != nil {
		return err
	}

	var path string
	switch kind {
	case export.KindSummary:
		path, err = m.opt.Exporter.Summary(analysis.Summarize(t, 0))
	case export.KindHistogram:
		col, aerr := m.askRequired("Column")
		if aerr != nil {
			return aerr
		}
		var xs []float64
		if xs, err = analysis.Sample(t, col); err == nil {
			path, err = m.opt.Exporter.Histogram(col, xs)
		}
	case export.KindScatter:
		_, x, y, aerr := m.askPair()
		if aerr != nil {
			return aerr
		}
		var xs, ys []float64
		if xs, ys, err = analysis.Paired(t, x, y); err == nil {
			path, err = m.opt.Exporter.Scatter(x, y, xs, ys)
		}
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "✓ Exported %s to %s\n", kind, path)
	return nil
}
