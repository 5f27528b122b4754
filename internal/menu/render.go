package menu

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/analysis"
	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/stats"
)

// pmfRowLimit caps the rows printed for a distribution table.
const pmfRowLimit = 40

// newTable prints title on its own line; go-pretty titles wrap to the table
// width.
func newTable(w io.Writer, title string) table.Writer {
	if title != "" {
		fmt.Fprintln(w, title)
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func num(f stats.Float) string { return analysis.FormatFloat(f) }

// keyValues prints a two-column table of labelled results.
func keyValues(w io.Writer, title string, rows ...table.Row) {
	t := newTable(w, title)
	t.AppendRows(rows)
	t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, Align: text.AlignRight}})
	t.Render()
}

func distribution(w io.Writer, title string, d stats.DistributionTable) {
	t := newTable(w, title)
	t.AppendHeader(table.Row{"k", "P(X=k)"})
	for i, k := range d.K {
		if i == pmfRowLimit {
			t.AppendRow(table.Row{"...", fmt.Sprintf("%d more", len(d.K)-pmfRowLimit)})
			break
		}
		t.AppendRow(table.Row{k, num(d.PMF[i])})
	}
	t.AppendFooter(table.Row{"mean", num(d.Mean)})
	t.AppendFooter(table.Row{"variance", num(d.Variance)})
	t.Render()
}

func anovaTable(w io.Writer, res *stats.AnovaTable) {
	t := newTable(w, fmt.Sprintf("ANOVA (%d groups, n=%d)", res.Groups, res.N))
	t.AppendHeader(table.Row{"", "sum_sq", "df", "F", "PR(>F)"})
	for _, r := range res.Rows {
		t.AppendRow(table.Row{r.Source, num(r.SumSq), num(r.DF), num(r.F), num(r.PR)})
	}
	t.Render()
}

func regressionTable(w io.Writer, res *stats.RegressionResult) {
	t := newTable(w, "Linear regression")
	t.AppendHeader(table.Row{"term", "coefficient"})
	terms := make([]string, 0, len(res.Coefficients))
	for k := range res.Coefficients {
		if k != stats.ConstTerm {
			terms = append(terms, k)
		}
	}
	sort.Strings(terms)
	t.AppendRow(table.Row{stats.ConstTerm, num(res.Coefficients[stats.ConstTerm])})
	for _, k := range terms {
		t.AppendRow(table.Row{k, num(res.Coefficients[k])})
	}
	t.AppendFooter(table.Row{"R²", num(res.R2)})
	t.AppendFooter(table.Row{"n", res.N})
	t.Render()
}

// RenderReport prints a summary report as a column table.
func RenderReport(w io.Writer, rep *analysis.Report) {
	t := newTable(w, fmt.Sprintf("%s: %d rows, %d columns", rep.Name, rep.Rows, len(rep.Columns)))
	t.AppendHeader(table.Row{"column", "kind", "non-null", "missing", "mean", "std", "min", "max", "top values"})
	for _, c := range rep.Columns {
		row := table.Row{c.Name, c.Kind, c.NonNull, c.Missing}
		if c.Numeric != nil {
			row = append(row, num(c.Numeric.Mean), num(c.Numeric.Std), num(c.Numeric.Min), num(c.Numeric.Max), "")
		} else {
			top := make([]string, len(c.TopValues))
			for i, v := range c.TopValues {
				top[i] = fmt.Sprintf("%s(%d)", v.Value, v.Count)
			}
			row = append(row, "", "", "", "", strings.Join(top, ", "))
		}
		t.AppendRow(row)
	}
	t.Render()
}
