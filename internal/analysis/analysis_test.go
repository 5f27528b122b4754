package analysis

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/dataset"
	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/stats"
)

func productionTable(t *testing.T) *dataset.Table {
	t.Helper()
	header := []string{"Mes", "Ventas", "Unidades", "Defectos", "Turno", "Responsable"}
	records := [][]string{
		{"1", "1,000", "10", "1", "A", "Ana"},
		{"2", "1,200", "12", "2", "A", "Luis"},
		{"3", "1,400", "14", "", "B", "Ana"},
		{"4", "1,600", "16", "4", "B", "Ana"},
		{"5", "1,800", "18", "5", "C", "Luis"},
		{"6", "2,000", "20", "3", "C", ""},
	}
	tbl, err := dataset.Build("produccion.csv", header, records)
	require.NoError(t, err)
	return tbl
}

func TestLookupErrors(t *testing.T) {
	tbl := productionTable(t)

	_, err := Numeric(tbl, "Precio")
	var ce *ColumnError
	require.True(t, errors.As(err, &ce))
	assert.True(t, errors.Is(err, ErrColumnNotFound))
	assert.Contains(t, err.Error(), "available columns: Month, Sales")

	_, err = Numeric(tbl, "Turno")
	assert.True(t, errors.Is(err, ErrColumnNotNumeric))

	_, err = Numeric(tbl, "Month")
	assert.True(t, errors.Is(err, ErrColumnNotNumeric), "Month is categorical")

	xs, err := Numeric(tbl, "sales")
	require.NoError(t, err)
	assert.Len(t, xs, 6)
}

func TestValuesDropMissing(t *testing.T) {
	tbl := productionTable(t)
	vals, err := Values(tbl, "Defects")
	require.NoError(t, err)
	assert.Equal(t, []any{1.0, 2.0, 4.0, 5.0, 3.0}, vals)

	vals, err = Values(tbl, "Responsible")
	require.NoError(t, err)
	assert.Len(t, vals, 5)
}

func TestDescribe(t *testing.T) {
	s := Describe(productionTable(t))
	assert.Equal(t, 6, s.Rows)
	assert.Equal(t, dataset.KindText, s.Types["Month"])
	assert.Equal(t, dataset.KindNumber, s.Types["Sales"])
}

func TestCentralAndDispersion(t *testing.T) {
	tbl := productionTable(t)
	ct, err := CentralTendency(tbl, "Defects")
	require.NoError(t, err)
	assert.Equal(t, 5, ct.N)
	assert.InDelta(t, 3.0, float64(ct.Mean), 1e-12)

	d, err := Dispersion(tbl, "Sales")
	require.NoError(t, err)
	assert.InDelta(t, 1000.0, float64(d.Range), 1e-9)
}

func TestConfidenceIntervalParameter(t *testing.T) {
	tbl := productionTable(t)
	ci, err := ConfidenceInterval(tbl, "Units", 0.05, "")
	require.NoError(t, err)
	assert.IsType(t, &stats.MeanInterval{}, ci)

	ci, err = ConfidenceInterval(tbl, "Units", 0.05, ParamStdDev)
	require.NoError(t, err)
	assert.IsType(t, &stats.StdDevInterval{}, ci)

	_, err = ConfidenceInterval(tbl, "Units", 0.05, "median")
	var pe *stats.ParamError
	assert.True(t, errors.As(err, &pe))
}

func TestTTest(t *testing.T) {
	res, err := TTest(productionTable(t), "Units", 15, 0.05)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, float64(res.T), 1e-12)
	assert.False(t, res.RejectH0)
}

func TestANOVAFromTable(t *testing.T) {
	tbl := productionTable(t)
	res, err := ANOVA(tbl, "Units", "Turno")
	require.NoError(t, err)
	assert.Equal(t, 3, res.Groups)
	assert.Equal(t, "C(Turno)", res.Rows[0].Source)
	// group means 11, 15, 19 around 15; within each pair deviations of ±1
	assert.InDelta(t, 64.0, float64(res.Rows[0].SumSq), 1e-9)
	assert.InDelta(t, 6.0, float64(res.Rows[1].SumSq), 1e-9)
	assert.InDelta(t, 16.0, float64(res.Rows[0].F), 1e-9)
}

func TestANOVASkipsMissingGroups(t *testing.T) {
	res, err := ANOVA(productionTable(t), "Sales", "Responsible")
	require.NoError(t, err)
	assert.Equal(t, 5, res.N)
	assert.Equal(t, 2, res.Groups)
}

func TestInlineANOVAShapes(t *testing.T) {
	objects := json.RawMessage(`[
		{" Rendimiento ": 1, "Grupo": "A"},
		{" Rendimiento ": 2, "Grupo": "A"},
		{" Rendimiento ": 3, "Grupo": "A"},
		{" Rendimiento ": 4, "Grupo": "B"},
		{" Rendimiento ": 5, "Grupo": "B"},
		{" Rendimiento ": 6, "Grupo": "B"}
	]`)
	lists := json.RawMessage(`[
		["Rendimiento", "Grupo"],
		[1, "A"], [2, "A"], [3, "A"],
		[4, "B"], [5, "B"], [6, "B"]
	]`)
	for name, raw := range map[string]json.RawMessage{"objects": objects, "lists": lists} {
		t.Run(name, func(t *testing.T) {
			res, err := InlineANOVA(raw, "Rendimiento", "Grupo")
			require.NoError(t, err)
			assert.InDelta(t, 13.5, float64(res.Rows[0].F), 1e-9)
			assert.Equal(t, "C(Grupo)", res.Rows[0].Source)
		})
	}
}

func TestParseInlineRejectsGarbage(t *testing.T) {
	for _, raw := range []string{`{}`, `[]`, `[1, 2]`, `not json`} {
		_, err := ParseInline(json.RawMessage(raw))
		assert.True(t, errors.Is(err, ErrBadPayload), raw)
	}
}

func TestCorrelationAndRegression(t *testing.T) {
	tbl := productionTable(t)
	c, err := Correlation(tbl, "Units", "Sales")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, float64(c.R), 1e-12)

	r, err := Regression(tbl, "units", "Sales")
	require.NoError(t, err)
	assert.InDelta(t, 100.0, float64(r.Coefficients["Units"]), 1e-9)
	assert.InDelta(t, 0.0, float64(r.Coefficients[stats.ConstTerm]), 1e-6)

	c, err = Correlation(tbl, "Units", "Defects")
	require.NoError(t, err)
	assert.Equal(t, 5, c.N, "pairs with a missing defect count are dropped")
}

func TestSummaryReport(t *testing.T) {
	rep := Summarize(productionTable(t), 3)
	assert.Equal(t, 6, rep.Rows)
	require.Len(t, rep.Columns, 6)
	require.Len(t, rep.Samples, 3)

	var defects, resp ColumnSummary
	for _, c := range rep.Columns {
		switch c.Name {
		case "Defects":
			defects = c
		case "Responsible":
			resp = c
		}
	}
	assert.Equal(t, 5, defects.NonNull)
	assert.Equal(t, 1, defects.Missing)
	require.NotNil(t, defects.Numeric)
	assert.InDelta(t, 3.0, float64(defects.Numeric.Mean), 1e-12)
	assert.Equal(t, []CategoryCount{{"Ana", 3}, {"Luis", 2}}, resp.TopValues)

	md := rep.Markdown()
	assert.Contains(t, md, "File: produccion.csv")
	assert.Contains(t, md, "- Defects: number (non-null 5, missing 16.7%)")
	assert.Contains(t, md, "Ana(3), Luis(2)")
	assert.Contains(t, md, "| Month | Sales | Units | Defects | Turno | Responsible |")

	recs := rep.Records()
	assert.Equal(t, "column", recs[0][0])
	assert.Len(t, recs, 7)
	sales := recs[2]
	assert.Equal(t, []string{"Sales", "number", "6", "0", "6", "1500"}, sales[:6])
	assert.Equal(t, []string{"1000", "2000"}, sales[7:])
	assert.True(t, strings.HasPrefix(sales[6], "374.165738"))
}

func TestMarkdownTruncatesSamplesOnRunes(t *testing.T) {
	long := strings.Repeat("ñá", 50)
	edge := strings.Repeat("é", 80)
	tbl, err := dataset.Build("notas.csv", []string{"Observaciones", "Corta"}, [][]string{{long, edge}})
	require.NoError(t, err)

	md := Summarize(tbl, 1).Markdown()
	assert.True(t, utf8.ValidString(md))
	assert.Contains(t, md, "| "+strings.Repeat("ñá", 38)+"ñ... | "+edge+" |")
}
